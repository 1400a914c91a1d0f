package book

import "fmt"

// IOError reports that a book source could not be opened or read.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("book: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("book: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// UnsortedKeysError reports a record whose key is smaller than the key of
// the record before it.
type UnsortedKeysError struct {
	Index   int
	PrevKey uint64
	Key     uint64
}

func (e *UnsortedKeysError) Error() string {
	return fmt.Sprintf("book: record %d: key %016x sorts before previous key %016x", e.Index, e.Key, e.PrevKey)
}

// TruncatedRecordError reports trailing bytes that do not make up a whole record.
type TruncatedRecordError struct {
	Index     int
	BytesRead int
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("book: record %d truncated: got %d of %d bytes", e.Index, e.BytesRead, RecordSize)
}

// InvalidPromotionError reports a packed move with promotion code 5, 6 or 7.
type InvalidPromotionError struct {
	Code uint8
}

func (e *InvalidPromotionError) Error() string {
	return fmt.Sprintf("book: invalid promotion code %d", e.Code)
}
