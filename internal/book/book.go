// Package book reads Polyglot opening books.
//
// A book is a flat file of 16-byte records sorted by position key. The
// whole file is loaded into memory once; lookups are binary searches over
// the immutable table and may run concurrently.
package book

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/hailam/polybook/internal/polyglot"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Table is a loaded opening book. It is never modified after loading.
type Table struct {
	records []Record
}

// LoadFile loads a Polyglot book from a file. Books compressed with zstd
// are decompressed on the fly.
func LoadFile(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filename, Err: err}
	}
	defer file.Close()

	r := bufio.NewReaderSize(file, 64*1024)
	head, err := r.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, &IOError{Op: "read", Path: filename, Err: err}
	}
	if !bytes.Equal(head, zstdMagic) {
		return Load(r)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, &IOError{Op: "decompress", Path: filename, Err: err}
	}
	defer dec.Close()

	return Load(dec)
}

// Load reads Polyglot records from r until end of input.
//
// Keys must be in non-decreasing order; otherwise Load fails with an
// *UnsortedKeysError. Input whose length is not a multiple of RecordSize
// fails with a *TruncatedRecordError. Read failures are returned as
// *IOError. On error no table is returned.
func Load(r io.Reader) (*Table, error) {
	var (
		records []Record
		entry   [RecordSize]byte
	)

	for index := 0; ; index++ {
		n, err := io.ReadFull(r, entry[:])
		if err == io.EOF {
			break
		}
		// ReadFull reports a short final chunk as ErrUnexpectedEOF. With no
		// bytes read the error came from r itself.
		if err == io.ErrUnexpectedEOF && n > 0 {
			return nil, &TruncatedRecordError{Index: index, BytesRead: n}
		}
		if err != nil {
			return nil, &IOError{Op: "read", Err: errors.Wrapf(err, "record %d", index)}
		}

		rec := parseRecord(&entry)
		if index > 0 && rec.Key < records[index-1].Key {
			return nil, &UnsortedKeysError{Index: index, PrevKey: records[index-1].Key, Key: rec.Key}
		}
		records = append(records, rec)
	}

	return &Table{records: records}, nil
}

// EntriesFor returns the records stored for key, in file order. The result
// is a view into the table and must not be modified. It is empty when the
// key is not in the book.
func (t *Table) EntriesFor(key uint64) []Record {
	if t == nil {
		return nil
	}
	lo, _ := slices.BinarySearchFunc(t.records, key, func(r Record, k uint64) int {
		if r.Key < k {
			return -1
		}
		return 1
	})
	hi, _ := slices.BinarySearchFunc(t.records[lo:], key, func(r Record, k uint64) int {
		if r.Key <= k {
			return -1
		}
		return 1
	})
	if hi == 0 {
		return nil
	}
	return t.records[lo : lo+hi : lo+hi]
}

// Lookup returns the records for the position seen through v.
func (t *Table) Lookup(v polyglot.BoardView) []Record {
	return t.EntriesFor(polyglot.Hash(v))
}

// Len returns the number of records in the book.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Positions returns the number of distinct keys in the book.
func (t *Table) Positions() int {
	if t == nil || len(t.records) == 0 {
		return 0
	}
	n := 1
	for i := 1; i < len(t.records); i++ {
		if t.records[i].Key != t.records[i-1].Key {
			n++
		}
	}
	return n
}

// Records returns every record in file order. The slice must not be modified.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return t.records[:len(t.records):len(t.records)]
}
