package book

import (
	"encoding/binary"
	"fmt"
)

// RecordSize is the size in bytes of one Polyglot book record.
const RecordSize = 16

// Record is one book entry: a candidate move for the position with the given key.
//
// On disk every field is big-endian:
//
//	offset 0  key    uint64
//	offset 8  move   uint16
//	offset 10 weight uint16
//	offset 12 learn  uint32
type Record struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// ParseRecord decodes a record from the first RecordSize bytes of b.
func ParseRecord(b []byte) (Record, error) {
	if len(b) < RecordSize {
		return Record{}, fmt.Errorf("book: record needs %d bytes, got %d", RecordSize, len(b))
	}
	return parseRecord((*[RecordSize]byte)(b)), nil
}

func parseRecord(b *[RecordSize]byte) Record {
	return Record{
		Key:    binary.BigEndian.Uint64(b[0:8]),
		Move:   binary.BigEndian.Uint16(b[8:10]),
		Weight: binary.BigEndian.Uint16(b[10:12]),
		Learn:  binary.BigEndian.Uint32(b[12:16]),
	}
}

// AppendBinary appends the on-disk form of r to b.
func (r Record) AppendBinary(b []byte) []byte {
	b = binary.BigEndian.AppendUint64(b, r.Key)
	b = binary.BigEndian.AppendUint16(b, r.Move)
	b = binary.BigEndian.AppendUint16(b, r.Weight)
	return binary.BigEndian.AppendUint32(b, r.Learn)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r Record) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(make([]byte, 0, RecordSize)), nil
}

// DecodeMove decodes the packed move. See DecodeMove for the meaning of the results.
func (r Record) DecodeMove() (Move, bool, error) {
	return DecodeMove(r.Move)
}
