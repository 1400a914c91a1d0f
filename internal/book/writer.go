package book

import (
	"bufio"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// SortRecords orders records by key. Records with equal keys keep their
// relative order, so the candidate order of a position survives.
func SortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Key < recs[j].Key
	})
}

// Write writes recs to w in Polyglot format. The records must already be
// sorted by key; otherwise nothing is written and an *UnsortedKeysError is
// returned.
func Write(w io.Writer, recs []Record) error {
	for i := 1; i < len(recs); i++ {
		if recs[i].Key < recs[i-1].Key {
			return &UnsortedKeysError{Index: i, PrevKey: recs[i-1].Key, Key: recs[i].Key}
		}
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, RecordSize)
	for i, rec := range recs {
		if _, err := bw.Write(rec.AppendBinary(buf[:0])); err != nil {
			return errors.Wrapf(err, "book: write record %d", i)
		}
	}
	return errors.Wrap(bw.Flush(), "book: flush")
}
