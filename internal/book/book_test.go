package book

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/polybook/internal/board"
)

// writeEntry appends one raw Polyglot entry to buf.
func writeEntry(buf *bytes.Buffer, key uint64, move, weight uint16, learn uint32) {
	binary.Write(buf, binary.BigEndian, key)
	binary.Write(buf, binary.BigEndian, move)
	binary.Write(buf, binary.BigEndian, weight)
	binary.Write(buf, binary.BigEndian, learn)
}

func sampleRecords() []Record {
	return []Record{
		{Key: 0x0000000000000001, Move: 0x031c, Weight: 10},
		{Key: 0x463b96181691fc9c, Move: 0x031c, Weight: 100, Learn: 7},
		{Key: 0x463b96181691fc9c, Move: 0x02db, Weight: 50},
		{Key: 0x463b96181691fc9c, Move: 0x0092, Weight: 25},
		{Key: 0x823c9b50fd114196, Move: 0x0ce4, Weight: 60},
		{Key: 0xffffffffffffffff, Move: 0x0d23, Weight: 1},
		{Key: 0xffffffffffffffff, Move: 0x0000, Weight: 2},
	}
}

func loadRecords(t *testing.T, recs []Record) *Table {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, recs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	tbl, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tbl
}

func TestBookLoadAndLookup(t *testing.T) {
	pos := board.NewPosition()
	key := pos.PolyglotHash()

	// e2e4 = 4 | (3 << 3) | (4 << 6) | (1 << 9) = 796
	e2e4Encoded := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))

	var buf bytes.Buffer
	writeEntry(&buf, key, e2e4Encoded, 100, 0)

	tbl, err := Load(&buf)
	if err != nil {
		t.Fatalf("Failed to load book: %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Expected book size 1, got %d", tbl.Len())
	}

	entries := tbl.Lookup(pos)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry for the start position, got %d", len(entries))
	}
	if entries[0].Weight != 100 {
		t.Errorf("Expected weight 100, got %d", entries[0].Weight)
	}

	m, ok, err := entries[0].DecodeMove()
	if err != nil || !ok {
		t.Fatalf("DecodeMove: ok=%v err=%v", ok, err)
	}
	if m.String() != "e2e4" {
		t.Errorf("Expected e2e4, got %s", m)
	}
}

func TestBookMiss(t *testing.T) {
	tbl := loadRecords(t, nil)
	if got := tbl.EntriesFor(board.NewPosition().PolyglotHash()); len(got) != 0 {
		t.Errorf("Expected book miss on empty book, got %d entries", len(got))
	}

	var nilTable *Table
	if got := nilTable.EntriesFor(1); got != nil {
		t.Errorf("nil table returned %v", got)
	}
}

func TestEntriesForRuns(t *testing.T) {
	recs := sampleRecords()
	tbl := loadRecords(t, recs)

	cases := []struct {
		key  uint64
		want []Record
	}{
		{0, nil},
		{1, recs[0:1]},
		{2, nil},
		{0x463b96181691fc9c, recs[1:4]},
		{0x463b96181691fc9d, nil},
		{0x823c9b50fd114196, recs[4:5]},
		{0xfffffffffffffffe, nil},
		{0xffffffffffffffff, recs[5:7]},
	}

	for _, c := range cases {
		got := tbl.EntriesFor(c.key)
		if len(got) != len(c.want) {
			t.Fatalf("EntriesFor(%016x): got %d records, want %d", c.key, len(got), len(c.want))
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("EntriesFor(%016x)[%d] = %+v, want %+v", c.key, i, got[i], c.want[i])
			}
		}
	}
}

func TestEntriesForMatchesLinearScan(t *testing.T) {
	var recs []Record
	for k := uint64(0); k < 40; k++ {
		for i := uint64(0); i < k%4; i++ {
			recs = append(recs, Record{Key: k * 3, Move: uint16(i + 1)})
		}
	}
	tbl := loadRecords(t, recs)

	for key := uint64(0); key < 130; key++ {
		var want []Record
		for _, r := range recs {
			if r.Key == key {
				want = append(want, r)
			}
		}
		got := tbl.EntriesFor(key)
		if len(got) != len(want) {
			t.Fatalf("key %d: got %d records, want %d", key, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("key %d: record %d = %+v, want %+v", key, i, got[i], want[i])
			}
		}
	}
}

func TestTableCounts(t *testing.T) {
	tbl := loadRecords(t, sampleRecords())
	if tbl.Len() != 7 {
		t.Errorf("Len() = %d, want 7", tbl.Len())
	}
	if tbl.Positions() != 4 {
		t.Errorf("Positions() = %d, want 4", tbl.Positions())
	}
	recs := tbl.Records()
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Key > recs[i].Key {
			t.Fatalf("records %d and %d out of order", i-1, i)
		}
	}
}

func TestLoadTruncated(t *testing.T) {
	cases := []struct {
		name      string
		records   int
		extra     int
		wantIndex int
	}{
		{"short only", 0, 7, 0},
		{"after two", 2, 5, 2},
		{"one byte", 1, 1, 1},
		{"fifteen bytes", 3, 15, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			for i := 0; i < c.records; i++ {
				writeEntry(&buf, uint64(i), 796, 1, 0)
			}
			buf.Write(make([]byte, c.extra))

			tbl, err := Load(&buf)
			if tbl != nil {
				t.Error("Load returned a table on error")
			}
			var terr *TruncatedRecordError
			if !errors.As(err, &terr) {
				t.Fatalf("got %v, want *TruncatedRecordError", err)
			}
			if terr.Index != c.wantIndex || terr.BytesRead != c.extra {
				t.Errorf("got index=%d bytes=%d, want index=%d bytes=%d", terr.Index, terr.BytesRead, c.wantIndex, c.extra)
			}
		})
	}
}

func TestLoadUnsorted(t *testing.T) {
	var buf bytes.Buffer
	writeEntry(&buf, 5, 796, 1, 0)
	writeEntry(&buf, 9, 796, 1, 0)
	writeEntry(&buf, 9, 796, 1, 0)
	writeEntry(&buf, 3, 796, 1, 0)

	tbl, err := Load(&buf)
	if tbl != nil {
		t.Error("Load returned a table on error")
	}
	var uerr *UnsortedKeysError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %v, want *UnsortedKeysError", err)
	}
	if uerr.Index != 3 || uerr.PrevKey != 9 || uerr.Key != 3 {
		t.Errorf("got %+v, want index 3, prev 9, key 3", uerr)
	}
}

func TestLoadReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Load(iotest.ErrReader(boom))

	var ioerr *IOError
	if !errors.As(err, &ioerr) {
		t.Fatalf("got %v, want *IOError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap the read failure", err)
	}
}

// failingReader fails like a stream that ends mid-frame.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestLoadReaderUnexpectedEOF(t *testing.T) {
	_, err := Load(failingReader{})

	var ioerr *IOError
	if !errors.As(err, &ioerr) {
		t.Fatalf("got %v, want *IOError", err)
	}
	var terr *TruncatedRecordError
	if errors.As(err, &terr) {
		t.Errorf("read failure reported as %v", terr)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error %v does not wrap io.ErrUnexpectedEOF", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	recs := sampleRecords()

	var raw bytes.Buffer
	if err := Write(&raw, recs); err != nil {
		t.Fatal(err)
	}

	plain := filepath.Join(dir, "book.bin")
	if err := os.WriteFile(plain, raw.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	compressed := filepath.Join(dir, "book.bin.zst")
	if err := os.WriteFile(compressed, enc.EncodeAll(raw.Bytes(), nil), 0o644); err != nil {
		t.Fatal(err)
	}
	enc.Close()

	for _, path := range []string{plain, compressed} {
		tbl, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", path, err)
		}
		if tbl.Len() != len(recs) {
			t.Errorf("LoadFile(%s): %d records, want %d", path, tbl.Len(), len(recs))
		}
		if got := tbl.EntriesFor(0x463b96181691fc9c); len(got) != 3 {
			t.Errorf("LoadFile(%s): %d start position entries, want 3", path, len(got))
		}
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.bin"))
	var ioerr *IOError
	if !errors.As(err, &ioerr) {
		t.Fatalf("got %v, want *IOError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}

	short := filepath.Join(dir, "short.bin")
	if err := os.WriteFile(short, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(short)
	var terr *TruncatedRecordError
	if !errors.As(err, &terr) || terr.BytesRead != 3 {
		t.Errorf("got %v, want truncated record with 3 bytes", err)
	}

	var raw bytes.Buffer
	if err := Write(&raw, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	frame := enc.EncodeAll(raw.Bytes(), nil)
	enc.Close()
	cut := filepath.Join(dir, "cut.bin.zst")
	if err := os.WriteFile(cut, frame[:len(frame)-6], 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(cut)
	if !errors.As(err, &ioerr) {
		t.Errorf("cut zstd frame: got %v, want *IOError", err)
	}

	empty := filepath.Join(dir, "empty.bin")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadFile(empty)
	if err != nil {
		t.Fatalf("LoadFile(empty): %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("empty book has %d records", tbl.Len())
	}
}

func TestConcurrentLookups(t *testing.T) {
	recs := sampleRecords()
	tbl := loadRecords(t, recs)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 1000; i++ {
				if n := len(tbl.EntriesFor(0x463b96181691fc9c)); n != 3 {
					return errors.New("wrong run length under concurrency")
				}
				if n := len(tbl.EntriesFor(42)); n != 0 {
					return errors.New("phantom entries under concurrency")
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteRejectsUnsorted(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Record{{Key: 2}, {Key: 1}})
	var uerr *UnsortedKeysError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %v, want *UnsortedKeysError", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Write emitted %d bytes for unsorted input", buf.Len())
	}
}

func TestSortRecordsStable(t *testing.T) {
	recs := []Record{
		{Key: 9, Move: 1},
		{Key: 3, Move: 2},
		{Key: 9, Move: 3},
		{Key: 3, Move: 4},
	}
	SortRecords(recs)

	want := []uint16{2, 4, 1, 3}
	for i, r := range recs {
		if r.Move != want[i] {
			t.Fatalf("position %d: move %d, want %d", i, r.Move, want[i])
		}
	}
}

func TestRecordEncoding(t *testing.T) {
	rec := Record{Key: 0x463b96181691fc9c, Move: 796, Weight: 100, Learn: 0xdeadbeef}

	var buf bytes.Buffer
	writeEntry(&buf, rec.Key, rec.Move, rec.Weight, rec.Learn)

	b, err := rec.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, buf.Bytes()) {
		t.Errorf("MarshalBinary = %x, want %x", b, buf.Bytes())
	}

	got, err := ParseRecord(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got != rec {
		t.Errorf("ParseRecord = %+v, want %+v", got, rec)
	}

	if _, err := ParseRecord(b[:15]); err == nil {
		t.Error("ParseRecord accepted 15 bytes")
	}
}
