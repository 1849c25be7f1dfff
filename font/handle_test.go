package font

import "testing"

// minimalSFNTHeader builds the 12-byte header of an SFNT table
// directory declaring numTables tables, so tests can exercise
// Open/RawTable without shipping a real font file.
func minimalSFNTHeader(numTables uint16) []byte {
	b := make([]byte, 12)
	copy(b[0:4], []byte{0x00, 0x01, 0x00, 0x00}) // sfnt version 1.0
	b[4] = byte(numTables >> 8)
	b[5] = byte(numTables)
	return b
}

func TestOpenRejectsEmptyData(t *testing.T) {
	if _, err := Open(nil); err != ErrEmptyData {
		t.Fatalf("got %v, want ErrEmptyData", err)
	}
}

func TestOpenUnsupportedReader(t *testing.T) {
	data := minimalSFNTHeader(0)
	if _, err := Open(data, WithReader("does-not-exist")); err != ErrUnsupportedReader {
		t.Fatalf("got %v, want ErrUnsupportedReader", err)
	}
}

func TestRawTableNoMatch(t *testing.T) {
	data := minimalSFNTHeader(0)
	if got := RawTable(data, "COLR"); got != nil {
		t.Fatalf("got %v, want nil for a table-less font", got)
	}
}

func TestRawTableFindsEntry(t *testing.T) {
	// Header + one table record ("COLR") pointing past the directory.
	dir := minimalSFNTHeader(1)
	record := make([]byte, 16)
	copy(record[0:4], []byte("COLR"))
	payload := []byte{1, 2, 3, 4}
	tableOffset := uint32(len(dir) + len(record))
	record[8] = byte(tableOffset >> 24)
	record[9] = byte(tableOffset >> 16)
	record[10] = byte(tableOffset >> 8)
	record[11] = byte(tableOffset)
	tableLen := uint32(len(payload))
	record[12] = byte(tableLen >> 24)
	record[13] = byte(tableLen >> 16)
	record[14] = byte(tableLen >> 8)
	record[15] = byte(tableLen)

	data := append(append(dir, record...), payload...)

	got := RawTable(data, "COLR")
	if len(got) != len(payload) {
		t.Fatalf("got %d bytes, want %d", len(got), len(payload))
	}
	for i := range payload {
		if got[i] != payload[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], payload[i])
		}
	}

	if got := RawTable(data, "CPAL"); got != nil {
		t.Fatalf("got %v, want nil for an absent tag", got)
	}
}

func TestHandleCopyPanics(t *testing.T) {
	h := &Handle{}
	h.addr = h

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on copied Handle")
		}
	}()

	copied := *h
	copied.Name()
}

func TestRectUnion(t *testing.T) {
	var acc Rect
	acc = acc.Union(Rect{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2})
	acc = acc.Union(Rect{MinX: -1, MinY: 0, MaxX: 0, MaxY: 3})

	want := Rect{MinX: -1, MinY: 0, MaxX: 2, MaxY: 3}
	if acc != want {
		t.Fatalf("got %+v, want %+v", acc, want)
	}
}
