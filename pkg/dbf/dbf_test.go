package dbf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// fieldSpec describes one column of a hand-built test file.
type fieldSpec struct {
	name     string
	typeCode byte
	length   byte
	decimals byte
}

// buildDBF assembles a complete dBASE file image: header, descriptor table,
// terminator, then the given record slices verbatim.
func buildDBF(t *testing.T, fields []fieldSpec, records ...[]byte) []byte {
	t.Helper()

	recordLen := 1
	for _, f := range fields {
		recordLen += int(f.length)
	}
	headerLen := HeaderSize + DescriptorSize*len(fields) + 1

	buf := make([]byte, 0, headerLen+recordLen*len(records))
	head := make([]byte, HeaderSize)
	head[0] = 0x03
	head[1], head[2], head[3] = 123, 3, 23
	binary.LittleEndian.PutUint32(head[4:8], uint32(len(records)))
	binary.LittleEndian.PutUint16(head[8:10], uint16(headerLen))
	binary.LittleEndian.PutUint16(head[10:12], uint16(recordLen))
	buf = append(buf, head...)

	for _, f := range fields {
		desc := make([]byte, DescriptorSize)
		copy(desc[:11], f.name)
		desc[11] = f.typeCode
		desc[16] = f.length
		desc[17] = f.decimals
		buf = append(buf, desc...)
	}
	buf = append(buf, descriptorTerminator)

	for _, r := range records {
		if len(r) != recordLen {
			t.Fatalf("test record has %d bytes, want %d", len(r), recordLen)
		}
		buf = append(buf, r...)
	}

	return buf
}

// writeTestDBF writes a file image into a temp dir and returns its path.
func writeTestDBF(t *testing.T, image []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TREND.DBF")
	if err := os.WriteFile(path, image, 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

// trendFields is the minimal schema used across the reader tests: one
// character column and one numeric column with two decimal places.
var trendFields = []fieldSpec{
	{name: "NAME", typeCode: 'C', length: 10},
	{name: "VAL", typeCode: 'N', length: 8, decimals: 2},
}

func record(flag byte, name, val string) []byte {
	r := make([]byte, 19)
	r[0] = flag
	copy(r[1:11], padRight(name, 10))
	copy(r[11:19], padLeft(val, 8))
	return r
}

func padRight(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	return b
}

func padLeft(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b[n-len(s):], s)
	return b
}
