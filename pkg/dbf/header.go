package dbf

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// HeaderSize is the size of the fixed file header in bytes.
	HeaderSize = 32
	// DescriptorSize is the size of one field descriptor in bytes.
	DescriptorSize = 32
	// descriptorTerminator ends the field descriptor table.
	descriptorTerminator = 0x0D
	// recordDeleted is the deletion-flag byte of a deleted record.
	recordDeleted = '*'
	// eofMarker optionally follows the last record.
	eofMarker = 0x1A
)

// versionNames maps recognized version bytes to their conventional names.
// RSTrendX writes 0x03, but files re-saved by other dBASE tools carry the
// rest of the family markers.
var versionNames = map[byte]string{
	0x02: "FoxBase",
	0x03: "dBASE III",
	0x04: "dBASE IV",
	0x05: "dBASE V",
	0x30: "Visual FoxPro",
	0x31: "Visual FoxPro autoincrement",
	0x43: "dBASE IV SQL table",
	0x63: "dBASE IV SQL system",
	0x83: "dBASE III with memo",
	0x8B: "dBASE IV with memo",
	0xCB: "dBASE IV SQL table with memo",
	0xF5: "FoxPro 2 with memo",
	0xFB: "FoxBase 2",
}

// Header is the decoded 32-byte dBASE file header.
type Header struct {
	// Version is the raw version byte.
	Version byte
	// Year, Month and Day are the raw last-update bytes. The year counts
	// from 1900; see LastModified for the calendar interpretation.
	Year  byte
	Month byte
	Day   byte
	// RecordCount is the number of records in the record area.
	RecordCount uint32
	// HeaderLen is the total header length in bytes, including the field
	// descriptor table and its terminator.
	HeaderLen uint16
	// RecordLen is the length of one record in bytes, including the leading
	// deletion flag.
	RecordLen uint16
}

// DecodeHeader decodes the fixed file header from the first 32 bytes.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedHeader, len(buf), HeaderSize)
	}

	h := Header{
		Version:     buf[0],
		Year:        buf[1],
		Month:       buf[2],
		Day:         buf[3],
		RecordCount: binary.LittleEndian.Uint32(buf[4:8]),
		HeaderLen:   binary.LittleEndian.Uint16(buf[8:10]),
		RecordLen:   binary.LittleEndian.Uint16(buf[10:12]),
	}

	if _, ok := versionNames[h.Version]; !ok {
		return Header{}, fmt.Errorf("%w: 0x%02X", ErrBadVersionByte, h.Version)
	}

	return h, nil
}

// VersionName returns the conventional name of the version byte, or "unknown".
func (h Header) VersionName() string {
	if name, ok := versionNames[h.Version]; ok {
		return name
	}
	return "unknown"
}

// FieldCount derives the number of field descriptors from the header length.
func (h Header) FieldCount() int {
	n := (int(h.HeaderLen) - HeaderSize - 1) / DescriptorSize
	if n < 0 {
		return 0
	}
	return n
}

// LastModified interprets the raw update-date bytes as a calendar date.
// The year byte counts from 1900; values below 70 are taken as 20xx since
// the trend exports this package targets postdate the year 2000.
func (h Header) LastModified() time.Time {
	year := 1900 + int(h.Year)
	if h.Year < 70 {
		year += 100
	}
	return time.Date(year, time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}
