package dbf

import (
	"errors"
	"fmt"
)

var (
	// ErrBadVersionByte indicates the first header byte is not a known dBASE
	// version marker.
	ErrBadVersionByte = errors.New("unrecognized dBASE version byte")
	// ErrTruncatedHeader indicates the file ends inside the header or the
	// field descriptor table.
	ErrTruncatedHeader = errors.New("truncated header")
	// ErrHeaderLengthMismatch indicates the descriptor terminator was found
	// at an offset inconsistent with the declared header length.
	ErrHeaderLengthMismatch = errors.New("header length mismatch")
	// ErrTruncatedRecord indicates the record area ends inside a record.
	ErrTruncatedRecord = errors.New("truncated record")
	// ErrUnknownEncoding indicates an unsupported text encoding name.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)

// Warning describes a recoverable decode problem. Warnings are collected and
// attached to the affected record or table instead of failing the file.
type Warning struct {
	// Record is the zero-based record ordinal, or -1 for schema-level warnings.
	Record int
	// Field is the affected field name, empty for record-level warnings.
	Field string
	// Message describes the problem.
	Message string
}

func (w Warning) String() string {
	switch {
	case w.Record < 0:
		return fmt.Sprintf("schema: %s", w.Message)
	case w.Field == "":
		return fmt.Sprintf("record %d: %s", w.Record, w.Message)
	default:
		return fmt.Sprintf("record %d field %s: %s", w.Record, w.Field, w.Message)
	}
}

func schemaWarning(format string, args ...any) Warning {
	return Warning{Record: -1, Message: fmt.Sprintf(format, args...)}
}
