package dbf

import (
	"bytes"
	"strings"
)

// FieldDescriptor describes one column of the record area.
type FieldDescriptor struct {
	// Name is the field name, trimmed of trailing NULs and spaces.
	Name string
	// Type is the single-byte type code ('C', 'N', 'F', 'D', 'L', ...).
	Type byte
	// Length is the fixed field width in bytes.
	Length byte
	// DecimalCount is the number of decimal places for numeric fields.
	DecimalCount byte
	// Offset is the byte offset of the field within a record. Offset 0 is
	// the deletion flag, so the first field starts at 1.
	Offset int
}

// Kind maps the field's type code to the decoded value kind.
func (fd FieldDescriptor) Kind() Kind {
	switch fd.Type {
	case 'C':
		return KindText
	case 'N':
		if fd.DecimalCount > 0 {
			return KindDecimal
		}
		return KindInteger
	case 'F':
		return KindDecimal
	case 'D':
		return KindDate
	case 'L':
		return KindBoolean
	default:
		return KindUnsupported
	}
}

// Schema is the ordered field layout of a table file.
type Schema struct {
	Fields []FieldDescriptor
	// Warnings holds schema-level problems that did not prevent parsing,
	// such as a header length that disagrees with the terminator position.
	Warnings []Warning

	byName map[string]int
}

// ParseSchema decodes the field descriptor table from the full header area
// (the first h.HeaderLen bytes of the file, or as many as exist).
//
// The table runs from offset 32 to the 0x0D terminator or to h.HeaderLen,
// whichever comes first. When the two disagree the terminator wins and the
// mismatch is recorded as a warning rather than failing the file.
func ParseSchema(buf []byte, h Header) (*Schema, error) {
	s := &Schema{byName: make(map[string]int)}

	limit := int(h.HeaderLen)
	if limit > len(buf) {
		limit = len(buf)
	}

	offset := 1 // record offset, past the deletion flag
	pos := HeaderSize
	terminated := false
	for pos < limit {
		if buf[pos] == descriptorTerminator {
			terminated = true
			break
		}
		if pos+DescriptorSize > limit {
			// Not enough room for another descriptor before the declared
			// header end; the mismatch warning below covers it.
			break
		}

		fd := decodeDescriptor(buf[pos:pos+DescriptorSize], offset)
		if fd.Kind() == KindUnsupported {
			s.Warnings = append(s.Warnings, schemaWarning(
				"field %s has unsupported type code %q, values kept as raw bytes", fd.Name, fd.Type))
		}
		s.byName[fd.Name] = len(s.Fields)
		s.Fields = append(s.Fields, fd)
		offset += int(fd.Length)
		pos += DescriptorSize
	}

	switch {
	case terminated && pos+1 != int(h.HeaderLen):
		s.Warnings = append(s.Warnings, schemaWarning(
			"%v: terminator at offset %d, declared header length %d", ErrHeaderLengthMismatch, pos, h.HeaderLen))
	case !terminated:
		s.Warnings = append(s.Warnings, schemaWarning(
			"%v: no terminator before declared header length %d", ErrHeaderLengthMismatch, h.HeaderLen))
	}

	if got := s.RecordLen(); got != int(h.RecordLen) {
		s.Warnings = append(s.Warnings, schemaWarning(
			"field lengths sum to record length %d, header declares %d", got, h.RecordLen))
	}

	return s, nil
}

func decodeDescriptor(buf []byte, offset int) FieldDescriptor {
	name := buf[:11]
	if i := bytes.IndexByte(name, 0x00); i >= 0 {
		name = name[:i]
	}

	return FieldDescriptor{
		Name:         strings.TrimRight(string(name), " "),
		Type:         buf[11],
		Length:       buf[16],
		DecimalCount: buf[17],
		Offset:       offset,
	}
}

// RecordLen returns the record length implied by the field widths, including
// the deletion flag byte.
func (s *Schema) RecordLen() int {
	n := 1
	for _, fd := range s.Fields {
		n += int(fd.Length)
	}
	return n
}

// Index returns the position of the named field, or -1 if absent.
func (s *Schema) Index(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}
	return -1
}

// Names returns the field names in descriptor order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, fd := range s.Fields {
		names[i] = fd.Name
	}
	return names
}
