package dbf

import "fmt"

// Record is one decoded fixed-width record. Records are immutable after
// decode; deleted records are decoded and flagged, never silently dropped.
type Record struct {
	// Ordinal is the zero-based position of the record in the file.
	Ordinal int
	// Deleted reports whether the deletion flag byte was '*'.
	Deleted bool
	// Values holds the decoded field values in descriptor order.
	Values []Value
	// Warnings holds per-field decode problems for this record.
	Warnings []Warning

	schema *Schema
}

// Value returns the decoded value of the named field.
func (r Record) Value(name string) (Value, bool) {
	if r.schema == nil {
		return Value{}, false
	}
	i := r.schema.Index(name)
	if i < 0 || i >= len(r.Values) {
		return Value{}, false
	}
	return r.Values[i], true
}

// decodeRecord decodes one recordLen-sized slice of the record area.
func decodeRecord(s *Schema, data []byte, recordLen, ordinal int, cm *Charmap) (Record, error) {
	if len(data) < recordLen {
		return Record{}, fmt.Errorf("%w: record %d has %d of %d bytes", ErrTruncatedRecord, ordinal, len(data), recordLen)
	}

	rec := Record{
		Ordinal: ordinal,
		Deleted: data[0] == recordDeleted,
		Values:  make([]Value, len(s.Fields)),
		schema:  s,
	}

	for i, fd := range s.Fields {
		end := fd.Offset + int(fd.Length)
		if end > recordLen {
			// Descriptor widths overrun the declared record length; the
			// remaining fields have no bytes to decode from.
			rec.Values[i] = nullValue(fd.Kind())
			rec.Warnings = append(rec.Warnings, Warning{
				Record: ordinal, Field: fd.Name,
				Message: fmt.Sprintf("field extends past record length %d", recordLen),
			})
			continue
		}

		v, warn := decodeValue(fd, data[fd.Offset:end], cm)
		rec.Values[i] = v
		if warn != nil {
			warn.Record = ordinal
			rec.Warnings = append(rec.Warnings, *warn)
		}
	}

	return rec, nil
}
