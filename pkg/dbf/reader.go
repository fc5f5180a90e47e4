package dbf

import (
	"fmt"
	"io"
	"iter"
	"os"
)

// File is an open dBASE table file. The file handle is held for the life of
// the File so Rows can be ranged multiple times; Close releases it.
//
// Thread Safety: all reads go through ReadAt with no shared offset, so a
// File is safe for concurrent readers once Open has returned.
type File struct {
	path   string
	f      *os.File
	opts   Options
	cm     *Charmap
	header Header
	schema *Schema

	warnings    []Warning
	truncWarned bool
}

// Open opens a table file, decodes the header and field descriptor table,
// and leaves the handle positioned for record reads. Structural problems
// (short header, unrecognized version byte) fail here; there is nothing to
// recover without a schema.
func Open(path string, opts Options) (*File, error) {
	opts.Validate()

	cm, err := LookupCharmap(opts.Encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table file: %w", err)
	}

	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, head); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrTruncatedHeader, path)
	}

	header, err := DecodeHeader(head)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	full := make([]byte, header.HeaderLen)
	copy(full, head)
	if _, err := io.ReadFull(f, full[HeaderSize:]); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: descriptor table of %s", ErrTruncatedHeader, path)
	}

	schema, err := ParseSchema(full, header)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fl := &File{
		path:   path,
		f:      f,
		opts:   opts,
		cm:     cm,
		header: header,
		schema: schema,
	}
	fl.warnings = append(fl.warnings, schema.Warnings...)

	return fl, nil
}

// Path returns the path the file was opened from.
func (fl *File) Path() string { return fl.path }

// Header returns the decoded file header.
func (fl *File) Header() Header { return fl.header }

// Schema returns the decoded field layout.
func (fl *File) Schema() *Schema { return fl.schema }

// Warnings returns the warnings collected so far: schema-level problems from
// Open plus record-area problems observed while iterating.
func (fl *File) Warnings() []Warning {
	out := make([]Warning, len(fl.warnings))
	copy(out, fl.warnings)
	return out
}

// Close releases the underlying file handle.
func (fl *File) Close() error {
	return fl.f.Close()
}

// Rows returns a lazy iterator over the record area in physical order.
// Records are decoded on demand; ranging again restarts from the first
// record. Under the default best-effort policy a truncated tail yields all
// complete records and records a warning; with Options.Strict the iterator
// yields the truncation as an error instead.
func (fl *File) Rows() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		recordLen := int(fl.header.RecordLen)
		buf := make([]byte, recordLen)

		for i := 0; i < int(fl.header.RecordCount); i++ {
			off := int64(fl.header.HeaderLen) + int64(i)*int64(recordLen)
			n, err := fl.f.ReadAt(buf, off)

			if n > 0 && buf[0] == eofMarker {
				// EOF marker in place of a record: the file holds fewer
				// records than the header claims, which some writers do
				// after in-place truncation.
				fl.noteTruncation(i)
				if fl.opts.Strict {
					yield(Record{}, fmt.Errorf("%w: record %d of %s replaced by EOF marker", ErrTruncatedRecord, i, fl.path))
				}
				return
			}

			if n == recordLen {
				err = nil // a full record right at end of file is fine
			}
			if err != nil {
				if isEOF(err) {
					fl.noteTruncation(i)
					if fl.opts.Strict {
						yield(Record{}, fmt.Errorf("%w: record %d of %s has %d of %d bytes", ErrTruncatedRecord, i, fl.path, n, recordLen))
					}
					return
				}
				yield(Record{}, fmt.Errorf("read record %d of %s: %w", i, fl.path, err))
				return
			}

			rec, err := decodeRecord(fl.schema, buf[:recordLen], recordLen, i, fl.cm)
			if err != nil {
				yield(Record{}, err)
				return
			}
			if fl.opts.SkipDeleted && rec.Deleted {
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// ReadAll materializes every record. With strict decoding the first
// structural problem aborts with an error; otherwise all complete records
// are returned and problems are available via Warnings.
func (fl *File) ReadAll() ([]Record, error) {
	records := make([]Record, 0, fl.header.RecordCount)
	for rec, err := range fl.Rows() {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (fl *File) noteTruncation(ordinal int) {
	if fl.truncWarned {
		return
	}
	fl.truncWarned = true
	fl.warnings = append(fl.warnings, Warning{
		Record:  ordinal,
		Message: fmt.Sprintf("%v: record area ends at record %d of %d", ErrTruncatedRecord, ordinal, fl.header.RecordCount),
	})
}

func isEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
