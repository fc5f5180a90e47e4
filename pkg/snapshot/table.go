package snapshot

import (
	"time"

	"github.com/jminnion/trendsnap/pkg/dbf"
)

// Column describes one output column of a converted snapshot.
type Column struct {
	// FieldName is the raw DBF field name ("0", "Date", ...). Empty for the
	// synthesized timestamp column.
	FieldName string
	// Name is the display name after the pen-name join.
	Name string
	// Kind is the decoded value kind of the column.
	Kind dbf.Kind
	// Pen marks trended pen value columns.
	Pen bool
	// Synthetic marks the parsed timestamp column.
	Synthetic bool
}

// Row is one converted record.
type Row struct {
	// Deleted carries the DBF deletion flag through to the output.
	Deleted bool
	// Timestamp is the parsed sample time, zero when synthesis is disabled
	// or the source cells were unparseable.
	Timestamp time.Time
	// Values align with Table.Columns.
	Values []dbf.Value
}

// Table is the assembled output of one conversion: resolved columns in
// stable field-descriptor order plus the converted rows. A Table is owned by
// the caller and shares no state with other conversions.
type Table struct {
	Columns []Column
	Rows    []Row
	// Warnings aggregates schema, record and join problems. A table with
	// warnings is still a successful conversion.
	Warnings []dbf.Warning

	Header    dbf.Header
	SourceDBF string
	SourceIDX string
}

// ColumnNames returns the display names in column order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// PenColumns returns the indexes of the pen value columns.
func (t *Table) PenColumns() []int {
	var idxs []int
	for i, c := range t.Columns {
		if c.Pen {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
