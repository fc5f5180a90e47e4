// Package export serializes converted snapshot tables to CSV and Parquet.
package export

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jminnion/trendsnap/pkg/fileutil"
	"github.com/jminnion/trendsnap/pkg/snapshot"
)

// CSVOptions controls CSV serialization.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// NoHeader omits the column-name row.
	NoHeader bool
}

// WriteCSV writes the table to w, one header row followed by one row per
// record. Cells render the way Value.String does, so nulls are empty cells.
func WriteCSV(w io.Writer, table *snapshot.Table, opts CSVOptions) error {
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}

	if !opts.NoHeader {
		if err := cw.Write(table.ColumnNames()); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	cells := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row.Values {
			cells[i] = v.String()
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to path through a temp-file rename so a
// failed conversion never leaves a partial output behind. A path ending in
// .gz is gzip-compressed.
func WriteCSVFile(path string, table *snapshot.Table, opts CSVOptions) error {
	return fileutil.WriteTmpThenMove(path, func(f *os.File) error {
		if strings.HasSuffix(strings.ToLower(path), ".gz") {
			gzw := gzip.NewWriter(f)
			if err := WriteCSV(gzw, table, opts); err != nil {
				gzw.Close()
				return err
			}
			return gzw.Close()
		}
		return WriteCSV(f, table, opts)
	})
}
