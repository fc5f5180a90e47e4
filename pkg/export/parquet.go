package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/jminnion/trendsnap/pkg/dbf"
	"github.com/jminnion/trendsnap/pkg/fileutil"
	"github.com/jminnion/trendsnap/pkg/snapshot"
)

// ErrNoTimestamp is returned when a table was converted without timestamp
// synthesis. The long-form layout keys every sample by time, so there is
// nothing to export without it.
var ErrNoTimestamp = errors.New("table has no synthesized timestamp column")

// Sample is one pen reading in long form. Wide trend tables have a schema
// per snapshot; pivoting to (time, pen, value) gives every export the same
// Parquet schema regardless of pen count.
type Sample struct {
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"`
	Pen       string  `parquet:"pen,dict"`
	Value     float64 `parquet:"value"`
}

// Samples pivots the table's pen columns into long-form samples. Rows with
// an unparseable timestamp and null pen cells are skipped; the count of
// skipped cells is returned alongside.
func Samples(table *snapshot.Table) ([]Sample, int) {
	penCols := table.PenColumns()
	samples := make([]Sample, 0, len(table.Rows)*len(penCols))
	skipped := 0

	for _, row := range table.Rows {
		if row.Timestamp.IsZero() {
			skipped += len(penCols)
			continue
		}
		ms := row.Timestamp.UnixMilli()

		for _, ci := range penCols {
			v := row.Values[ci]
			var val float64
			switch {
			case v.Null:
				skipped++
				continue
			case v.Kind == dbf.KindDecimal:
				val = v.Float
			case v.Kind == dbf.KindInteger:
				val = float64(v.Int)
			default:
				skipped++
				continue
			}
			samples = append(samples, Sample{
				Timestamp: ms,
				Pen:       table.Columns[ci].Name,
				Value:     val,
			})
		}
	}

	return samples, skipped
}

// WriteParquet writes the table to w in long form.
func WriteParquet(w io.Writer, table *snapshot.Table) error {
	hasTimestamp := false
	for _, c := range table.Columns {
		if c.Synthetic {
			hasTimestamp = true
			break
		}
	}
	if !hasTimestamp {
		return ErrNoTimestamp
	}

	samples, _ := Samples(table)

	pw := parquet.NewGenericWriter[Sample](w)
	if len(samples) > 0 {
		if _, err := pw.Write(samples); err != nil {
			pw.Close()
			return fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// WriteParquetFile writes the table to path through a temp-file rename.
func WriteParquetFile(path string, table *snapshot.Table) error {
	return fileutil.WriteTmpThenMove(path, func(f *os.File) error {
		return WriteParquet(f, table)
	})
}
