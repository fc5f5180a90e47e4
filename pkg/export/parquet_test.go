package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/jminnion/trendsnap/pkg/dbf"
	"github.com/jminnion/trendsnap/pkg/snapshot"
)

func TestSamples(t *testing.T) {
	table := testTable(t)

	samples, skipped := Samples(table)
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 for the null pen cell", skipped)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}

	first := samples[0]
	if first.Pen != "N100:0" || first.Value != 12.5 {
		t.Errorf("sample = %+v", first)
	}
	if first.Timestamp != table.Rows[0].Timestamp.UnixMilli() {
		t.Errorf("timestamp = %d, want %d", first.Timestamp, table.Rows[0].Timestamp.UnixMilli())
	}
}

func TestSamplesSkipsZeroTimestamp(t *testing.T) {
	// A row whose timestamp failed to parse carries the zero time and all of
	// its pen cells are skipped.
	table := testTable(t)
	table.Rows[0].Timestamp = time.Time{}

	samples, skipped := Samples(table)
	if len(samples) != 1 {
		t.Errorf("got %d samples, want 1", len(samples))
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3 (two from the zero-time row, one null cell)", skipped)
	}
}

func TestWriteParquetRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteParquet(&buf, testTable(t)); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	got, err := parquet.Read[Sample](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d samples, want 3", len(got))
	}
	if got[0].Pen != "N100:0" || got[0].Value != 12.5 {
		t.Errorf("sample = %+v", got[0])
	}
}

func TestWriteParquetNoTimestamp(t *testing.T) {
	table := &snapshot.Table{
		Columns: []snapshot.Column{
			{FieldName: "0", Name: "N100:0", Kind: dbf.KindDecimal, Pen: true},
		},
	}
	if err := WriteParquet(&bytes.Buffer{}, table); !errors.Is(err, ErrNoTimestamp) {
		t.Errorf("err = %v, want ErrNoTimestamp", err)
	}
}

func TestWriteParquetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TREND.parquet")
	if err := WriteParquetFile(path, testTable(t)); err != nil {
		t.Fatalf("WriteParquetFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}
