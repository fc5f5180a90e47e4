package idx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jminnion/trendsnap/pkg/dbf"
)

func rawCharmap(t *testing.T) *dbf.Charmap {
	t.Helper()
	cm, err := dbf.LookupCharmap("ascii")
	if err != nil {
		t.Fatalf("LookupCharmap: %v", err)
	}
	return cm
}

func TestParse(t *testing.T) {
	// Pen entries surrounded by reserved bytes that decode to whitespace
	// and controls, as the real tool writes them.
	data := []byte("\x00\x01 0N100:0 \x02 1F150:1 \x03 2B200.0/0 \x00")

	idx, err := Parse(data, rawCharmap(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}

	wants := []Pen{
		{Key: "0", Name: "N100:0"},
		{Key: "1", Name: "F150:1"},
		{Key: "2", Name: "B200.0/0"},
	}
	for i, want := range wants {
		got, ok := idx.At(i)
		if !ok || got != want {
			t.Errorf("At(%d) = %+v ok=%v, want %+v", i, got, ok, want)
		}
	}

	if name, ok := idx.Name("1"); !ok || name != "F150:1" {
		t.Errorf("Name(1) = %q ok=%v, want F150:1", name, ok)
	}
	if _, ok := idx.Name("9"); ok {
		t.Error("Name(9) found, want missing")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(nil, rawCharmap(t)); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("Parse(nil) = %v, want ErrEmptyIndex", err)
	}
}

func TestParseNoPens(t *testing.T) {
	if _, err := Parse([]byte("reserved garbage"), rawCharmap(t)); !errors.Is(err, ErrNoPens) {
		t.Errorf("Parse(garbage) = %v, want ErrNoPens", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TREND.IDX")
	if err := os.WriteFile(path, []byte("\x00 0N7:0 \x00 1N7:1 "), 0o644); err != nil {
		t.Fatalf("write test index: %v", err)
	}

	idx, err := ParseFile(path, "")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if idx.Source() != path {
		t.Errorf("Source() = %q, want %q", idx.Source(), path)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "NOPE.IDX"), ""); err == nil {
		t.Error("expected error for missing index file")
	}
}

func TestPlaceholders(t *testing.T) {
	idx := Placeholders(3, "Pen_")
	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
	if name, ok := idx.Name("0"); !ok || name != "Pen_00" {
		t.Errorf("Name(0) = %q ok=%v, want Pen_00", name, ok)
	}
	if name, _ := idx.Name("2"); name != "Pen_02" {
		t.Errorf("Name(2) = %q, want Pen_02", name)
	}

	idx = Placeholders(1, "Tag")
	if name, _ := idx.Name("0"); name != "Tag00" {
		t.Errorf("custom prefix Name(0) = %q, want Tag00", name)
	}
}
