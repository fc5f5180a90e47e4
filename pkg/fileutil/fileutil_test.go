package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExistsAndNonEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	full := filepath.Join(dir, "full")

	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !Exists(empty) || !Exists(full) {
		t.Error("Exists() false for existing files")
	}
	if Exists(filepath.Join(dir, "missing")) {
		t.Error("Exists() true for missing file")
	}
	if IsNonEmpty(empty) {
		t.Error("IsNonEmpty() true for empty file")
	}
	if !IsNonEmpty(full) {
		t.Error("IsNonEmpty() false for non-empty file")
	}
}

func TestSiblingIndexPath(t *testing.T) {
	dir := t.TempDir()
	dbf := filepath.Join(dir, "TREND.DBF")
	idx := filepath.Join(dir, "TREND.IDX")

	if err := os.WriteFile(idx, []byte("pens"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := SiblingIndexPath(dbf); got != idx {
		t.Errorf("SiblingIndexPath = %q, want %q", got, idx)
	}

	if got := SiblingIndexPath(filepath.Join(dir, "OTHER.DBF")); got != "" {
		t.Errorf("SiblingIndexPath for missing sibling = %q, want empty", got)
	}
}

func TestSiblingIndexPathLowercase(t *testing.T) {
	dir := t.TempDir()
	dbf := filepath.Join(dir, "trend.dbf")
	idx := filepath.Join(dir, "trend.idx")

	if err := os.WriteFile(idx, []byte("pens"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := SiblingIndexPath(dbf); got != idx {
		t.Errorf("SiblingIndexPath = %q, want %q", got, idx)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/data/TREND.DBF", "/out", ".csv")
	if got != filepath.Join("/out", "TREND.csv") {
		t.Errorf("OutputPath = %q", got)
	}

	got = OutputPath("/data/TREND.DBF", "", ".parquet")
	if got != filepath.Join("/data", "TREND.parquet") {
		t.Errorf("OutputPath without outDir = %q", got)
	}
}

func TestWriteTmpThenMove(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sub", "result.csv")

	err := WriteTmpThenMove(out, func(f *os.File) error {
		_, err := f.WriteString("a,b\n1,2\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteTmpThenMove failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("output = %q", data)
	}
}

func TestWriteTmpThenMoveCleansUpOnError(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result.csv")
	boom := errors.New("boom")

	err := WriteTmpThenMove(out, func(f *os.File) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if Exists(out) {
		t.Error("output file exists after failed write")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}
