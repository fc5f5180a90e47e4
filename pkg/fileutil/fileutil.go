// Package fileutil provides snapshot-pair discovery and tmp+mv output writes.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Exists returns true if the file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsNonEmpty returns true if the file exists and has non-zero size.
func IsNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > 0
}

// SiblingIndexPath returns the path of the .IDX file that sits next to a
// .DBF snapshot (same directory, same stem), or "" if none exists. Both the
// upper and lower case extensions are probed, since files copied off the
// HMI workstation arrive in either.
func SiblingIndexPath(dbfPath string) string {
	stem := strings.TrimSuffix(dbfPath, filepath.Ext(dbfPath))
	for _, ext := range []string{".IDX", ".idx"} {
		candidate := stem + ext
		if IsNonEmpty(candidate) {
			return candidate
		}
	}
	return ""
}

// OutputPath derives an output file path from an input path: the same base
// name with newExt, placed in outDir (or next to the input when outDir is
// empty).
func OutputPath(inputPath, outDir, newExt string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, stem+newExt)
}

// WriteTmpThenMove writes outPath via a temporary sibling file and an atomic
// rename, so readers never observe a half-written output. The writeFunc
// receives an open file positioned at the start.
func WriteTmpThenMove(outPath string, writeFunc func(f *os.File) error) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(outPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeFunc(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp to final: %w", err)
	}

	return nil
}
