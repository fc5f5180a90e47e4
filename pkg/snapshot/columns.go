package snapshot

import (
	"fmt"
	"strings"

	"github.com/jminnion/trendsnap/pkg/dbf"
	"github.com/jminnion/trendsnap/pkg/idx"
)

const (
	// statusPrefix marks the per-pen status columns the tool writes.
	statusPrefix = "Sts_"
	// markerColumn is the marker column the tool writes.
	markerColumn = "Marker"
)

// isPenField reports whether a DBF field name is a pen value column. The
// trend tool names those columns with bare decimal ordinals.
func isPenField(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// planColumns maps the DBF schema onto output columns: applies the column
// drops, resolves display names through the pen index, and flags join
// problems as warnings. Column order always equals field-descriptor order.
func planColumns(schema *dbf.Schema, pens *idx.PenIndex, opts Options) ([]Column, []int, []dbf.Warning) {
	var (
		cols     []Column
		srcIdx   []int
		warnings []dbf.Warning
	)

	dropTime := opts.DropSourceTime && !opts.NoTimestamp
	penOrdinal := 0
	penCount := 0

	for i, fd := range schema.Fields {
		name := fd.Name
		switch {
		case !opts.KeepStatusColumns && strings.HasPrefix(name, statusPrefix):
			continue
		case !opts.KeepMarkerColumn && name == markerColumn:
			continue
		case dropTime && (name == dateColumn || name == timeColumn || name == millitmColumn):
			continue
		}

		col := Column{FieldName: name, Name: name, Kind: fd.Kind()}

		if isPenField(name) {
			col.Pen = true
			penCount++

			display, ok := resolvePenName(pens, name, penOrdinal, opts.Join)
			penOrdinal++
			if ok {
				col.Name = display
			} else {
				warnings = append(warnings, dbf.Warning{
					Record: -1, Field: name,
					Message: fmt.Sprintf("no pen name for column %q (join by %v), keeping raw name", name, opts.Join),
				})
			}
		}

		cols = append(cols, col)
		srcIdx = append(srcIdx, i)
	}

	if penCount > 0 && pens.Len() != penCount {
		warnings = append(warnings, dbf.Warning{
			Record: -1,
			Message: fmt.Sprintf("index has %d pen entries for %d pen columns, labels may be wrong", pens.Len(), penCount),
		})
	}

	return cols, srcIdx, warnings
}

func resolvePenName(pens *idx.PenIndex, fieldName string, ordinal int, join JoinStrategy) (string, bool) {
	var name string
	var ok bool
	switch join {
	case JoinByOrdinal:
		var pen idx.Pen
		pen, ok = pens.At(ordinal)
		name = pen.Name
	default:
		name, ok = pens.Name(fieldName)
	}
	if name == "" {
		// An index entry with an empty name is no label at all.
		return "", false
	}
	return name, ok
}
