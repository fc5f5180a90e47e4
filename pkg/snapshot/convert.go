// Package snapshot converts an RSTrendX .DBF/.IDX snapshot pair into a
// tag-labeled, timestamped table ready for serialization.
//
// The DBF decoding is done by pkg/dbf and the pen-name index by pkg/idx;
// this package joins the two, drops the columns the trend tool fills with
// garbage (Sts_*, Marker), and synthesizes a parsed timestamp column from
// the Date/Time/Millitm triple.
package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/jminnion/trendsnap/internal/logctx"
	"github.com/jminnion/trendsnap/pkg/dbf"
	"github.com/jminnion/trendsnap/pkg/fileutil"
	"github.com/jminnion/trendsnap/pkg/idx"
)

// Convert reads one snapshot pair and assembles the output table. idxPath
// may be empty, in which case a sibling .IDX next to the DBF is used when
// present and placeholder pen names otherwise. Structural DBF problems fail
// the conversion; everything recoverable lands in Table.Warnings.
func Convert(ctx context.Context, dbfPath, idxPath string, opts Options) (*Table, error) {
	opts.Validate()
	logger := logctx.FromContext(ctx)

	fl, err := dbf.Open(dbfPath, opts.DBF)
	if err != nil {
		return nil, err
	}
	defer fl.Close()

	records, err := fl.ReadAll()
	if err != nil {
		return nil, err
	}
	schema := fl.Schema()

	if idxPath == "" {
		if sibling := fileutil.SiblingIndexPath(dbfPath); sibling != "" {
			logger.Debug().Str("idx", sibling).Msg("found sibling index file")
			idxPath = sibling
		}
	}

	pens := loadPenIndex(ctx, idxPath, schema, opts)

	cols, srcIdx, warnings := planColumns(schema, pens, opts)

	table := &Table{
		Columns:   cols,
		Header:    fl.Header(),
		SourceDBF: dbfPath,
		SourceIDX: idxPath,
	}

	withTimestamp := !opts.NoTimestamp
	var dateIdx, timeIdx, msIdx int
	if withTimestamp {
		dateIdx = schema.Index(dateColumn)
		timeIdx = schema.Index(timeColumn)
		msIdx = schema.Index(millitmColumn)
		if dateIdx < 0 || timeIdx < 0 || msIdx < 0 {
			return nil, fmt.Errorf("%s is missing the %s/%s/%s timestamp columns; disable timestamp synthesis to convert it",
				dbfPath, dateColumn, timeColumn, millitmColumn)
		}

		tsCol := Column{Name: opts.TimestampColumn, Kind: dbf.KindText, Synthetic: true}
		if opts.TimestampFirst {
			table.Columns = append([]Column{tsCol}, table.Columns...)
		} else {
			table.Columns = append(table.Columns, tsCol)
		}
	}

	table.Rows = make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{Deleted: rec.Deleted}

		values := make([]dbf.Value, 0, len(table.Columns))
		for _, si := range srcIdx {
			values = append(values, rec.Values[si])
		}

		if withTimestamp {
			ts, problem := composeTimestamp(rec.Values[dateIdx], rec.Values[timeIdx], rec.Values[msIdx])
			tsValue := dbf.Value{Kind: dbf.KindText, Null: true}
			if problem != "" {
				warnings = append(warnings, dbf.Warning{
					Record: rec.Ordinal, Field: opts.TimestampColumn, Message: problem,
				})
			} else {
				row.Timestamp = ts
				tsValue = dbf.Value{Kind: dbf.KindText, Text: ts.Format(timestampLayout)}
			}
			if opts.TimestampFirst {
				values = append([]dbf.Value{tsValue}, values...)
			} else {
				values = append(values, tsValue)
			}
		}

		row.Values = values
		table.Rows = append(table.Rows, row)
		warnings = append(warnings, rec.Warnings...)
	}

	// File warnings are collected after iteration so record-area truncation
	// is included.
	table.Warnings = append(fl.Warnings(), warnings...)

	if n := len(table.Warnings); n > 0 {
		logger.Warn().Str("dbf", dbfPath).Int("warnings", n).Msg("conversion finished with warnings")
	}

	return table, nil
}

// loadPenIndex parses the .IDX when available and falls back to placeholder
// names, sized the way the original tool sized them: one pen per Sts_
// column, or per pen value column when the snapshot carries no Sts_ columns.
func loadPenIndex(ctx context.Context, idxPath string, schema *dbf.Schema, opts Options) *idx.PenIndex {
	logger := logctx.FromContext(ctx)

	if idxPath != "" {
		pens, err := idx.ParseFile(idxPath, opts.IndexEncoding)
		if err == nil {
			return pens
		}
		logger.Warn().Err(err).Str("idx", idxPath).Msg("index unusable, using placeholder pen names")
	}

	n := 0
	for _, fd := range schema.Fields {
		if strings.HasPrefix(fd.Name, statusPrefix) {
			n++
		}
	}
	if n == 0 {
		for _, fd := range schema.Fields {
			if isPenField(fd.Name) {
				n++
			}
		}
	}

	return idx.Placeholders(n, opts.PenPrefix)
}
