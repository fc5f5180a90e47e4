package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jminnion/trendsnap/internal/logctx"
	"github.com/jminnion/trendsnap/pkg/export"
	"github.com/jminnion/trendsnap/pkg/fileutil"
	"github.com/jminnion/trendsnap/pkg/logging"
	"github.com/jminnion/trendsnap/pkg/snapshot"
)

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	outDir := fs.String("out", "", "output directory (default: next to each input)")
	formatName := fs.String("format", "csv", "output format: csv or parquet")
	idxPath := fs.String("idx", "", "index file override (single input only)")
	encoding := fs.String("encoding", "", "code page for text fields (default cp850)")
	strict := fs.Bool("strict", false, "fail on a truncated record area instead of converting what is there")
	skipDeleted := fs.Bool("skip-deleted", false, "drop records flagged deleted")
	keepStatus := fs.Bool("keep-status", false, "keep the Sts_* status columns")
	keepMarker := fs.Bool("keep-marker", false, "keep the Marker column")
	noTimestamp := fs.Bool("no-timestamp", false, "do not synthesize a datetime column")
	dropSourceTime := fs.Bool("drop-source-time", false, "drop Date/Time/Millitm once the datetime column exists")
	penPrefix := fs.String("pen-prefix", "", `prefix for placeholder pen names (default "Pen_")`)
	joinName := fs.String("join", "name", "pen-name join strategy: name or ordinal")
	noHeader := fs.Bool("no-header", false, "omit the CSV header row")
	concurrency := fs.Int("concurrency", 4, "parallel conversions")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		return errors.New("at least one .DBF file is required")
	}
	if *idxPath != "" && len(inputs) > 1 {
		return errors.New("-idx only applies to a single input")
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	enc, err := resolveEncoding(*encoding)
	if err != nil {
		return err
	}

	opts := snapshot.DefaultOptions()
	opts.DBF.Encoding = enc
	opts.DBF.Strict = *strict
	opts.DBF.SkipDeleted = *skipDeleted
	opts.KeepStatusColumns = *keepStatus
	opts.KeepMarkerColumn = *keepMarker
	opts.NoTimestamp = *noTimestamp
	opts.DropSourceTime = *dropSourceTime
	if *penPrefix != "" {
		opts.PenPrefix = *penPrefix
	}
	switch *joinName {
	case "name":
		opts.Join = snapshot.JoinByName
	case "ordinal":
		opts.Join = snapshot.JoinByOrdinal
	default:
		return fmt.Errorf("-join: unknown strategy %q (want name or ordinal)", *joinName)
	}

	csvOpts := export.CSVOptions{NoHeader: *noHeader}

	logging.Init(*debug, *human)
	ctx := logctx.WithLogger(context.Background(), *logging.L())

	tracker := logging.NewBatchTracker(len(inputs), logging.WithComponent("convert"))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)

	for _, input := range inputs {
		g.Go(func() error {
			start := time.Now()
			cctx := logctx.WithStr(gctx, "dbf", input)

			rows, warnings, err := convertOne(cctx, input, *idxPath, *outDir, format, opts, csvOpts)
			if err != nil {
				// One bad snapshot should not abort its siblings.
				tracker.RecordFailure(input, err)
				return nil
			}
			tracker.RecordCompletion(input, rows, warnings, time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	tracker.LogSummary()

	if n := tracker.Failed(); n > 0 {
		return fmt.Errorf("%d of %d snapshots failed", n, len(inputs))
	}
	return nil
}

func convertOne(ctx context.Context, input, idxPath, outDir string, format export.Format, opts snapshot.Options, csvOpts export.CSVOptions) (rows, warnings int, err error) {
	table, err := snapshot.Convert(ctx, input, idxPath, opts)
	if err != nil {
		return 0, 0, err
	}

	outPath := fileutil.OutputPath(input, outDir, format.Ext())
	switch format {
	case export.FormatParquet:
		err = export.WriteParquetFile(outPath, table)
	default:
		err = export.WriteCSVFile(outPath, table, csvOpts)
	}
	if err != nil {
		return 0, 0, err
	}

	logger := logctx.FromContext(ctx)
	logger.Debug().Str("out", outPath).Int("rows", len(table.Rows)).Msg("wrote output")
	return len(table.Rows), len(table.Warnings), nil
}
