package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/jminnion/trendsnap/internal/logctx"
	"github.com/jminnion/trendsnap/pkg/export"
	"github.com/jminnion/trendsnap/pkg/humanfmt"
	"github.com/jminnion/trendsnap/pkg/logging"
	"github.com/jminnion/trendsnap/pkg/s3fetch"
	"github.com/jminnion/trendsnap/pkg/snapshot"
)

func runFetch(args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	outDir := fs.String("out", ".", "download directory")
	concurrency := fs.Int("concurrency", 4, "parallel downloads")
	convert := fs.Bool("convert", false, "convert each pair after downloading")
	formatName := fs.String("format", "csv", "output format when -convert is set: csv or parquet")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	uris := fs.Args()
	if len(uris) == 0 {
		return errors.New("at least one s3:// URI is required")
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	logging.Init(*debug, *human)
	ctx := logctx.WithLogger(context.Background(), *logging.L())
	logger := logging.WithComponent("fetch")

	client, err := s3fetch.NewClient(ctx)
	if err != nil {
		return err
	}

	cfg := s3fetch.FetchConfig{DownloadDir: *outDir, Concurrency: *concurrency}

	var pairs []s3fetch.Pair
	for _, uri := range uris {
		// A URI naming a .DBF object fetches one pair; anything else is
		// treated as a prefix holding many.
		if strings.HasSuffix(strings.ToLower(uri), ".dbf") {
			pair, err := client.FetchPair(ctx, uri, cfg)
			if err != nil {
				return err
			}
			pairs = append(pairs, pair)
			continue
		}

		got, err := client.FetchPrefix(ctx, uri, cfg)
		if err != nil {
			return err
		}
		pairs = append(pairs, got...)
	}

	var total int64
	withIndex := 0
	for _, pair := range pairs {
		total += pair.Bytes
		if pair.IDXPath != "" {
			withIndex++
		}
	}
	logger.Info().
		Int("snapshots", len(pairs)).
		Int("with_index", withIndex).
		Str("bytes", humanfmt.Bytes(total)).
		Str("dir", *outDir).
		Msg("fetch finished")

	if !*convert {
		return nil
	}

	tracker := logging.NewBatchTracker(len(pairs), logging.WithComponent("fetch"))
	for _, pair := range pairs {
		start := time.Now()
		cctx := logctx.WithStr(ctx, "dbf", pair.DBFPath)

		rows, warnings, err := convertOne(cctx, pair.DBFPath, pair.IDXPath, *outDir, format, snapshot.DefaultOptions(), export.CSVOptions{})
		if err != nil {
			tracker.RecordFailure(pair.DBFPath, err)
			continue
		}
		tracker.RecordCompletion(pair.DBFPath, rows, warnings, time.Since(start))
	}
	tracker.LogSummary()

	if n := tracker.Failed(); n > 0 {
		return fmt.Errorf("%d of %d fetched snapshots failed to convert", n, len(pairs))
	}
	return nil
}
