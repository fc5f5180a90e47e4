package logging

import (
	"sync/atomic"
	"time"

	"github.com/jminnion/trendsnap/pkg/humanfmt"
	"github.com/rs/zerolog"
)

// BatchTracker tracks a multi-snapshot conversion run.
// It is safe for concurrent use.
type BatchTracker struct {
	total     int64
	completed atomic.Int64
	failed    atomic.Int64
	warnings  atomic.Int64
	startTime time.Time
	log       zerolog.Logger
}

// NewBatchTracker creates a tracker for a run over total snapshots.
func NewBatchTracker(total int, log zerolog.Logger) *BatchTracker {
	return &BatchTracker{
		total:     int64(total),
		startTime: time.Now(),
		log:       log,
	}
}

// RecordCompletion records one converted snapshot and its warning count.
func (bt *BatchTracker) RecordCompletion(path string, rows, warnings int, d time.Duration) {
	bt.completed.Add(1)
	bt.warnings.Add(int64(warnings))

	bt.log.Info().
		Str("dbf", path).
		Int("rows", rows).
		Int("warnings", warnings).
		Str("elapsed", humanfmt.Duration(d)).
		Int64("done", bt.completed.Load()).
		Int64("total", bt.total).
		Msg("snapshot converted")
}

// RecordFailure records one failed snapshot.
func (bt *BatchTracker) RecordFailure(path string, err error) {
	bt.failed.Add(1)
	bt.log.Error().Str("dbf", path).Err(err).Msg("snapshot conversion failed")
}

// Failed returns the number of failed snapshots.
func (bt *BatchTracker) Failed() int {
	return int(bt.failed.Load())
}

// LogSummary emits the end-of-run summary line.
func (bt *BatchTracker) LogSummary() {
	bt.log.Info().
		Int64("converted", bt.completed.Load()).
		Int64("failed", bt.failed.Load()).
		Int64("warnings", bt.warnings.Load()).
		Str("elapsed", humanfmt.Duration(time.Since(bt.startTime))).
		Msg("conversion run finished")
}
