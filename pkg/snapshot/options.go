package snapshot

import "github.com/jminnion/trendsnap/pkg/dbf"

// JoinStrategy selects how pen names from the .IDX are matched to DBF
// columns. The exact join key is tool-specific, so it is configuration
// rather than an assumption baked into the converter.
type JoinStrategy uint8

const (
	// JoinByName matches a pen entry's key against the DBF field name.
	// RSTrendX names its pen value columns "0", "1", ... and writes the
	// same ordinals as index keys, so this is the default.
	JoinByName JoinStrategy = iota
	// JoinByOrdinal assigns the i-th index entry to the i-th pen column
	// regardless of names.
	JoinByOrdinal
)

func (j JoinStrategy) String() string {
	switch j {
	case JoinByName:
		return "name"
	case JoinByOrdinal:
		return "ordinal"
	default:
		return "unknown"
	}
}

// Options controls a snapshot conversion. Use DefaultOptions as the base;
// the zero value disables the timestamp-first reordering that the defaults
// enable.
type Options struct {
	// DBF holds the table decode options (strictness, encoding, deleted
	// record handling).
	DBF dbf.Options

	// IndexEncoding names the code page for the .IDX file. Empty uses the
	// DBF encoding.
	IndexEncoding string

	// KeepStatusColumns keeps the per-pen "Sts_*" columns, which carry
	// garbage values in practice and are dropped by default.
	KeepStatusColumns bool

	// KeepMarkerColumn keeps the "Marker" column, also garbage in practice.
	KeepMarkerColumn bool

	// PenPrefix is the prefix for placeholder pen names used when no index
	// is available. Default "Pen_".
	PenPrefix string

	// TimestampColumn is the name of the synthesized timestamp column
	// parsed from Date/Time/Millitm. Default "datetime"; NoTimestamp
	// disables the synthesis entirely.
	TimestampColumn string
	NoTimestamp     bool

	// DropSourceTime drops the original Date/Time/Millitm columns once the
	// parsed timestamp column exists.
	DropSourceTime bool

	// TimestampFirst moves the synthesized timestamp to the first column.
	TimestampFirst bool

	// Join selects the pen-name join strategy.
	Join JoinStrategy
}

// DefaultOptions returns the conversion defaults: drop status and marker
// columns, synthesize a leading "datetime" column, join pen names by field
// name.
func DefaultOptions() Options {
	return Options{
		DBF:             dbf.DefaultOptions(),
		PenPrefix:       "Pen_",
		TimestampColumn: "datetime",
		TimestampFirst:  true,
	}
}

// Validate fills in defaults for zero values.
func (o *Options) Validate() {
	o.DBF.Validate()
	if o.IndexEncoding == "" {
		o.IndexEncoding = o.DBF.Encoding
	}
	if o.PenPrefix == "" {
		o.PenPrefix = "Pen_"
	}
	if o.TimestampColumn == "" {
		o.TimestampColumn = "datetime"
	}
}
