package dbf

// Options controls how a table file is decoded. The zero value matches the
// defaults: best-effort record decoding, cp850 character fields, deleted
// records included (flagged on the Record).
type Options struct {
	// Strict aborts the whole conversion on a truncated record instead of
	// recording a warning and stopping at the last complete record.
	Strict bool

	// SkipDeleted drops records whose deletion flag is set instead of
	// yielding them with Deleted=true.
	SkipDeleted bool

	// Encoding names the single-byte code page for character fields.
	// Empty selects "cp850", the code page RSTrendX writes.
	Encoding string
}

// DefaultOptions returns the default decode options.
func DefaultOptions() Options {
	return Options{Encoding: "cp850"}
}

// Validate fills in defaults for zero values.
func (o *Options) Validate() {
	if o.Encoding == "" {
		o.Encoding = "cp850"
	}
}

// WithStrict sets strict record decoding.
func (o Options) WithStrict(strict bool) Options {
	o.Strict = strict
	return o
}

// WithSkipDeleted sets whether deleted records are dropped.
func (o Options) WithSkipDeleted(skip bool) Options {
	o.SkipDeleted = skip
	return o
}

// WithEncoding sets the character field code page.
func (o Options) WithEncoding(name string) Options {
	o.Encoding = name
	return o
}
