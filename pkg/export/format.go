package export

import "fmt"

// Format selects an output serialization.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name from a flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatParquet:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv or parquet)", s)
	}
}

// Ext returns the file extension for the format, dot included.
func (f Format) Ext() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	default:
		return ".csv"
	}
}
