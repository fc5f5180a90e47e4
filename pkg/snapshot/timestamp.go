package snapshot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jminnion/trendsnap/pkg/dbf"
)

// Source column names RSTrendX writes for the sample time.
const (
	dateColumn    = "Date"
	timeColumn    = "Time"
	millitmColumn = "Millitm"
)

// timestampLayout renders the synthesized column with millisecond precision.
const timestampLayout = "2006-01-02 15:04:05.000"

// composeTimestamp assembles one sample time from the three source cells.
// The Millitm cell is an unpadded millisecond count ("8", "28", "128"), so
// it must be applied as a number rather than appended as digits.
// A problem description is returned instead of an error; one bad row does
// not fail the conversion.
func composeTimestamp(date, tm, ms dbf.Value) (time.Time, string) {
	day, problem := dateOf(date)
	if problem != "" {
		return time.Time{}, problem
	}

	if tm.Null || tm.Kind != dbf.KindText {
		return time.Time{}, "null or non-text Time cell"
	}
	clock, err := time.Parse("15:04:05", tm.Text)
	if err != nil {
		return time.Time{}, fmt.Sprintf("unparseable Time cell %q", tm.Text)
	}

	millis, problem := millisOf(ms)
	if problem != "" {
		return time.Time{}, problem
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(),
		millis*int(time.Millisecond),
		time.UTC,
	), ""
}

func dateOf(v dbf.Value) (time.Time, string) {
	if v.Null {
		return time.Time{}, "null Date cell"
	}
	switch v.Kind {
	case dbf.KindDate:
		return v.Time, ""
	case dbf.KindText:
		for _, layout := range []string{"2006-01-02", "20060102"} {
			if t, err := time.Parse(layout, v.Text); err == nil {
				return t, ""
			}
		}
		return time.Time{}, fmt.Sprintf("unparseable Date cell %q", v.Text)
	default:
		return time.Time{}, fmt.Sprintf("Date cell has kind %v", v.Kind)
	}
}

func millisOf(v dbf.Value) (int, string) {
	if v.Null {
		return 0, ""
	}
	switch v.Kind {
	case dbf.KindInteger:
		return int(v.Int), ""
	case dbf.KindDecimal:
		return int(v.Float), ""
	case dbf.KindText:
		n, err := strconv.Atoi(v.Text)
		if err != nil {
			return 0, fmt.Sprintf("unparseable Millitm cell %q", v.Text)
		}
		return n, ""
	default:
		return 0, fmt.Sprintf("Millitm cell has kind %v", v.Kind)
	}
}
