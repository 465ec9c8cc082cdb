package analysis

import (
	"database/sql"
	"time"
)

// Unit-inference thresholds for raw timestamps.
//
// Open WebUI has stored created_at in seconds, milliseconds, and nanoseconds
// across releases, with no schema marker for the unit. Magnitude is the only
// signal. These thresholds are a versioned contract (v1): values above 1e15
// are nanoseconds, above 1e11 milliseconds, otherwise seconds. Changing them
// shifts date bucketing near the boundaries, so treat any change as a
// breaking one.
const (
	nanosecondThreshold  = int64(1e15)
	millisecondThreshold = int64(1e11)
)

// Timestamp is a normalized point in time with second precision.
// The zero value means "absent": a null, zero, or unparseable raw value.
// Absent is deliberately not the epoch; epoch-zero never appears as a date.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// NormalizeTimestamp converts a raw numeric timestamp of unknown unit into
// a Timestamp. Null (zero) and non-positive inputs normalize to absent, as
// does anything producing an out-of-range calendar date. The conversion
// preserves ordering: for raw values in the same unit, larger raw means a
// later Timestamp.
//
// A malformed value and a missing one are indistinguishable in the result;
// the source data carries no way to tell them apart.
func NormalizeTimestamp(raw int64) Timestamp {
	if raw <= 0 {
		return Timestamp{}
	}

	seconds := raw
	switch {
	case raw > nanosecondThreshold:
		seconds = raw / int64(time.Second/time.Nanosecond)
	case raw > millisecondThreshold:
		seconds = raw / 1000
	}

	t := time.Unix(seconds, 0).UTC()
	if t.Year() > 9999 {
		return Timestamp{}
	}
	return Timestamp{Time: t, Valid: true}
}

// NormalizeNullTimestamp converts a nullable raw timestamp column value.
func NormalizeNullTimestamp(raw sql.NullInt64) Timestamp {
	if !raw.Valid {
		return Timestamp{}
	}
	return NormalizeTimestamp(raw.Int64)
}

// Month returns the calendar-month bucket key ("2006-01"), or "" when absent.
// Year-month strings sort chronologically under lexicographic order, which
// the aggregator's bucket-ordering contract relies on.
func (t Timestamp) Month() string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01")
}

// Day returns the calendar-day bucket key ("2006-01-02"), or "" when absent.
func (t Timestamp) Day() string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02")
}

// Hour returns the hour of day (0-23), or -1 when absent.
func (t Timestamp) Hour() int {
	if !t.Valid {
		return -1
	}
	return t.Time.Hour()
}

// Display formats the timestamp for report output, "N/A" when absent.
func (t Timestamp) Display() string {
	if !t.Valid {
		return "N/A"
	}
	return t.Time.Format("2006-01-02 15:04")
}
