package analysis

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	// 2024-01-01 00:00:00 UTC
	const instant = int64(1704067200)

	t.Run("same instant in seconds, milliseconds, nanoseconds", func(t *testing.T) {
		seconds := NormalizeTimestamp(instant)
		millis := NormalizeTimestamp(instant * 1_000)
		nanos := NormalizeTimestamp(instant * 1_000_000_000)

		assert.True(t, seconds.Valid)
		assert.Equal(t, seconds.Time, millis.Time)
		assert.Equal(t, seconds.Time, nanos.Time)
		assert.Equal(t, 2024, seconds.Time.Year())
		assert.Equal(t, "2024-01", seconds.Month())
	})

	t.Run("zero and negative are absent", func(t *testing.T) {
		assert.False(t, NormalizeTimestamp(0).Valid)
		assert.False(t, NormalizeTimestamp(-1).Valid)
	})

	t.Run("absent is never the epoch", func(t *testing.T) {
		ts := NormalizeTimestamp(0)
		assert.False(t, ts.Valid)
		assert.Equal(t, "N/A", ts.Display())
		assert.Equal(t, "", ts.Month())
		assert.Equal(t, "", ts.Day())
		assert.Equal(t, -1, ts.Hour())
	})

	t.Run("null column value is absent", func(t *testing.T) {
		// Null input and malformed input collapse into the same absent
		// outcome; the source data cannot distinguish them.
		assert.False(t, NormalizeNullTimestamp(sql.NullInt64{}).Valid)

		valid := NormalizeNullTimestamp(sql.NullInt64{Int64: instant, Valid: true})
		assert.True(t, valid.Valid)
	})

	t.Run("out-of-range calendar date recovers to absent", func(t *testing.T) {
		// Between the ms threshold and the ns threshold: divided by 1000
		// this is still year ~33658, far out of range.
		assert.False(t, NormalizeTimestamp(int64(999e12)).Valid)
	})

	t.Run("ordering is preserved within a unit", func(t *testing.T) {
		earlier := NormalizeTimestamp(instant)
		later := NormalizeTimestamp(instant + 3600)
		assert.True(t, earlier.Time.Before(later.Time))

		earlierNs := NormalizeTimestamp(instant * 1_000_000_000)
		laterNs := NormalizeTimestamp((instant + 3600) * 1_000_000_000)
		assert.True(t, earlierNs.Time.Before(laterNs.Time))
	})
}

func TestTimestampFormatting(t *testing.T) {
	ts := NormalizeTimestamp(1718452800) // 2024-06-15 12:00:00 UTC

	assert.Equal(t, "2024-06", ts.Month())
	assert.Equal(t, "2024-06-15", ts.Day())
	assert.Equal(t, 12, ts.Hour())
	assert.Equal(t, "2024-06-15 12:00", ts.Display())
}
