package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(year int, month time.Month, day, hour int) Timestamp {
	return Timestamp{Time: time.Date(year, month, day, hour, 0, 0, 0, time.UTC), Valid: true}
}

func TestBucketCountsRate(t *testing.T) {
	tests := []struct {
		name   string
		bucket BucketCounts
		want   float64
	}{
		{"no rated feedback", BucketCounts{Total: 5}, 0},
		{"all positive", BucketCounts{Positive: 4, Total: 4}, 100},
		{"all negative", BucketCounts{Negative: 3, Total: 3}, 0},
		{"mixed", BucketCounts{Positive: 3, Negative: 2, Total: 7}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.bucket.Rate(), 0.0001)
		})
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"2025-01": 1, "2024-12": 2, "2024-02": 3}
	assert.Equal(t, []string{"2024-02", "2024-12", "2025-01"}, SortedKeys(m))

	t.Run("stable across calls", func(t *testing.T) {
		first := SortedKeys(m)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, SortedKeys(m))
		}
	})

	t.Run("empty map", func(t *testing.T) {
		assert.Empty(t, SortedKeys(map[string]int{}))
	})
}

func TestChatVolumes(t *testing.T) {
	chats := []ChatRecord{
		{CreatedAt: ts(2024, time.December, 31, 23)},
		{CreatedAt: ts(2024, time.December, 1, 9)},
		{CreatedAt: ts(2025, time.January, 1, 9)},
		{}, // no timestamp
	}

	t.Run("monthly", func(t *testing.T) {
		monthly := MonthlyChatVolume(chats)
		assert.Equal(t, map[string]int{"2024-12": 2, "2025-01": 1}, monthly)
	})

	t.Run("daily", func(t *testing.T) {
		daily := DailyChatVolume(chats)
		assert.Equal(t, 1, daily["2024-12-31"])
		assert.Len(t, daily, 3)
	})

	t.Run("hourly", func(t *testing.T) {
		hourly := HourlyChatVolume(chats)
		assert.Equal(t, 2, hourly[9])
		assert.Equal(t, 1, hourly[23])
		assert.Equal(t, 0, hourly[0], "absent timestamps do not land in hour 0")
	})
}

func TestModelUsage(t *testing.T) {
	chats := []ChatRecord{
		{Model: "gpt-4"},
		{Model: "gpt-4"},
		{Model: ""},
		{ParseFailed: true},
		{Model: "ignored by parse failure", ParseFailed: true},
	}

	usage := ModelUsage(chats)
	assert.Equal(t, 2, usage["gpt-4"])
	assert.Equal(t, 1, usage[BucketUnknownModel])
	assert.Equal(t, 2, usage[BucketParseError])
}

func TestCountMessages(t *testing.T) {
	chats := []ChatRecord{
		{Messages: []Message{{Role: RoleUser}, {Role: RoleAssistant}, {Role: RoleOther}}},
		{Messages: []Message{{Role: RoleUser}}},
		{ParseFailed: true},
	}

	stats := CountMessages(chats)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.User)
	assert.Equal(t, 1, stats.Assistant)
	assert.InDelta(t, 4.0/3.0, stats.AvgPerChat(len(chats)), 0.0001)
	assert.Zero(t, stats.AvgPerChat(0))
}

func TestCountChatStatus(t *testing.T) {
	status := CountChatStatus([]ChatRecord{
		{Archived: true, Pinned: true},
		{Pinned: true},
		{},
	})
	assert.Equal(t, ChatStatus{Active: 2, Archived: 1, Pinned: 2}, status)
}

func TestOverallSatisfaction(t *testing.T) {
	feedback := []FeedbackRecord{
		{Rating: RatingPositive},
		{Rating: RatingPositive},
		{Rating: RatingNegative},
		{Rating: RatingNeutral},
		{Rating: RatingUnrecognized},
	}

	b := OverallSatisfaction(feedback)
	assert.Equal(t, BucketCounts{Positive: 2, Negative: 1, Total: 5}, b)
	assert.InDelta(t, 66.6667, b.Rate(), 0.001)
}

func TestSatisfactionBuckets(t *testing.T) {
	feedback := []FeedbackRecord{
		{Rating: RatingPositive, ModelID: "gpt-4", UserID: "u1", CreatedAt: ts(2025, time.March, 1, 0)},
		{Rating: RatingNegative, ModelID: "gpt-4", UserID: "u1", CreatedAt: ts(2025, time.March, 2, 0)},
		{Rating: RatingPositive, ModelID: "claude", UserID: "u2", CreatedAt: ts(2025, time.April, 1, 0)},
		{Rating: RatingNeutral, ModelID: "claude", UserID: "u2"},
		{Rating: RatingPositive, ModelID: "", UserID: ""},
	}

	t.Run("by model skips empty keys", func(t *testing.T) {
		byModel := SatisfactionByModel(feedback)
		require.Len(t, byModel, 2)
		assert.Equal(t, &BucketCounts{Positive: 1, Negative: 1, Total: 2}, byModel["gpt-4"])
		assert.Equal(t, &BucketCounts{Positive: 1, Total: 2}, byModel["claude"])
	})

	t.Run("by month excludes undated rows", func(t *testing.T) {
		byMonth := SatisfactionByMonth(feedback)
		require.Len(t, byMonth, 2)
		assert.Equal(t, 2, byMonth["2025-03"].Total)
		assert.Equal(t, 1, byMonth["2025-04"].Total)
	})

	t.Run("by user", func(t *testing.T) {
		byUser := SatisfactionByUser(feedback)
		require.Len(t, byUser, 2)
		assert.Equal(t, 2, byUser["u1"].Total)
	})
}

func TestClassCountsSumToRowCount(t *testing.T) {
	feedback := []FeedbackRecord{
		{Rating: RatingPositive},
		{Rating: RatingNegative},
		{Rating: RatingNeutral},
		{Rating: RatingUnrecognized},
		{Rating: RatingUnrecognized},
	}

	counts := ClassCounts(feedback)
	sum := 0
	for _, n := range counts {
		sum += n
	}
	assert.Equal(t, len(feedback), sum)
	assert.Equal(t, 2, counts[RatingUnrecognized])
}

func TestAggregationIsIdempotent(t *testing.T) {
	chats := []ChatRecord{
		{ID: "c1", UserID: "u1", Model: "gpt-4", CreatedAt: ts(2025, time.March, 1, 9)},
		{ID: "c2", UserID: "u2", CreatedAt: ts(2025, time.April, 2, 10)},
	}
	feedback := []FeedbackRecord{
		{Rating: RatingPositive, ModelID: "gpt-4", ChatID: "c1"},
	}

	assert.Equal(t, MonthlyChatVolume(chats), MonthlyChatVolume(chats))
	assert.Equal(t, ModelUsage(chats), ModelUsage(chats))
	assert.Equal(t, SatisfactionByModel(feedback), SatisfactionByModel(feedback))
	assert.Equal(t, ComplianceByChat(chats, feedback), ComplianceByChat(chats, feedback))
}

func TestComplianceByChat(t *testing.T) {
	chats := []ChatRecord{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}
	feedback := []FeedbackRecord{
		{ChatID: "c1", Rating: RatingPositive},
		{ChatID: "c2", Rating: RatingNeutral},
		{ChatID: "", Rating: RatingPositive},
		{ChatID: "missing", Rating: RatingNegative},
	}

	c := ComplianceByChat(chats, feedback)
	assert.Equal(t, 1, c.WithFeedback, "neutral feedback does not establish compliance")
	assert.Equal(t, 2, c.WithoutFeedback)
	assert.Equal(t, 3, c.TotalChats)
	assert.InDelta(t, 33.3333, c.Coverage(), 0.001)

	t.Run("no chats", func(t *testing.T) {
		c := ComplianceByChat(nil, feedback)
		assert.Zero(t, c.Coverage())
	})
}
