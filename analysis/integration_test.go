package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	webuitesting "github.com/terry-li-hm/open-webui-db-analyzer/internal/testing"
)

// TestFullAnalysisRun walks a representative database through the whole
// pipeline: extraction, aggregation, compliance, and consistency checks.
func TestFullAnalysisRun(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	webuitesting.CreateWebUISchema(t, db)

	webuitesting.InsertUser(t, db, "u1", "Alice", "alice@example.com", "admin", 1735689600, 1704067200)
	webuitesting.InsertUser(t, db, "u2", "Bob", "bob@example.com", "user", 1735689600, 1704067200)
	webuitesting.InsertUser(t, db, "u3", "Carol", "carol@example.com", "user", 1735689600, 1704067200)

	chatJSON := `{"model": "gpt-4", "messages": [{"role": "user"}, {"role": "assistant"}]}`
	for i := 1; i <= 6; i++ {
		owner := fmt.Sprintf("u%d", (i-1)%3+1)
		webuitesting.InsertChat(t, db, fmt.Sprintf("c%d", i), owner, fmt.Sprintf("chat %d", i),
			chatJSON, int64(1735689600+i*86400))
	}

	ratings := []string{"1", "1", "1", "-1", "-1"}
	for i, r := range ratings {
		webuitesting.InsertFeedback(t, db, fmt.Sprintf("f%d", i+1), "u1",
			fmt.Sprintf(`{"rating": %s, "model_id": "gpt-4"}`, r),
			fmt.Sprintf(`{"chat_id": "c%d"}`, i+1),
			int64(1735689600+i*86400))
	}

	log := zaptest.NewLogger(t).Sugar()
	diag := NewDiagnostics()
	ext := NewExtractor(db, log, diag)

	users, err := ext.Users()
	require.NoError(t, err)
	chats, err := ext.Chats()
	require.NoError(t, err)
	feedback, err := ext.Feedback()
	require.NoError(t, err)

	require.Len(t, users, 3)
	require.Len(t, chats, 6)
	require.Len(t, feedback, 5)

	t.Run("satisfaction", func(t *testing.T) {
		overall := OverallSatisfaction(feedback)
		assert.Equal(t, 3, overall.Positive)
		assert.Equal(t, 2, overall.Negative)
		assert.InDelta(t, 60.0, overall.Rate(), 0.0001)
	})

	t.Run("compliance", func(t *testing.T) {
		c := ComplianceByChat(chats, feedback)
		assert.Equal(t, 5, c.WithFeedback)
		assert.Equal(t, 1, c.WithoutFeedback)
		assert.InDelta(t, 83.3333, c.Coverage(), 0.001)
	})

	t.Run("model usage", func(t *testing.T) {
		usage := ModelUsage(chats)
		assert.Equal(t, map[string]int{"gpt-4": 6}, usage)
	})

	t.Run("messages", func(t *testing.T) {
		stats := CountMessages(chats)
		assert.Equal(t, 12, stats.Total)
		assert.InDelta(t, 2.0, stats.AvgPerChat(len(chats)), 0.0001)
	})

	t.Run("clean diagnostics", func(t *testing.T) {
		assert.False(t, diag.HasParseErrors())
		assert.Equal(t, 6, diag.Outcome(ContextChatMessages).Success)
		assert.Equal(t, 5, diag.Outcome(ContextFeedbackData).Success)
		assert.NotEmpty(t, diag.RunID)
	})

	t.Run("consistency checks all pass", func(t *testing.T) {
		results := NewVerifier(db, log).Run()
		require.Len(t, results, 5)
		for _, r := range results {
			assert.True(t, r.Passed, r.Name)
		}
	})

	t.Run("comparison against own summary", func(t *testing.T) {
		summary := SummarizeFeedback(feedback)
		assert.Equal(t, 5, summary.Total)
		assert.Equal(t, 3, summary.Positive)
		assert.Equal(t, 2, summary.Negative)
		assert.Equal(t, 5, summary.UniqueChats)
		for _, r := range Compare(summary, summary) {
			assert.True(t, r.Passed, r.Name)
		}
	})
}

// TestFullAnalysisRunWithBadRows exercises the recovery path: one broken
// chat payload must not disturb anything beyond its own counters.
func TestFullAnalysisRunWithBadRows(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	webuitesting.CreateWebUISchema(t, db)
	webuitesting.InsertUser(t, db, "u1", "Alice", "alice@example.com", "user", 0, 1704067200)
	webuitesting.InsertChat(t, db, "c1", "u1", "fine", `{"messages": []}`, 1735689600)
	webuitesting.InsertChat(t, db, "c2", "u1", "broken", `{{{`, 1735689601)

	diag := NewDiagnostics()
	ext := NewExtractor(db, zaptest.NewLogger(t).Sugar(), diag)

	chats, err := ext.Chats()
	require.NoError(t, err, "row-level damage never aborts the scan")
	require.Len(t, chats, 2)

	assert.True(t, diag.HasParseErrors())
	assert.Equal(t, ParseOutcome{Success: 1, Failure: 1}, diag.Outcome(ContextChatMessages))
	assert.Equal(t, map[string]int{CounterChatMessages: 1}, diag.ParseErrors())

	usage := ModelUsage(chats)
	assert.Equal(t, 1, usage[BucketParseError])
	assert.Equal(t, 1, usage[BucketUnknownModel])
}
