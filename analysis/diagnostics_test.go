package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics(t *testing.T) {
	t.Run("records outcomes per context", func(t *testing.T) {
		diag := NewDiagnostics()

		diag.RecordSuccess(ContextChatMessages)
		diag.RecordSuccess(ContextChatMessages)
		diag.RecordFailure(ContextChatMessages, CounterChatMessages)
		diag.RecordSuccess(ContextFeedbackData)

		chat := diag.Outcome(ContextChatMessages)
		assert.Equal(t, 2, chat.Success)
		assert.Equal(t, 1, chat.Failure)
		assert.Equal(t, 3, chat.Total())

		fb := diag.Outcome(ContextFeedbackData)
		assert.Equal(t, 1, fb.Success)
		assert.Equal(t, 0, fb.Failure)

		assert.Equal(t, []string{ContextChatMessages, ContextFeedbackData}, diag.Contexts())
	})

	t.Run("failure increments the named counter", func(t *testing.T) {
		diag := NewDiagnostics()
		diag.RecordFailure(ContextFeedbackData, CounterFeedbackData)

		assert.Equal(t, 1, diag.ParseErrors()[CounterFeedbackData])
		assert.True(t, diag.HasParseErrors())
	})

	t.Run("fresh accumulator is empty", func(t *testing.T) {
		diag := NewDiagnostics()

		assert.False(t, diag.HasParseErrors())
		assert.Empty(t, diag.Contexts())
		assert.Equal(t, ParseOutcome{}, diag.Outcome(ContextChatMessages))
		assert.NotEmpty(t, diag.RunID)
	})

	t.Run("run ids differ between runs", func(t *testing.T) {
		assert.NotEqual(t, NewDiagnostics().RunID, NewDiagnostics().RunID)
	})

	t.Run("nil accumulator is a no-op", func(t *testing.T) {
		var diag *Diagnostics
		diag.RecordSuccess(ContextChatMessages)
		diag.RecordFailure(ContextChatMessages, CounterChatMessages)
		diag.RecordUnknownRating("string", "meh")
		assert.False(t, diag.HasParseErrors())
	})
}

func TestParseOutcomeSuccessRate(t *testing.T) {
	assert.Equal(t, float64(0), ParseOutcome{}.SuccessRate())
	assert.Equal(t, float64(100), ParseOutcome{Success: 3}.SuccessRate())
	assert.Equal(t, float64(50), ParseOutcome{Success: 1, Failure: 1}.SuccessRate())
}
