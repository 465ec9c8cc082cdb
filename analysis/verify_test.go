package analysis

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	webuitesting "github.com/terry-li-hm/open-webui-db-analyzer/internal/testing"
)

func checkNames(results []CheckResult) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	return names
}

func TestVerifierCleanDatabase(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	webuitesting.CreateWebUISchema(t, db)
	webuitesting.InsertUser(t, db, "u1", "Alice", "alice@example.com", "user", 0, 0)
	webuitesting.InsertChat(t, db, "c1", "u1", "chat", `{"messages": []}`, 1700000000)
	webuitesting.InsertFeedback(t, db, "f1", "u1", `{"rating": 1}`, `{"chat_id": "c1"}`, 1700000000)

	v := NewVerifier(db, zaptest.NewLogger(t).Sugar())
	results := v.Run()

	require.Len(t, results, 5)
	assert.Equal(t, []string{
		CheckChatCountConsistency,
		CheckChatUserReferences,
		CheckFeedbackUserRefs,
		CheckFeedbackClassCounts,
		CheckChatPrimaryKeysUnique,
	}, checkNames(results), "checks run in a fixed order")
	for _, r := range results {
		assert.True(t, r.Passed, "check %q", r.Name)
		assert.Equal(t, "OK", r.Detail)
	}
}

func TestVerifierEmptyDatabase(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	webuitesting.CreateWebUISchema(t, db)

	results := NewVerifier(db, nil).Run()
	require.Len(t, results, 5)
	for _, r := range results {
		assert.True(t, r.Passed, "empty tables are vacuously consistent: %q", r.Name)
	}
}

func TestVerifierOrphanChat(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	webuitesting.CreateWebUISchema(t, db)
	webuitesting.InsertUser(t, db, "u1", "Alice", "alice@example.com", "user", 0, 0)
	webuitesting.InsertChat(t, db, "c1", "u1", "owned", `{}`, 1700000000)
	webuitesting.InsertChat(t, db, "c2", "ghost", "orphaned", `{}`, 1700000001)

	results := NewVerifier(db, zaptest.NewLogger(t).Sugar()).Run()
	require.Len(t, results, 5)

	failed := 0
	for _, r := range results {
		if r.Name == CheckChatUserReferences {
			assert.False(t, r.Passed)
			assert.Equal(t, "1 chats reference non-existent users", r.Detail)
			failed++
			continue
		}
		assert.True(t, r.Passed, "only the reference check should fail: %q", r.Name)
	}
	assert.Equal(t, 1, failed)
}

func TestVerifierDuplicateChatIDs(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	webuitesting.CreateWebUISchema(t, db)
	webuitesting.InsertUser(t, db, "u1", "Alice", "alice@example.com", "user", 0, 0)
	webuitesting.InsertChat(t, db, "dup", "u1", "first", `{}`, 1)
	webuitesting.InsertChat(t, db, "dup", "u1", "second", `{}`, 2)

	results := NewVerifier(db, nil).Run()
	last := results[len(results)-1]
	assert.Equal(t, CheckChatPrimaryKeysUnique, last.Name)
	assert.False(t, last.Passed)
	assert.Equal(t, "1 chat ids appear more than once", last.Detail)
}

func TestVerifierMissingFeedbackTable(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	stmts := []string{
		`CREATE TABLE user (id TEXT PRIMARY KEY, name TEXT, email TEXT, role TEXT, last_active_at INTEGER, created_at INTEGER)`,
		`CREATE TABLE chat (id TEXT, user_id TEXT, title TEXT, chat TEXT, created_at INTEGER, updated_at INTEGER, archived INTEGER, pinned INTEGER)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	results := NewVerifier(db, zaptest.NewLogger(t).Sugar()).Run()

	require.Len(t, results, 3, "feedback checks are omitted, not failed")
	names := checkNames(results)
	assert.NotContains(t, names, CheckFeedbackUserRefs)
	assert.NotContains(t, names, CheckFeedbackClassCounts)
	for _, r := range results {
		assert.True(t, r.Passed)
	}
}

// A run's diagnostics must reflect each row exactly once: the verifier's
// internal re-extraction never reports into the accumulator the run's own
// extraction already used.
func TestVerifierDoesNotInflateRunDiagnostics(t *testing.T) {
	db := webuitesting.CreateTestDB(t)
	webuitesting.CreateWebUISchema(t, db)
	webuitesting.InsertUser(t, db, "u1", "Alice", "alice@example.com", "user", 0, 0)
	webuitesting.InsertFeedback(t, db, "f1", "u1", `{"rating": "weird"}`, `{}`, 1700000000)

	diag := NewDiagnostics()
	ext := NewExtractor(db, zaptest.NewLogger(t).Sugar(), diag)
	_, err := ext.Feedback()
	require.NoError(t, err)

	results := NewVerifier(db, zaptest.NewLogger(t).Sugar()).Run()
	require.NotEmpty(t, results)

	assert.Equal(t, 1, diag.Outcome(ContextFeedbackData).Total())
	assert.Equal(t, map[string]int{"string:weird": 1}, diag.UnknownRatings())
}

func TestVerifierEngineErrorOmitsCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Every query errors: all five checks become unevaluable and are omitted.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)

	results := NewVerifier(db, zaptest.NewLogger(t).Sugar()).Run()
	assert.Empty(t, results)
}
