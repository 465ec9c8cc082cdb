// Package testing provides shared database fixtures for analyzer tests.
package testing

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// CreateTestDB creates an in-memory SQLite test database.
// Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateWebUISchema creates the Open WebUI tables used by the analyzer:
// user, chat, feedback, auth, config and alembic_version.
func CreateWebUISchema(t *testing.T, db *sql.DB) {
	t.Helper()

	stmts := []string{
		`CREATE TABLE user (id TEXT PRIMARY KEY, name TEXT, email TEXT, role TEXT DEFAULT 'user', last_active_at INTEGER, created_at INTEGER)`,
		`CREATE TABLE chat (id TEXT, user_id TEXT, title TEXT, chat TEXT, created_at INTEGER, updated_at INTEGER, archived INTEGER DEFAULT 0, pinned INTEGER DEFAULT 0, meta TEXT)`,
		`CREATE TABLE feedback (id TEXT PRIMARY KEY, user_id TEXT, data TEXT, meta TEXT, created_at INTEGER)`,
		`CREATE TABLE auth (id TEXT PRIMARY KEY)`,
		`CREATE TABLE config (id TEXT PRIMARY KEY)`,
		`CREATE TABLE alembic_version (version_num TEXT)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create schema: %v", err)
		}
	}
	if _, err := db.Exec(`INSERT INTO alembic_version VALUES ('test_v1')`); err != nil {
		t.Fatalf("Failed to seed alembic_version: %v", err)
	}
}

// InsertUser adds a user row.
func InsertUser(t *testing.T, db *sql.DB, id, name, email, role string, lastActive, created int64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO user VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, email, role, lastActive, created)
	if err != nil {
		t.Fatalf("Failed to insert user %s: %v", id, err)
	}
}

// InsertChat adds a chat row with the given JSON payload.
func InsertChat(t *testing.T, db *sql.DB, id, userID, title, chatJSON string, createdAt int64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO chat (id, user_id, title, chat, created_at, updated_at, archived, pinned, meta)
		 VALUES (?, ?, ?, ?, ?, ?, 0, 0, '{}')`,
		id, userID, title, chatJSON, createdAt, createdAt)
	if err != nil {
		t.Fatalf("Failed to insert chat %s: %v", id, err)
	}
}

// InsertFeedback adds a feedback row with the given data and meta JSON.
func InsertFeedback(t *testing.T, db *sql.DB, id, userID, dataJSON, metaJSON string, createdAt int64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO feedback VALUES (?, ?, ?, ?, ?)`,
		id, userID, dataJSON, metaJSON, createdAt)
	if err != nil {
		t.Fatalf("Failed to insert feedback %s: %v", id, err)
	}
}
