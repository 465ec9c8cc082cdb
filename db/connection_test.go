package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
)

func openWritable(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path)
}

func createDatabaseFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webui.db")

	// Use a writable handle to create the file; Open() itself is read-only
	setup, err := openWritable(path)
	require.NoError(t, err)
	_, err = setup.Exec(`CREATE TABLE user (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, setup.Close())

	return path
}

func TestOpen(t *testing.T) {
	t.Run("opens existing database read-only", func(t *testing.T) {
		path := createDatabaseFile(t)

		database, err := Open(path, zaptest.NewLogger(t).Sugar())
		require.NoError(t, err)
		require.NotNil(t, database)
		defer database.Close()

		var queryOnly int
		err = database.QueryRow("PRAGMA query_only").Scan(&queryOnly)
		require.NoError(t, err)
		assert.Equal(t, 1, queryOnly)

		// Writes through this handle must fail
		_, err = database.Exec(`INSERT INTO user VALUES ('u1')`)
		assert.Error(t, err)
	})

	t.Run("nil logger operates silently", func(t *testing.T) {
		path := createDatabaseFile(t)

		database, err := Open(path, nil)
		require.NoError(t, err)
		database.Close()
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.db")

		database, err := Open(missing, nil)
		require.Error(t, err)
		assert.Nil(t, database)
		assert.True(t, errors.IsDatabaseNotFound(err))

		// The missing file must never be created as a side effect
		_, statErr := FileSizeBytes(missing)
		assert.Error(t, statErr)
	})
}

func TestFileSizeBytes(t *testing.T) {
	path := createDatabaseFile(t)

	size, err := FileSizeBytes(path)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))
}
