package db

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
)

// SQLiteBusyTimeoutMS is the busy timeout applied to every connection.
const SQLiteBusyTimeoutMS = 5000

// Open opens the Open WebUI SQLite database at path for read-only analysis.
// If logger is provided, logs database operations; otherwise operates silently.
//
// The database file must already exist: this tool never creates or writes
// the source database, and a missing file is a fatal condition for the run.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrDatabaseNotFound, "%s", path)
	}

	if logger != nil {
		logger.Debugw("Opening database", "path", path)
	}

	database, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// Guard against accidental writes through this handle
	if _, err := database.Exec("PRAGMA query_only = ON"); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to enable query_only mode")
	}

	if _, err := database.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", SQLiteBusyTimeoutMS)); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	// Surface engine-level corruption or permission errors now rather than
	// on the first table scan
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if logger != nil {
		logger.Infow("Database opened successfully",
			"path", path,
			"read_only", true,
		)
	}

	return database, nil
}

// FileSizeBytes returns the on-disk size of the database file.
func FileSizeBytes(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to stat database file")
	}
	return info.Size(), nil
}
