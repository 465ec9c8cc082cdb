// Package commands implements the webui-analyzer subcommands.
package commands

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
	"github.com/terry-li-hm/open-webui-db-analyzer/config"
	"github.com/terry-li-hm/open-webui-db-analyzer/db"
	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
	"github.com/terry-li-hm/open-webui-db-analyzer/logger"
)

// databasePath resolves the database path: --db flag, then configuration.
func databasePath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Root().PersistentFlags().GetString("db"); path != "" {
		return path, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", errors.Wrap(err, "failed to load configuration")
	}
	return cfg.GetDatabasePath(), nil
}

// openDatabase opens the configured database read-only. The caller owns the
// returned handle.
func openDatabase(cmd *cobra.Command) (*sql.DB, string, error) {
	path, err := databasePath(cmd)
	if err != nil {
		return nil, "", err
	}
	database, err := db.Open(path, logger.Logger)
	if err != nil {
		return nil, "", err
	}
	return database, path, nil
}

// loadConfig loads the analyzer configuration, with defaults on failure so
// report limits always have sane values.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Warnw("Failed to load configuration, using defaults", "error", err.Error())
		return &config.Config{}
	}
	return cfg
}

// extraction bundles one run's extracted records and its diagnostics.
type extraction struct {
	Users    []analysis.User
	Chats    []analysis.ChatRecord
	Feedback []analysis.FeedbackRecord
	Diag     *analysis.Diagnostics
}

// extract runs the full extraction pass. Feedback is skipped (left empty)
// when the table does not exist; older schema revisions predate it.
func extract(database *sql.DB) (*extraction, error) {
	diag := analysis.NewDiagnostics()
	ext := analysis.NewExtractor(database, logger.Logger, diag)

	users, err := ext.Users()
	if err != nil {
		return nil, err
	}
	chats, err := ext.Chats()
	if err != nil {
		return nil, err
	}

	var feedback []analysis.FeedbackRecord
	hasFeedback, err := db.HasTable(database, "feedback")
	if err != nil {
		return nil, err
	}
	if hasFeedback {
		feedback, err = ext.Feedback()
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warnw("Feedback table missing, skipping feedback extraction", "table", "feedback")
	}

	return &extraction{Users: users, Chats: chats, Feedback: feedback, Diag: diag}, nil
}
