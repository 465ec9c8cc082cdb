package db

import (
	"database/sql"
	"fmt"

	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
)

// ExpectedTables are the tables every supported Open WebUI schema carries.
var ExpectedTables = []string{"user", "chat", "feedback", "auth", "config"}

// OptionalTables hold entities that only newer schema revisions populate.
// They feed the recent-changes report and are skipped silently when absent.
var OptionalTables = []string{"model", "knowledge", "function", "tool", "file"}

// TableCount pairs a table name with its row count.
type TableCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SchemaInfo describes the detected schema revision.
type SchemaInfo struct {
	AlembicVersion string   `json:"alembic_version"`
	MissingTables  []string `json:"missing_tables"`
	// OptionalPresent lists which newer-revision tables exist.
	OptionalPresent []string `json:"optional_present"`
}

// Tables returns every user table with its row count, ordered by name.
func Tables(database *sql.DB) ([]TableCount, error) {
	rows, err := database.Query(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan table name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate tables")
	}

	tables := make([]TableCount, 0, len(names))
	for _, name := range names {
		count, err := RowCount(database, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, TableCount{Name: name, Count: count})
	}
	return tables, nil
}

// RowCount returns the number of rows in the named table.
func RowCount(database *sql.DB, table string) (int, error) {
	var count int
	// Table names cannot be bound as parameters; brackets guard reserved words
	query := fmt.Sprintf("SELECT COUNT(*) FROM [%s]", table)
	if err := database.QueryRow(query).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count rows in %s", table)
	}
	return count, nil
}

// HasTable reports whether the named table exists.
func HasTable(database *sql.DB, table string) (bool, error) {
	var count int
	err := database.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name = ?
	`, table).Scan(&count)
	if err != nil {
		return false, errors.Wrapf(err, "failed to check for table %s", table)
	}
	return count > 0, nil
}

// Schema detects the schema revision: alembic version and any expected
// tables that are missing.
func Schema(database *sql.DB) (*SchemaInfo, error) {
	info := &SchemaInfo{MissingTables: []string{}, OptionalPresent: []string{}}

	for _, table := range ExpectedTables {
		exists, err := HasTable(database, table)
		if err != nil {
			return nil, err
		}
		if !exists {
			info.MissingTables = append(info.MissingTables, table)
		}
	}

	for _, table := range OptionalTables {
		exists, err := HasTable(database, table)
		if err != nil {
			return nil, err
		}
		if exists {
			info.OptionalPresent = append(info.OptionalPresent, table)
		}
	}

	hasAlembic, err := HasTable(database, "alembic_version")
	if err != nil {
		return nil, err
	}
	if hasAlembic {
		err := database.QueryRow("SELECT version_num FROM alembic_version").Scan(&info.AlembicVersion)
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.Wrap(err, "failed to read alembic version")
		}
	}

	return info, nil
}
