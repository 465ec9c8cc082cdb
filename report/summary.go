package report

import (
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
	"github.com/terry-li-hm/open-webui-db-analyzer/db"
)

// RecentChat is one row of the summary's recent-changes section.
type RecentChat struct {
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at"`
}

// SummaryData is the payload behind the summary report.
type SummaryData struct {
	Path      string          `json:"path"`
	SizeBytes int64           `json:"size_bytes"`
	Tables    []db.TableCount `json:"tables"`
	TotalRows int             `json:"total_rows"`
	Schema    *db.SchemaInfo  `json:"schema"`
	Recent    []RecentChat    `json:"recent_chats,omitempty"`
}

// NewSummaryData assembles the summary payload from schema-level facts.
func NewSummaryData(path string, sizeBytes int64, tables []db.TableCount, schema *db.SchemaInfo) SummaryData {
	total := 0
	for _, t := range tables {
		total += t.Count
	}
	return SummaryData{
		Path:      path,
		SizeBytes: sizeBytes,
		Tables:    tables,
		TotalRows: total,
		Schema:    schema,
	}
}

// RecentChats returns the most recently updated chats, newest first,
// limited to limit rows. Chats without an update timestamp are skipped.
func RecentChats(chats []analysis.ChatRecord, limit int) []RecentChat {
	sorted := make([]analysis.ChatRecord, 0, len(chats))
	for _, c := range chats {
		if c.UpdatedAt.Valid {
			sorted = append(sorted, c)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].UpdatedAt.Time.Equal(sorted[j].UpdatedAt.Time) {
			return sorted[i].UpdatedAt.Time.After(sorted[j].UpdatedAt.Time)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	recent := make([]RecentChat, 0, len(sorted))
	for _, c := range sorted {
		recent = append(recent, RecentChat{Title: c.Title, UpdatedAt: c.UpdatedAt.Display()})
	}
	return recent
}

// Summary renders the database inventory: path, size, per-table row counts
// and detected schema revision.
func Summary(data SummaryData) {
	Header("Open WebUI Database Summary")
	pterm.Printf("Database: %s\n", data.Path)
	pterm.Printf("Size: %.2f MB\n", float64(data.SizeBytes)/(1024*1024))

	Section("Tables")
	pterm.Printf("%-25s %10s\n", "Table", "Records")
	for _, t := range data.Tables {
		pterm.Printf("%-25s %10d\n", truncate(t.Name, 24), t.Count)
	}
	pterm.Printf("%-25s %10d\n", "TOTAL", data.TotalRows)

	if data.Schema == nil {
		return
	}
	Section("Schema")
	if data.Schema.AlembicVersion != "" {
		pterm.Printf("Migration revision: %s\n", data.Schema.AlembicVersion)
	} else {
		pterm.Printf("Migration revision: %s\n", pterm.Gray("unknown"))
	}
	if len(data.Schema.MissingTables) == 0 {
		pterm.Success.Println("All expected tables present")
	} else {
		for _, name := range data.Schema.MissingTables {
			pterm.Warning.Printf("Expected table missing: %s\n", name)
		}
	}
	if len(data.Schema.OptionalPresent) > 0 {
		pterm.Printf("Newer schema tables: %s\n", pterm.Gray(strings.Join(data.Schema.OptionalPresent, ", ")))
	}

	if len(data.Recent) > 0 {
		Section("Recent Changes")
		for _, row := range data.Recent {
			pterm.Printf("%-20s %s\n", row.UpdatedAt, truncate(row.Title, 50))
		}
	}
}
