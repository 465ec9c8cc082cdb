package commands

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/db"
	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// SummaryCmd prints the database inventory followed by chat volume, the
// same pairing the analyzer has always used as its default view.
var SummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Database inventory plus chat volume",
	RunE:  RunDefault,
}

// RunDefault is the bare-invocation behavior: summary then chats.
func RunDefault(cmd *cobra.Command, args []string) error {
	database, path, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	summaryData, err := buildSummaryData(database, path)
	if err != nil {
		return err
	}

	ext, err := extract(database)
	if err != nil {
		return err
	}
	cfg := loadConfig()
	summaryData.Recent = report.RecentChats(ext.Chats, cfg.Report.RecentChanges)
	chatsData := report.NewChatsData(ext.Chats, ext.Users, cfg.Report.TopUsers)

	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(struct {
			Summary report.SummaryData `json:"summary"`
			Chats   report.ChatsData   `json:"chats"`
		}{summaryData, chatsData})
	}

	report.Summary(summaryData)
	report.Chats(chatsData)
	return nil
}

func buildSummaryData(database *sql.DB, path string) (report.SummaryData, error) {
	tables, err := db.Tables(database)
	if err != nil {
		return report.SummaryData{}, err
	}
	schema, err := db.Schema(database)
	if err != nil {
		return report.SummaryData{}, err
	}
	size, err := db.FileSizeBytes(path)
	if err != nil {
		return report.SummaryData{}, err
	}
	return report.NewSummaryData(path, size, tables, schema), nil
}
