package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// ChatsCmd prints chat volume, per-user counts and message statistics.
var ChatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Chat volume, per-user counts, message statistics",
	RunE:  runChats,
}

func runChats(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	ext, err := extract(database)
	if err != nil {
		return err
	}

	data := report.NewChatsData(ext.Chats, ext.Users, loadConfig().Report.TopUsers)
	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(data)
	}
	report.Chats(data)
	return nil
}
