package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// UsersCmd prints user totals, role breakdown and last-active listing.
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "User totals, roles, last-active listing",
	RunE:  runUsers,
}

func runUsers(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	ext, err := extract(database)
	if err != nil {
		return err
	}

	data := report.NewUsersData(ext.Users, ext.Chats, loadConfig().Report.ActiveUsers)
	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(data)
	}
	report.Users(data)
	return nil
}
