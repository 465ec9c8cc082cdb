package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// ExportCmd writes all chats to a JSON file, joined with user name/email.
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export chats to JSON",
	RunE:  runExport,
}

var exportOutputFlag string

func init() {
	ExportCmd.Flags().StringVar(&exportOutputFlag, "output", "", "Output file path (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	output := exportOutputFlag
	if output == "" {
		output = loadConfig().Export.Path
	}
	if output == "" {
		output = "chats_export.json"
	}

	ext, err := extract(database)
	if err != nil {
		return err
	}

	_, err = report.ExportChats(output, ext.Chats, ext.Users)
	return err
}
