package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// ModelsCmd prints chat counts per model.
var ModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Chat counts per model",
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	ext, err := extract(database)
	if err != nil {
		return err
	}

	data := report.NewModelsData(ext.Chats)
	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(data)
	}
	report.Models(data)
	return nil
}
