package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// CompareCmd cross-validates database feedback counts against an exported
// JSON dataset.
var CompareCmd = &cobra.Command{
	Use:   "compare <exported-feedback.json>",
	Short: "Cross-validate feedback against an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	ext, err := extract(database)
	if err != nil {
		return err
	}

	exported, err := analysis.LoadComparisonFile(args[0])
	if err != nil {
		return err
	}

	fromDB := analysis.SummarizeFeedback(ext.Feedback)
	data := report.ComparisonData{
		Database: fromDB,
		Exported: exported,
		Checks:   analysis.Compare(fromDB, exported),
	}

	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(data)
	}
	report.Comparison(data)
	return nil
}
