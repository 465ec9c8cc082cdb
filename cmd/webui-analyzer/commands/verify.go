package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
	"github.com/terry-li-hm/open-webui-db-analyzer/logger"
	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// VerifyCmd runs the consistency checks and prints the data quality report.
// Failed checks are reported, never fatal; the command only errors on
// engine-level problems.
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Consistency checks and data quality diagnostics",
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	// One extraction pass feeds the diagnostics; the verifier's own
	// re-scans never touch them.
	ext, err := extract(database)
	if err != nil {
		return err
	}
	checks := analysis.NewVerifier(database, logger.Logger).Run()

	data := report.NewQualityData(ext.Diag, checks)
	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(data)
	}
	report.Quality(data)
	return nil
}
