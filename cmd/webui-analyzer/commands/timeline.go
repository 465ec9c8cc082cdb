package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// TimelineCmd prints monthly, hourly and recent daily activity histograms.
var TimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Monthly, hourly and recent daily activity",
	RunE:  runTimeline,
}

func runTimeline(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	ext, err := extract(database)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	data := report.NewTimelineData(ext.Chats, cfg.Report.RecentDays, cfg.Report.BarWidth)
	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(data)
	}
	report.Timeline(data)
	return nil
}
