package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
	"github.com/terry-li-hm/open-webui-db-analyzer/logger"
	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// AllCmd runs every report in sequence, ending with the consistency checks.
var AllCmd = &cobra.Command{
	Use:   "all",
	Short: "Every report in sequence",
	RunE:  runAll,
}

func runAll(cmd *cobra.Command, args []string) error {
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
	usersData := report.NewUsersData(ext.Users, ext.Chats, cfg.Report.ActiveUsers)
	timelineData := report.NewTimelineData(ext.Chats, cfg.Report.RecentDays, cfg.Report.BarWidth)
	modelsData := report.NewModelsData(ext.Chats)
	feedbackData := report.NewFeedbackData(ext.Chats, ext.Feedback, ext.Users)

	checks := analysis.NewVerifier(database, logger.Logger).Run()
	qualityData := report.NewQualityData(ext.Diag, checks)

	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(struct {
			Summary  report.SummaryData  `json:"summary"`
			Chats    report.ChatsData    `json:"chats"`
			Users    report.UsersData    `json:"users"`
			Timeline report.TimelineData `json:"timeline"`
			Models   report.ModelsData   `json:"models"`
			Feedback report.FeedbackData `json:"feedback"`
			Quality  report.QualityData  `json:"quality"`
		}{summaryData, chatsData, usersData, timelineData, modelsData, feedbackData, qualityData})
	}

	report.Summary(summaryData)
	report.Chats(chatsData)
	report.Users(usersData)
	report.Timeline(timelineData)
	report.Models(modelsData)
	report.Feedback(feedbackData)
	report.Quality(qualityData)
	return nil
}
