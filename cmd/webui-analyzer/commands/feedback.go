package commands

import (
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/db"
	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// FeedbackCmd prints satisfaction rates and chat feedback coverage.
var FeedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Satisfaction rates and chat feedback coverage",
	RunE:  runFeedback,
}

func runFeedback(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	hasFeedback, err := db.HasTable(database, "feedback")
	if err != nil {
		return err
	}
	if !hasFeedback {
		return errors.WithHint(
			errors.Wrap(errors.ErrTableMissing, "feedback"),
			"this schema revision predates the feedback table")
	}

	ext, err := extract(database)
	if err != nil {
		return err
	}

	data := report.NewFeedbackData(ext.Chats, ext.Feedback, ext.Users)
	if report.ShouldOutputJSON(cmd) {
		return report.OutputJSON(data)
	}
	report.Feedback(data)
	return nil
}
