package report

import (
	"github.com/pterm/pterm"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
)

// FeedbackData is the payload behind the satisfaction report.
type FeedbackData struct {
	Overall    analysis.BucketCounts            `json:"overall"`
	ByMonth    map[string]*analysis.BucketCounts `json:"by_month"`
	ByModel    map[string]*analysis.BucketCounts `json:"by_model"`
	ByUser     map[string]*analysis.BucketCounts `json:"by_user"`
	Classes    map[string]int                   `json:"classes"`
	Compliance analysis.Compliance              `json:"compliance"`
	Coverage   float64                          `json:"coverage_percent"`
	UserNames  map[string]string                `json:"-"`
}

// NewFeedbackData aggregates feedback records into the satisfaction payload.
func NewFeedbackData(chats []analysis.ChatRecord, feedback []analysis.FeedbackRecord, users []analysis.User) FeedbackData {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}

	classes := make(map[string]int)
	for class, count := range analysis.ClassCounts(feedback) {
		classes[class.String()] = count
	}

	compliance := analysis.ComplianceByChat(chats, feedback)
	return FeedbackData{
		Overall:    analysis.OverallSatisfaction(feedback),
		ByMonth:    analysis.SatisfactionByMonth(feedback),
		ByModel:    analysis.SatisfactionByModel(feedback),
		ByUser:     analysis.SatisfactionByUser(feedback),
		Classes:    classes,
		Compliance: compliance,
		Coverage:   compliance.Coverage(),
		UserNames:  names,
	}
}

// Feedback renders the satisfaction report: overall rate, month/model/user
// breakdowns and chat feedback coverage.
func Feedback(data FeedbackData) {
	Header("Feedback & Satisfaction Analysis")

	pterm.Printf("\nTotal Feedback: %d\n", data.Overall.Total)
	pterm.Printf("  - Positive: %d\n", data.Overall.Positive)
	pterm.Printf("  - Negative: %d\n", data.Overall.Negative)
	pterm.Printf("  - Satisfaction rate: %.1f%%\n", data.Overall.Rate())

	Section("Satisfaction by Month")
	printBuckets(data.ByMonth, nil)

	Section("Satisfaction by Model")
	printBuckets(data.ByModel, nil)

	Section("Satisfaction by User")
	printBuckets(data.ByUser, data.UserNames)

	Section("Rating Classes")
	for _, class := range analysis.SortedKeys(data.Classes) {
		pterm.Printf("  - %s: %d\n", class, data.Classes[class])
	}

	Section("Chat Feedback Coverage")
	pterm.Printf("Chats with rated feedback: %d of %d (%.1f%%)\n",
		data.Compliance.WithFeedback, data.Compliance.TotalChats, data.Coverage)
}

func printBuckets(buckets map[string]*analysis.BucketCounts, names map[string]string) {
	for _, key := range analysis.SortedKeys(buckets) {
		b := buckets[key]
		label := key
		if names != nil {
			if name, ok := names[key]; ok {
				label = name
			}
		}
		pterm.Printf("%-30s %4d👍 %4d👎 %6.1f%% (%d total)\n",
			truncate(label, 29), b.Positive, b.Negative, b.Rate(), b.Total)
	}
}
