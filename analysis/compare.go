package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
)

// Comparison check names, in the fixed order they run.
const (
	CompareTotal       = "Total record count"
	ComparePositive    = "Positive count"
	CompareNegative    = "Negative count"
	CompareOther       = "Neutral/other count"
	CompareUniqueChats = "Unique chat count"
)

// ComparisonSummary is the set of counts compared between the database and
// an independently exported dataset. Positive and Negative here are literal:
// a rating of exactly 1 or exactly -1, not the classifier's token matching,
// because the exported datasets only ever carry numeric ratings.
type ComparisonSummary struct {
	Total       int `json:"total"`
	Positive    int `json:"positive"`
	Negative    int `json:"negative"`
	Other       int `json:"other"`
	UniqueChats int `json:"unique_chats"`
}

// comparisonRow is the feedback-row shape of the exported JSON file.
type comparisonRow struct {
	Data struct {
		Rating any `json:"rating"`
	} `json:"data"`
	Meta struct {
		ChatID string `json:"chat_id"`
	} `json:"meta"`
}

// LoadComparisonFile reads an exported feedback dataset: a JSON array of
// objects with data.rating and meta.chat_id.
func LoadComparisonFile(path string) (ComparisonSummary, error) {
	var summary ComparisonSummary

	data, err := os.ReadFile(path)
	if err != nil {
		return summary, errors.Wrap(err, "failed to read comparison file")
	}

	var rows []comparisonRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return summary, errors.Wrap(err, "failed to parse comparison file")
	}

	chatIDs := make(map[string]bool)
	for _, row := range rows {
		summary.Total++
		rating := DecodeRating(row.Data.Rating)
		switch {
		case ratingExactly(rating, 1):
			summary.Positive++
		case ratingExactly(rating, -1):
			summary.Negative++
		default:
			summary.Other++
		}
		if row.Meta.ChatID != "" {
			chatIDs[row.Meta.ChatID] = true
		}
	}
	summary.UniqueChats = len(chatIDs)

	return summary, nil
}

// SummarizeFeedback reduces extracted feedback records to the same counts,
// using the same literal rating rule as LoadComparisonFile.
func SummarizeFeedback(feedback []FeedbackRecord) ComparisonSummary {
	var summary ComparisonSummary
	chatIDs := make(map[string]bool)
	for _, f := range feedback {
		summary.Total++
		switch {
		case ratingExactly(f.RatingValue, 1):
			summary.Positive++
		case ratingExactly(f.RatingValue, -1):
			summary.Negative++
		default:
			summary.Other++
		}
		if f.ChatID != "" {
			chatIDs[f.ChatID] = true
		}
	}
	summary.UniqueChats = len(chatIDs)
	return summary
}

// Compare cross-validates the database-derived counts against the exported
// dataset's counts, requiring equality on every dimension.
func Compare(database, exported ComparisonSummary) []CheckResult {
	type pair struct {
		name     string
		db, file int
	}
	pairs := []pair{
		{CompareTotal, database.Total, exported.Total},
		{ComparePositive, database.Positive, exported.Positive},
		{CompareNegative, database.Negative, exported.Negative},
		{CompareOther, database.Other, exported.Other},
		{CompareUniqueChats, database.UniqueChats, exported.UniqueChats},
	}

	results := make([]CheckResult, 0, len(pairs))
	for _, p := range pairs {
		if p.db == p.file {
			results = append(results, CheckResult{Name: p.name, Passed: true, Detail: "OK"})
			continue
		}
		results = append(results, CheckResult{
			Name:   p.name,
			Detail: fmt.Sprintf("database has %d, exported file has %d", p.db, p.file),
		})
	}
	return results
}

// ratingExactly reports whether a rating value is numerically exactly n.
func ratingExactly(v RatingValue, n int64) bool {
	switch v.Kind {
	case RatingKindInt:
		return v.Int == n
	case RatingKindFloat:
		return v.Float == float64(n)
	default:
		return false
	}
}
