package report

import (
	"github.com/pterm/pterm"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
)

// QualityData is the payload behind the data quality report: consistency
// check results plus the run's extraction diagnostics.
type QualityData struct {
	RunID          string                            `json:"run_id"`
	Checks         []analysis.CheckResult            `json:"checks"`
	Outcomes       map[string]analysis.ParseOutcome  `json:"parse_outcomes"`
	ParseErrors    map[string]int                    `json:"parse_errors"`
	UnknownRatings map[string]int                    `json:"unknown_ratings"`
}

// NewQualityData assembles the quality payload from a finished run.
func NewQualityData(diag *analysis.Diagnostics, checks []analysis.CheckResult) QualityData {
	data := QualityData{
		Checks:         checks,
		Outcomes:       make(map[string]analysis.ParseOutcome),
		ParseErrors:    diag.ParseErrors(),
		UnknownRatings: diag.UnknownRatings(),
	}
	if diag != nil {
		data.RunID = diag.RunID
		for _, context := range diag.Contexts() {
			data.Outcomes[context] = diag.Outcome(context)
		}
	}
	return data
}

// Quality renders the consistency checks and extraction diagnostics.
func Quality(data QualityData) {
	Header("Data Quality Report")
	if data.RunID != "" {
		pterm.Printf("Run: %s\n", pterm.Gray(data.RunID))
	}

	Section("Consistency Checks")
	for _, check := range data.Checks {
		if check.Passed {
			pterm.Printf("  %s %s\n", pterm.LightGreen("✓"), check.Name)
		} else {
			pterm.Printf("  %s %s: %s\n", pterm.LightRed("✗"), check.Name, check.Detail)
		}
	}

	Section("Extraction Outcomes")
	for _, context := range analysis.SortedKeys(data.Outcomes) {
		outcome := data.Outcomes[context]
		pterm.Printf("%-20s %d ok, %d failed (%.1f%% success)\n",
			context, outcome.Success, outcome.Failure, outcome.SuccessRate())
	}

	if len(data.ParseErrors) > 0 {
		Section("Parse Errors")
		for _, counter := range analysis.SortedKeys(data.ParseErrors) {
			pterm.Warning.Printf("%s: %d\n", counter, data.ParseErrors[counter])
		}
	}

	if len(data.UnknownRatings) > 0 {
		Section("Unrecognized Ratings")
		for _, literal := range analysis.SortedKeys(data.UnknownRatings) {
			pterm.Warning.Printf("%s: %d\n", literal, data.UnknownRatings[literal])
		}
	}
}

// ComparisonData is the payload behind the comparison report.
type ComparisonData struct {
	Database analysis.ComparisonSummary `json:"database"`
	Exported analysis.ComparisonSummary `json:"exported"`
	Checks   []analysis.CheckResult     `json:"checks"`
}

// Comparison renders the database-vs-export cross-validation.
func Comparison(data ComparisonData) {
	Header("Feedback Cross-Validation")
	pterm.Printf("%-20s %10s %10s\n", "", "Database", "Exported")
	rows := []struct {
		name     string
		db, file int
	}{
		{"Total", data.Database.Total, data.Exported.Total},
		{"Positive", data.Database.Positive, data.Exported.Positive},
		{"Negative", data.Database.Negative, data.Exported.Negative},
		{"Other", data.Database.Other, data.Exported.Other},
		{"Unique chats", data.Database.UniqueChats, data.Exported.UniqueChats},
	}
	for _, row := range rows {
		pterm.Printf("%-20s %10d %10d\n", row.name, row.db, row.file)
	}

	Section("Checks")
	allPassed := true
	for _, check := range data.Checks {
		if check.Passed {
			pterm.Printf("  %s %s\n", pterm.LightGreen("✓"), check.Name)
		} else {
			allPassed = false
			pterm.Printf("  %s %s: %s\n", pterm.LightRed("✗"), check.Name, check.Detail)
		}
	}
	pterm.Println()
	if allPassed {
		pterm.Success.Println("Datasets match")
	} else {
		pterm.Warning.Println("Datasets diverge")
	}
}
