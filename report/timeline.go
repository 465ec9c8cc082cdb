package report

import (
	"sort"

	"github.com/pterm/pterm"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
)

// TimelineData is the payload behind the timeline report.
type TimelineData struct {
	Monthly map[string]int `json:"monthly"`
	Hourly  [24]int        `json:"hourly"`
	Daily   map[string]int `json:"daily"`
	// RecentDays is how many trailing day buckets the daily section shows.
	RecentDays int `json:"recent_days"`
	BarWidth   int `json:"-"`
}

// NewTimelineData aggregates chat records into the timeline payload.
func NewTimelineData(chats []analysis.ChatRecord, recentDays, barWidth int) TimelineData {
	return TimelineData{
		Monthly:    analysis.MonthlyChatVolume(chats),
		Hourly:     analysis.HourlyChatVolume(chats),
		Daily:      analysis.DailyChatVolume(chats),
		RecentDays: recentDays,
		BarWidth:   barWidth,
	}
}

// recentDailyKeys returns the last n day keys present in the data, ascending.
// Day keys sort chronologically, so the tail of the sorted keys is the most
// recent activity.
func (t TimelineData) recentDailyKeys() []string {
	keys := analysis.SortedKeys(t.Daily)
	if t.RecentDays > 0 && len(keys) > t.RecentDays {
		keys = keys[len(keys)-t.RecentDays:]
	}
	return keys
}

// Timeline renders monthly, hourly and recent-daily chat histograms.
func Timeline(data TimelineData) {
	Header("Chat Timeline Analysis")

	Section("Chats by Month")
	monthMax := maxValue(data.Monthly)
	for _, month := range analysis.SortedKeys(data.Monthly) {
		count := data.Monthly[month]
		pterm.Printf("%s: %5d %s\n", month, count, bar(count, monthMax, data.BarWidth))
	}

	Section("Chats by Hour of Day")
	hourMax := 0
	for _, count := range data.Hourly {
		if count > hourMax {
			hourMax = count
		}
	}
	for hour, count := range data.Hourly {
		pterm.Printf("%02d:00 %5d %s\n", hour, count, bar(count, hourMax, data.BarWidth))
	}

	Section("Recent Daily Activity")
	keys := data.recentDailyKeys()
	dayMax := 0
	for _, day := range keys {
		if data.Daily[day] > dayMax {
			dayMax = data.Daily[day]
		}
	}
	for _, day := range keys {
		count := data.Daily[day]
		pterm.Printf("%s: %4d %s\n", day, count, bar(count, dayMax, data.BarWidth))
	}
}

// ModelCount pairs a model identifier with its chat tally.
type ModelCount struct {
	Model string `json:"model"`
	Chats int    `json:"chats"`
}

// ModelsData is the payload behind the model usage report.
type ModelsData struct {
	Usage []ModelCount `json:"usage"`
}

// NewModelsData aggregates chat records into model usage, descending by
// count with model name as the tie-breaker. The sentinel buckets
// "(unknown)" and "(parse error)" always trail real models on ties; their
// leading parenthesis would otherwise sort them first.
func NewModelsData(chats []analysis.ChatRecord) ModelsData {
	usage := analysis.ModelUsage(chats)
	rows := make([]ModelCount, 0, len(usage))
	for model, count := range usage {
		rows = append(rows, ModelCount{Model: model, Chats: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Chats != rows[j].Chats {
			return rows[i].Chats > rows[j].Chats
		}
		if si, sj := sentinelBucket(rows[i].Model), sentinelBucket(rows[j].Model); si != sj {
			return sj
		}
		return rows[i].Model < rows[j].Model
	})
	return ModelsData{Usage: rows}
}

func sentinelBucket(model string) bool {
	return model == analysis.BucketUnknownModel || model == analysis.BucketParseError
}

// Models renders the model usage report.
func Models(data ModelsData) {
	Header("Model Usage Analysis")
	pterm.Printf("\n%-50s %10s\n", "Model", "Chats")
	for _, row := range data.Usage {
		pterm.Printf("%-50s %10d\n", truncate(row.Model, 49), row.Chats)
	}
}
