package analysis

import (
	"sort"
)

// Aggregation buckets for rows that cannot be attributed to a model.
const (
	// BucketUnknownModel collects chats where no model identifier resolved.
	BucketUnknownModel = "(unknown)"
	// BucketParseError collects chats whose payload failed to decode.
	BucketParseError = "(parse error)"
)

// BucketCounts holds the per-bucket feedback tallies.
type BucketCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Total    int `json:"total"`
}

// Rate returns the satisfaction rate positive/(positive+negative) as a
// percentage in [0,100]. A bucket with no rated feedback has rate 0; the
// computation never divides by zero and never produces NaN.
func (b BucketCounts) Rate() float64 {
	rated := b.Positive + b.Negative
	if rated == 0 {
		return 0
	}
	return float64(b.Positive) / float64(rated) * 100
}

// SortedKeys returns the map's keys in lexicographic order. Bucket iteration
// order is a contract: reports are diffed against expected snapshots, and
// year-month keys sort chronologically under this ordering.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MonthlyChatVolume buckets chats by creation month. Chats without a
// creation timestamp are excluded.
func MonthlyChatVolume(chats []ChatRecord) map[string]int {
	monthly := make(map[string]int)
	for _, c := range chats {
		if key := c.CreatedAt.Month(); key != "" {
			monthly[key]++
		}
	}
	return monthly
}

// DailyChatVolume buckets chats by creation day.
func DailyChatVolume(chats []ChatRecord) map[string]int {
	daily := make(map[string]int)
	for _, c := range chats {
		if key := c.CreatedAt.Day(); key != "" {
			daily[key]++
		}
	}
	return daily
}

// HourlyChatVolume buckets chats by hour of day.
func HourlyChatVolume(chats []ChatRecord) [24]int {
	var hourly [24]int
	for _, c := range chats {
		if h := c.CreatedAt.Hour(); h >= 0 {
			hourly[h]++
		}
	}
	return hourly
}

// ChatsPerUser counts chats per owning user id.
func ChatsPerUser(chats []ChatRecord) map[string]int {
	perUser := make(map[string]int)
	for _, c := range chats {
		perUser[c.UserID]++
	}
	return perUser
}

// ModelUsage counts chats per resolved model identifier. Chats with no
// resolvable model land in "(unknown)"; undecodable ones in "(parse error)".
func ModelUsage(chats []ChatRecord) map[string]int {
	usage := make(map[string]int)
	for _, c := range chats {
		switch {
		case c.ParseFailed:
			usage[BucketParseError]++
		case c.Model == "":
			usage[BucketUnknownModel]++
		default:
			usage[c.Model]++
		}
	}
	return usage
}

// MessageStats summarizes parsed message counts across chats.
type MessageStats struct {
	Total     int
	User      int
	Assistant int
}

// AvgPerChat returns the mean message count per chat, 0 for no chats.
func (s MessageStats) AvgPerChat(chatCount int) float64 {
	if chatCount == 0 {
		return 0
	}
	return float64(s.Total) / float64(chatCount)
}

// CountMessages tallies messages by role across all chats.
func CountMessages(chats []ChatRecord) MessageStats {
	var stats MessageStats
	for _, c := range chats {
		for _, m := range c.Messages {
			stats.Total++
			switch m.Role {
			case RoleUser:
				stats.User++
			case RoleAssistant:
				stats.Assistant++
			}
		}
	}
	return stats
}

// ChatStatus summarizes archived/active/pinned splits.
type ChatStatus struct {
	Active   int
	Archived int
	Pinned   int
}

// CountChatStatus tallies the archived/active/pinned split. Pinned overlaps
// with both others, matching the historical report.
func CountChatStatus(chats []ChatRecord) ChatStatus {
	var status ChatStatus
	for _, c := range chats {
		if c.Archived {
			status.Archived++
		} else {
			status.Active++
		}
		if c.Pinned {
			status.Pinned++
		}
	}
	return status
}

// OverallSatisfaction tallies the whole feedback set into one bucket.
// Total counts every row, rated or not.
func OverallSatisfaction(feedback []FeedbackRecord) BucketCounts {
	var b BucketCounts
	for _, f := range feedback {
		b.Total++
		switch f.Rating {
		case RatingPositive:
			b.Positive++
		case RatingNegative:
			b.Negative++
		}
	}
	return b
}

// SatisfactionByMonth buckets feedback by creation month. Records without a
// timestamp are excluded from month buckets (they still count in the
// overall tally).
func SatisfactionByMonth(feedback []FeedbackRecord) map[string]*BucketCounts {
	return satisfactionBy(feedback, func(f FeedbackRecord) string { return f.CreatedAt.Month() })
}

// SatisfactionByModel buckets feedback by model identifier.
func SatisfactionByModel(feedback []FeedbackRecord) map[string]*BucketCounts {
	return satisfactionBy(feedback, func(f FeedbackRecord) string { return f.ModelID })
}

// SatisfactionByUser buckets feedback by submitting user id.
func SatisfactionByUser(feedback []FeedbackRecord) map[string]*BucketCounts {
	return satisfactionBy(feedback, func(f FeedbackRecord) string { return f.UserID })
}

func satisfactionBy(feedback []FeedbackRecord, key func(FeedbackRecord) string) map[string]*BucketCounts {
	buckets := make(map[string]*BucketCounts)
	for _, f := range feedback {
		k := key(f)
		if k == "" {
			continue
		}
		b, ok := buckets[k]
		if !ok {
			b = &BucketCounts{}
			buckets[k] = b
		}
		b.Total++
		switch f.Rating {
		case RatingPositive:
			b.Positive++
		case RatingNegative:
			b.Negative++
		}
	}
	return buckets
}

// ClassCounts tallies feedback rows per rating class. Parse-failed rows
// carry RatingUnrecognized, so the four classes always sum to the row count.
func ClassCounts(feedback []FeedbackRecord) map[RatingClass]int {
	counts := make(map[RatingClass]int)
	for _, f := range feedback {
		counts[f.Rating]++
	}
	return counts
}

// Compliance summarizes chat-feedback coverage.
type Compliance struct {
	WithFeedback    int
	WithoutFeedback int
	TotalChats      int
}

// Coverage returns the fraction of chats with recognized feedback as a
// percentage in [0,100], 0 when there are no chats.
func (c Compliance) Coverage() float64 {
	if c.TotalChats == 0 {
		return 0
	}
	return float64(c.WithFeedback) / float64(c.TotalChats) * 100
}

// ComplianceByChat maps feedback to chats via chat id. A chat counts as
// "with feedback" only when at least one associated feedback resolved to a
// recognized rating (positive or negative); neutral and unrecognized
// feedback does not establish compliance.
func ComplianceByChat(chats []ChatRecord, feedback []FeedbackRecord) Compliance {
	rated := make(map[string]bool)
	for _, f := range feedback {
		if f.ChatID == "" {
			continue
		}
		if f.Rating == RatingPositive || f.Rating == RatingNegative {
			rated[f.ChatID] = true
		}
	}

	c := Compliance{TotalChats: len(chats)}
	for _, chat := range chats {
		if rated[chat.ID] {
			c.WithFeedback++
		} else {
			c.WithoutFeedback++
		}
	}
	return c
}
