package report

import (
	"sort"

	"github.com/pterm/pterm"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
)

// UserChatCount pairs a user with their chat tally, for the per-user table.
type UserChatCount struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Chats int    `json:"chats"`
}

// ChatsData is the payload behind the chat volume report.
type ChatsData struct {
	TotalChats int                   `json:"total_chats"`
	Status     analysis.ChatStatus   `json:"status"`
	PerUser    []UserChatCount       `json:"per_user"`
	Messages   analysis.MessageStats `json:"messages"`
	AvgPerChat float64               `json:"avg_messages_per_chat"`
}

// NewChatsData aggregates chat records into the chat volume payload.
// topUsers limits the per-user table, descending by chat count with name as
// the tie-breaker so the table is deterministic.
func NewChatsData(chats []analysis.ChatRecord, users []analysis.User, topUsers int) ChatsData {
	byUser := make(map[string]analysis.User, len(users))
	for _, u := range users {
		byUser[u.ID] = u
	}

	perUser := make([]UserChatCount, 0)
	for userID, count := range analysis.ChatsPerUser(chats) {
		u := byUser[userID]
		name := u.DisplayName()
		if u.ID == "" {
			name = userID
		}
		perUser = append(perUser, UserChatCount{Name: name, Email: u.Email, Chats: count})
	}
	sort.Slice(perUser, func(i, j int) bool {
		if perUser[i].Chats != perUser[j].Chats {
			return perUser[i].Chats > perUser[j].Chats
		}
		return perUser[i].Name < perUser[j].Name
	})
	if topUsers > 0 && len(perUser) > topUsers {
		perUser = perUser[:topUsers]
	}

	stats := analysis.CountMessages(chats)
	return ChatsData{
		TotalChats: len(chats),
		Status:     analysis.CountChatStatus(chats),
		PerUser:    perUser,
		Messages:   stats,
		AvgPerChat: stats.AvgPerChat(len(chats)),
	}
}

// Chats renders the chat volume report.
func Chats(data ChatsData) {
	Header("Chat Volume Analysis")
	pterm.Printf("\nTotal Chats: %d\n", data.TotalChats)
	pterm.Printf("  - Active: %d\n", data.Status.Active)
	pterm.Printf("  - Archived: %d\n", data.Status.Archived)
	pterm.Printf("  - Pinned: %d\n", data.Status.Pinned)

	Section("Chats Per User")
	pterm.Printf("%-30s %-30s %8s\n", "User", "Email", "Chats")
	for _, row := range data.PerUser {
		pterm.Printf("%-30s %-30s %8d\n", truncate(row.Name, 29), truncate(row.Email, 29), row.Chats)
	}

	Section("Message Statistics")
	pterm.Printf("Total Messages: %d\n", data.Messages.Total)
	pterm.Printf("  - User messages: %d\n", data.Messages.User)
	pterm.Printf("  - Assistant messages: %d\n", data.Messages.Assistant)
	if data.TotalChats > 0 {
		pterm.Printf("  - Avg messages per chat: %.1f\n", data.AvgPerChat)
	}
}
