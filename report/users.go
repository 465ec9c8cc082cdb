package report

import (
	"sort"

	"github.com/pterm/pterm"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
)

// RoleCount pairs a role with its user tally.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// UserActivity is one row of the last-active table.
type UserActivity struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Chats      int    `json:"chats"`
	LastActive string `json:"last_active"`
}

// UsersData is the payload behind the user statistics report.
type UsersData struct {
	TotalUsers int            `json:"total_users"`
	ByRole     []RoleCount    `json:"by_role"`
	Activity   []UserActivity `json:"activity"`
}

// NewUsersData aggregates users into the user statistics payload. limit caps
// the activity table, most recently active first.
func NewUsersData(users []analysis.User, chats []analysis.ChatRecord, limit int) UsersData {
	perUser := analysis.ChatsPerUser(chats)

	roleTally := make(map[string]int)
	for _, u := range users {
		role := u.Role
		if role == "" {
			role = "unknown"
		}
		roleTally[role]++
	}
	byRole := make([]RoleCount, 0, len(roleTally))
	for _, role := range analysis.SortedKeys(roleTally) {
		byRole = append(byRole, RoleCount{Role: role, Count: roleTally[role]})
	}

	sorted := make([]analysis.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].LastActiveAt, sorted[j].LastActiveAt
		if a.Valid != b.Valid {
			return a.Valid
		}
		if a.Valid && !a.Time.Equal(b.Time) {
			return a.Time.After(b.Time)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	activity := make([]UserActivity, 0, len(sorted))
	for _, u := range sorted {
		activity = append(activity, UserActivity{
			Name:       u.DisplayName(),
			Role:       u.Role,
			Chats:      perUser[u.ID],
			LastActive: u.LastActiveAt.Display(),
		})
	}

	return UsersData{TotalUsers: len(users), ByRole: byRole, Activity: activity}
}

// Users renders the user statistics report.
func Users(data UsersData) {
	Header("User Statistics")
	pterm.Printf("\nTotal Users: %d\n", data.TotalUsers)

	pterm.Println("\nUsers by Role:")
	for _, rc := range data.ByRole {
		pterm.Printf("  - %s: %d\n", rc.Role, rc.Count)
	}

	Section("User Activity (Last Active)")
	pterm.Printf("%-20s %-10s %6s %-20s\n", "Name", "Role", "Chats", "Last Active")
	for _, row := range data.Activity {
		pterm.Printf("%-20s %-10s %6d %-20s\n",
			truncate(row.Name, 19), truncate(row.Role, 9), row.Chats, row.LastActive)
	}
}
