package report

import (
	"os"
	"sort"

	"github.com/pterm/pterm"

	"github.com/terry-li-hm/open-webui-db-analyzer/analysis"
	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
)

// ExportedChat is one chat in the export file: the canonical record joined
// with its owner and formatted timestamps.
type ExportedChat struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	Model        string `json:"model"`
	MessageCount int    `json:"message_count"`
	Archived     bool   `json:"archived"`
	Pinned       bool   `json:"pinned"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	ParseFailed  bool   `json:"parse_failed,omitempty"`
}

// ExportChats writes all chats to path as pretty-printed JSON, joined with
// user name and email, newest first. Returns the number of exported chats.
func ExportChats(path string, chats []analysis.ChatRecord, users []analysis.User) (int, error) {
	byUser := make(map[string]analysis.User, len(users))
	for _, u := range users {
		byUser[u.ID] = u
	}

	sorted := make([]analysis.ChatRecord, len(chats))
	copy(sorted, chats)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		if a.Valid != b.Valid {
			return a.Valid
		}
		if a.Valid && !a.Time.Equal(b.Time) {
			return a.Time.After(b.Time)
		}
		return sorted[i].ID < sorted[j].ID
	})

	exported := make([]ExportedChat, 0, len(sorted))
	for _, c := range sorted {
		u := byUser[c.UserID]
		exported = append(exported, ExportedChat{
			ID:           c.ID,
			Title:        c.Title,
			UserID:       c.UserID,
			UserName:     u.DisplayName(),
			UserEmail:    u.Email,
			Model:        c.Model,
			MessageCount: c.MessageCount(),
			Archived:     c.Archived,
			Pinned:       c.Pinned,
			CreatedAt:    c.CreatedAt.Display(),
			UpdatedAt:    c.UpdatedAt.Display(),
			ParseFailed:  c.ParseFailed,
		})
	}

	data, err := MarshalJSON(exported)
	if err != nil {
		return 0, errors.Wrap(err, "failed to marshal chat export")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, errors.Wrap(err, "failed to write chat export")
	}

	pterm.Success.Printf("Exported %d chats to %s\n", len(exported), path)
	return len(exported), nil
}
