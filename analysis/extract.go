package analysis

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
)

// User is the canonical projection of one user row.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	LastActiveAt Timestamp
	CreatedAt    Timestamp
}

// DisplayName returns the user's name, "Unknown" when empty.
func (u User) DisplayName() string {
	if u.Name == "" {
		return "Unknown"
	}
	return u.Name
}

// Extractor pulls raw rows from the database and yields canonical records,
// attributing parse successes and failures to the run's Diagnostics.
//
// Row-level failures never abort a scan: a chat whose JSON payload is
// garbage still yields a ChatRecord with an empty message list, and the
// failure is counted. Only engine-level errors propagate.
type Extractor struct {
	db   *sql.DB
	log  *zap.SugaredLogger
	diag *Diagnostics
}

// NewExtractor creates an Extractor. log may be nil for silent operation.
func NewExtractor(database *sql.DB, log *zap.SugaredLogger, diag *Diagnostics) *Extractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Extractor{db: database, log: log, diag: diag}
}

// Diagnostics returns the accumulator this extractor reports into.
func (e *Extractor) Diagnostics() *Diagnostics {
	return e.diag
}

// Users scans the user table.
func (e *Extractor) Users() ([]User, error) {
	rows, err := e.db.Query(`
		SELECT id, name, email, role, last_active_at, created_at
		FROM user
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query users")
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var (
			id                     string
			name, email, role      sql.NullString
			lastActive, createdAt  sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &email, &role, &lastActive, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan user row")
		}
		users = append(users, User{
			ID:           id,
			Name:         name.String,
			Email:        email.String,
			Role:         role.String,
			LastActiveAt: NormalizeNullTimestamp(lastActive),
			CreatedAt:    NormalizeNullTimestamp(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate user rows")
	}

	e.log.Infow("Loaded user rows", "table", "user", "rows", len(users))
	return users, nil
}

// Chats scans the chat table and parses each row's JSON payload into a
// canonical ChatRecord. Undecodable payloads yield a record with an empty
// message list and increment the "chat messages" failure counter.
func (e *Extractor) Chats() ([]ChatRecord, error) {
	rows, err := e.db.Query(`
		SELECT id, user_id, title, chat, created_at, updated_at, archived, pinned
		FROM chat
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query chats")
	}
	defer rows.Close()

	var chats []ChatRecord
	for rows.Next() {
		var (
			id, userID             string
			title, payload         sql.NullString
			createdAt, updatedAt   sql.NullInt64
			archived, pinned       sql.NullInt64
		)
		if err := rows.Scan(&id, &userID, &title, &payload, &createdAt, &updatedAt, &archived, &pinned); err != nil {
			return nil, errors.Wrap(err, "failed to scan chat row")
		}

		record := ChatRecord{
			ID:        id,
			UserID:    userID,
			Title:     title.String,
			CreatedAt: NormalizeNullTimestamp(createdAt),
			UpdatedAt: NormalizeNullTimestamp(updatedAt),
			Archived:  archived.Valid && archived.Int64 == 1,
			Pinned:    pinned.Valid && pinned.Int64 == 1,
		}

		msgs, kind, model, ok := parseChatPayload([]byte(payload.String))
		if ok {
			record.Messages = msgs
			record.Container = kind
			record.Model = model
			e.diag.RecordSuccess(ContextChatMessages)
		} else {
			record.Container = ContainerUnrecognized
			record.ParseFailed = true
			e.diag.RecordFailure(ContextChatMessages, CounterChatMessages)
			e.log.Debugw("Chat payload parse failure", "context", ContextChatMessages, "table", "chat")
		}

		chats = append(chats, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate chat rows")
	}

	e.log.Infow("Loaded chat rows", "table", "chat", "rows", len(chats))
	return chats, nil
}

// Feedback scans the feedback table and classifies each row's rating.
// Rows whose data column cannot be decoded yield a rating-less record
// classified Unrecognized, counted as a "feedback data" parse failure.
func (e *Extractor) Feedback() ([]FeedbackRecord, error) {
	rows, err := e.db.Query(`
		SELECT id, user_id, data, meta, created_at
		FROM feedback
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query feedback")
	}
	defer rows.Close()

	var records []FeedbackRecord
	for rows.Next() {
		var (
			id, userID string
			data, meta sql.NullString
			createdAt  sql.NullInt64
		)
		if err := rows.Scan(&id, &userID, &data, &meta, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan feedback row")
		}

		record := FeedbackRecord{
			ID:        id,
			UserID:    userID,
			CreatedAt: NormalizeNullTimestamp(createdAt),
		}

		rating, modelID, chatID, ok := parseFeedbackPayload([]byte(data.String), []byte(meta.String))
		record.RatingValue = rating
		record.ModelID = modelID
		record.ChatID = chatID
		if ok {
			record.Rating = Classify(rating, e.diag)
			e.diag.RecordSuccess(ContextFeedbackData)
		} else {
			record.Rating = RatingUnrecognized
			record.ParseFailed = true
			e.diag.RecordFailure(ContextFeedbackData, CounterFeedbackData)
			e.log.Debugw("Feedback payload parse failure", "context", ContextFeedbackData, "table", "feedback")
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate feedback rows")
	}

	e.log.Infow("Loaded feedback rows", "table", "feedback", "rows", len(records))
	return records, nil
}
