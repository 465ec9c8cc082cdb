package analysis

import (
	"encoding/json"
)

// Role of a chat message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleOther     Role = "other"
)

// Message is one parsed chat message. Model is the explicit model identifier
// the message carried, if any.
type Message struct {
	Role  Role
	Model string
}

// MessageContainerKind identifies which of the two historical payload shapes
// a chat's message list used, resolved once at parse time.
type MessageContainerKind int

const (
	// ContainerFlatList: "messages" holds a bare array (old format).
	ContainerFlatList MessageContainerKind = iota
	// ContainerWrapped: "messages" holds an object wrapping the array under
	// a nested "messages" field (new format).
	ContainerWrapped
	// ContainerUnrecognized: neither shape matched; the message list is empty.
	ContainerUnrecognized
)

// ChatRecord is the canonical projection of one chat row.
type ChatRecord struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt Timestamp
	UpdatedAt Timestamp
	Archived  bool
	Pinned    bool
	Messages  []Message
	Container MessageContainerKind
	// Model is the resolved model identifier, empty when none was found.
	Model string
	// ParseFailed marks a row whose chat JSON could not be decoded. The
	// record still exists with empty messages; aggregation surfaces these
	// rows separately.
	ParseFailed bool
}

// MessageCount returns the number of parsed messages; never negative.
func (c ChatRecord) MessageCount() int {
	return len(c.Messages)
}

// FeedbackRecord is the canonical projection of one feedback row.
type FeedbackRecord struct {
	ID     string
	UserID string
	Rating RatingClass
	// RatingValue is the decoded raw rating, kept for exact-literal
	// comparison against exported datasets.
	RatingValue RatingValue
	ModelID     string
	// ChatID associates the feedback with a chat, extracted from the nested
	// meta object. Empty when absent.
	ChatID      string
	CreatedAt   Timestamp
	ParseFailed bool
}

// parseChatPayload decodes a chat JSON payload into its message list and
// container shape. A nil, empty, or "null" payload is a valid empty chat.
// Returns ok=false only when the payload is present but undecodable.
func parseChatPayload(payload []byte) (msgs []Message, kind MessageContainerKind, model string, ok bool) {
	if len(payload) == 0 {
		return nil, ContainerUnrecognized, "", true
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, ContainerUnrecognized, "", false
	}
	// "null" decodes to a nil map: treat as an empty chat, not a failure
	if data == nil {
		return nil, ContainerUnrecognized, "", true
	}

	rawList, kind := resolveContainer(data["messages"])
	for _, item := range rawList {
		obj, isMap := item.(map[string]any)
		if !isMap {
			continue
		}
		msgs = append(msgs, Message{
			Role:  parseRole(stringField(obj, "role")),
			Model: firstNonEmpty(stringField(obj, "model"), stringField(obj, "modelName")),
		})
	}

	return msgs, kind, resolveModel(data, msgs), true
}

// resolveContainer tolerates the two historical container shapes for the
// messages field: a bare array, or an object wrapping an array under a
// nested "messages" field. Anything else yields an empty list.
func resolveContainer(raw any) ([]any, MessageContainerKind) {
	switch v := raw.(type) {
	case []any:
		return v, ContainerFlatList
	case map[string]any:
		if inner, isList := v["messages"].([]any); isList {
			return inner, ContainerWrapped
		}
		return nil, ContainerUnrecognized
	default:
		return nil, ContainerUnrecognized
	}
}

// resolveModel picks the chat's model identifier. First match wins:
// top-level "model" field, then the first element of a "models" array, then
// the last assistant-authored message that carries an explicit model.
func resolveModel(data map[string]any, msgs []Message) string {
	if m := stringField(data, "model"); m != "" {
		return m
	}
	if models, isList := data["models"].([]any); isList && len(models) > 0 {
		if m, isString := models[0].(string); isString && m != "" {
			return m
		}
	}
	model := ""
	for _, msg := range msgs {
		if msg.Role == RoleAssistant && msg.Model != "" {
			model = msg.Model
		}
	}
	return model
}

// feedbackData is the shape of the feedback row's data column.
type feedbackData struct {
	Rating  any    `json:"rating"`
	ModelID string `json:"model_id"`
}

// feedbackMeta is the shape of the feedback row's meta column.
type feedbackMeta struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
}

// parseFeedbackPayload decodes the data and meta columns of a feedback row.
// A failure in the data column is what counts as a parse failure: the rating
// drives every downstream metric. A malformed meta column only loses the
// chat association.
func parseFeedbackPayload(data, meta []byte) (rating RatingValue, modelID, chatID string, ok bool) {
	modelID = "unknown"

	var d feedbackData
	if len(data) == 0 || json.Unmarshal(data, &d) != nil {
		return RatingValue{Kind: RatingKindNull, Literal: "null"}, modelID, "", false
	}
	if d.ModelID != "" {
		modelID = d.ModelID
	}

	var m feedbackMeta
	if len(meta) > 0 && json.Unmarshal(meta, &m) == nil {
		chatID = m.ChatID
	}

	return DecodeRating(d.Rating), modelID, chatID, true
}

func parseRole(raw string) Role {
	switch raw {
	case "user":
		return RoleUser
	case "assistant":
		return RoleAssistant
	default:
		return RoleOther
	}
}

func stringField(obj map[string]any, key string) string {
	if s, isString := obj[key].(string); isString {
		return s
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
