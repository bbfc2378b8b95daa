package types

import (
	"regexp"
	"strings"
	"time"
)

// mentionPattern matches @NAME tokens in message content.
var mentionPattern = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)

// timestampLayouts are the created_at formats seen in comms databases,
// tried in order.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// Message is a single message row from the store. Messages are read-only;
// Depth is the one field filled in later, during thread reconstruction.
type Message struct {
	ID          int64    `json:"id"`
	Content     string   `json:"content"`
	Sender      string   `json:"sender"`
	SenderName  string   `json:"sender_name,omitempty"`
	ChannelID   string   `json:"channel_id,omitempty"`
	ChannelName string   `json:"channel_name,omitempty"`
	ParentID    *int64   `json:"parent_id,omitempty"`
	ThreadID    *int64   `json:"thread_id,omitempty"`
	CreatedAt   string   `json:"created_at"`
	MessageType string   `json:"message_type,omitempty"`
	Mentions    []string `json:"mentions"`
	Depth       int      `json:"depth"`
}

// ExtractMentions returns the distinct @NAME tokens in content, in order
// of first appearance.
func ExtractMentions(content string) []string {
	if content == "" {
		return nil
	}
	seen := make(map[string]bool)
	var mentions []string
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			mentions = append(mentions, name)
		}
	}
	return mentions
}

// IsRoot reports whether the message is a thread root: it has no parent
// and either no thread reference or a self-reference.
func (m *Message) IsRoot() bool {
	if m.ParentID != nil {
		return false
	}
	return m.ThreadID == nil || *m.ThreadID == m.ID
}

// Time parses the created_at timestamp. The second return value is false
// when the timestamp is absent or unparseable.
func (m *Message) Time() (time.Time, bool) {
	if m.CreatedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, m.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PreviewLength is the default number of content characters included in
// summaries and previews.
const PreviewLength = 100

// Preview returns the first PreviewLength characters of the content with
// newlines flattened, suitable for one-line display.
func (m *Message) Preview() string {
	return m.PreviewN(PreviewLength)
}

// PreviewN is Preview with a caller-chosen length cap.
func (m *Message) PreviewN(n int) string {
	if m.Content == "" {
		return "(empty)"
	}
	text := strings.TrimSpace(strings.ReplaceAll(m.Content, "\n", " "))
	if text == "" {
		return "(empty)"
	}
	runes := []rune(text)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return text
}

// Channel returns the display channel: the channel name when the store
// could resolve one, otherwise the raw channel id.
func (m *Message) Channel() string {
	if m.ChannelName != "" {
		return m.ChannelName
	}
	return m.ChannelID
}

// DisplayName returns the sender display name, falling back to the sender id.
func (m *Message) DisplayName() string {
	if m.SenderName != "" {
		return m.SenderName
	}
	return m.Sender
}
