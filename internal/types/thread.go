package types

import (
	"sort"
	"time"
)

// Thread is a fully reconstructed conversation: the root message plus every
// descendant, each annotated with its depth. A Thread is built once by the
// reconstructor and read-only afterwards; derived metrics are maintained
// incrementally as messages are added so reads never recompute.
type Thread struct {
	Root     *Message
	Messages []*Message

	// Malformed is set when reconstruction hit a cycle or a dangling
	// parent reference and returned a truncated thread.
	Malformed bool

	ids          map[int64]bool
	participants []string
	mentions     []string
}

// NewThread creates a thread seeded with its root message (depth 0).
func NewThread(root *Message) *Thread {
	root.Depth = 0
	t := &Thread{
		Root: root,
		ids:  make(map[int64]bool),
	}
	t.Messages = append(t.Messages, root)
	t.ids[root.ID] = true
	t.addParticipant(root.Sender)
	t.addMentions(root.Mentions)
	return t
}

// Add appends a message to the thread. Returns false if the message id is
// already present.
func (t *Thread) Add(msg *Message) bool {
	if t.ids[msg.ID] {
		return false
	}
	t.Messages = append(t.Messages, msg)
	t.ids[msg.ID] = true
	t.addParticipant(msg.Sender)
	t.addMentions(msg.Mentions)
	return true
}

// Contains reports whether the message id is part of the thread.
func (t *Thread) Contains(id int64) bool {
	return t.ids[id]
}

func (t *Thread) addParticipant(sender string) {
	for _, p := range t.participants {
		if p == sender {
			return
		}
	}
	t.participants = append(t.participants, sender)
}

func (t *Thread) addMentions(mentions []string) {
	for _, m := range mentions {
		found := false
		for _, existing := range t.mentions {
			if existing == m {
				found = true
				break
			}
		}
		if !found {
			t.mentions = append(t.mentions, m)
		}
	}
}

// MessageCount returns the number of messages in the thread.
func (t *Thread) MessageCount() int {
	return len(t.Messages)
}

// Depth returns the maximum message depth. A single-message thread has
// depth 0.
func (t *Thread) Depth() int {
	max := 0
	for _, m := range t.Messages {
		if m.Depth > max {
			max = m.Depth
		}
	}
	return max
}

// Participants returns the distinct senders in order of first appearance.
// The returned slice is shared; callers must not modify it.
func (t *Thread) Participants() []string {
	return t.participants
}

// AllMentions returns the distinct @mentions across all messages, in order
// of first appearance.
func (t *Thread) AllMentions() []string {
	return t.mentions
}

// Duration returns the elapsed time between the earliest and latest message
// timestamps. Zero when fewer than two messages carry parseable timestamps.
func (t *Thread) Duration() time.Duration {
	var earliest, latest time.Time
	n := 0
	for _, m := range t.Messages {
		ts, ok := m.Time()
		if !ok {
			continue
		}
		if n == 0 || ts.Before(earliest) {
			earliest = ts
		}
		if n == 0 || ts.After(latest) {
			latest = ts
		}
		n++
	}
	if n < 2 {
		return 0
	}
	return latest.Sub(earliest)
}

// lessChrono orders by created_at ascending. Messages with missing or
// unparseable timestamps sort first; ties break on message id, the storage
// insertion order.
func lessChrono(a, b *Message) bool {
	ta, _ := a.Time()
	tb, _ := b.Time()
	if ta.Equal(tb) {
		return a.ID < b.ID
	}
	return ta.Before(tb)
}

// SortChronological orders the thread's messages chronologically. This is
// the default ordering applied at reconstruction time.
func (t *Thread) SortChronological() {
	sort.SliceStable(t.Messages, func(i, j int) bool {
		return lessChrono(t.Messages[i], t.Messages[j])
	})
}

// ChronologicalView returns the messages in chronological order without
// touching the thread's own ordering.
func (t *Thread) ChronologicalView() []*Message {
	view := make([]*Message, len(t.Messages))
	copy(view, t.Messages)
	sort.SliceStable(view, func(i, j int) bool {
		return lessChrono(view[i], view[j])
	})
	return view
}

// HierarchicalView returns the messages ordered by depth, chronologically
// within each depth level, without touching the thread's own ordering.
func (t *Thread) HierarchicalView() []*Message {
	view := make([]*Message, len(t.Messages))
	copy(view, t.Messages)
	sort.SliceStable(view, func(i, j int) bool {
		if view[i].Depth != view[j].Depth {
			return view[i].Depth < view[j].Depth
		}
		return lessChrono(view[i], view[j])
	})
	return view
}

// Summary is the condensed, display-oriented view of a thread.
type Summary struct {
	RootID           int64    `json:"root_id"`
	RootSender       string   `json:"root_sender"`
	RootPreview      string   `json:"root_preview"`
	MessageCount     int      `json:"message_count"`
	Depth            int      `json:"depth"`
	ParticipantCount int      `json:"participant_count"`
	Participants     []string `json:"participants"`
	DurationMinutes  float64  `json:"duration_minutes"`
	Channel          string   `json:"channel"`
	StartTime        string   `json:"start_time"`
}

// Summary computes the thread summary. It never mutates the thread and is
// safe to call repeatedly.
func (t *Thread) Summary() Summary {
	return Summary{
		RootID:           t.Root.ID,
		RootSender:       t.Root.Sender,
		RootPreview:      t.Root.Preview(),
		MessageCount:     t.MessageCount(),
		Depth:            t.Depth(),
		ParticipantCount: len(t.participants),
		Participants:     t.participants,
		DurationMinutes:  t.Duration().Minutes(),
		Channel:          t.Root.Channel(),
		StartTime:        t.Root.CreatedAt,
	}
}

// Statistics provides aggregate metrics over the whole message store.
type Statistics struct {
	TotalMessages   int    `json:"total_messages"`
	ReplyMessages   int    `json:"reply_messages"`
	UniqueSenders   int    `json:"unique_senders"`
	Channels        int    `json:"channels"`
	EarliestMessage string `json:"earliest_message"`
	LatestMessage   string `json:"latest_message"`
}
