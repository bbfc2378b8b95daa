package thread

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/metaphy/threadctl/internal/storage/sqlite"
	"github.com/metaphy/threadctl/internal/types"
)

// memStore is an in-memory storage.Store used by the engine tests. It
// mirrors the SQLite backend's ordering contracts and, like a real
// backend, returns a fresh copy of every message on every call.
type memStore struct {
	messages map[int64]*types.Message

	// err, when set, is returned by every method to simulate a failing
	// repository.
	err error
}

func newMemStore(messages ...*types.Message) *memStore {
	s := &memStore{messages: make(map[int64]*types.Message)}
	for _, m := range messages {
		s.messages[m.ID] = m
	}
	return s
}

// msg builds a test message. parentID/threadID of 0 mean absent.
func msg(id int64, sender, content string, parentID, threadID int64, createdAt string) *types.Message {
	m := &types.Message{
		ID:        id,
		Sender:    sender,
		Content:   content,
		CreatedAt: createdAt,
		Mentions:  types.ExtractMentions(content),
	}
	if parentID != 0 {
		m.ParentID = &parentID
	}
	if threadID != 0 {
		m.ThreadID = &threadID
	}
	return m
}

func clone(m *types.Message) *types.Message {
	c := *m
	if m.ParentID != nil {
		v := *m.ParentID
		c.ParentID = &v
	}
	if m.ThreadID != nil {
		v := *m.ThreadID
		c.ThreadID = &v
	}
	return &c
}

func (s *memStore) GetMessage(ctx context.Context, id int64) (*types.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	m, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d: %w", id, sqlite.ErrNotFound)
	}
	return clone(m), nil
}

func (s *memStore) GetChildren(ctx context.Context, id int64) ([]*types.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	var children []*types.Message
	for _, m := range s.messages {
		if m.ID == id {
			continue
		}
		byParent := m.ParentID != nil && *m.ParentID == id
		byThread := m.ParentID == nil && m.ThreadID != nil && *m.ThreadID == id
		if byParent || byThread {
			children = append(children, clone(m))
		}
	}
	sortAscending(children)
	return children, nil
}

func (s *memStore) SearchContent(ctx context.Context, keyword string, limit int) ([]*types.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	needle := strings.ToLower(keyword)
	var matches []*types.Message
	for _, m := range s.messages {
		if strings.Contains(strings.ToLower(m.Content), needle) {
			matches = append(matches, clone(m))
		}
	}
	return truncate(onePerThread(matches), limit), nil
}

func (s *memStore) GetBySender(ctx context.Context, sender string, limit int) ([]*types.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matches []*types.Message
	for _, m := range s.messages {
		if strings.EqualFold(m.Sender, sender) {
			matches = append(matches, clone(m))
		}
	}
	return truncate(onePerThread(matches), limit), nil
}

func (s *memStore) GetRoots(ctx context.Context, limit int) ([]*types.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	var roots []*types.Message
	for _, m := range s.messages {
		if m.IsRoot() {
			roots = append(roots, clone(m))
		}
	}
	sortDescending(roots)
	return truncate(roots, limit), nil
}

func (s *memStore) Statistics(ctx context.Context) (*types.Statistics, error) {
	if s.err != nil {
		return nil, s.err
	}
	stats := &types.Statistics{TotalMessages: len(s.messages)}
	senders := make(map[string]bool)
	for _, m := range s.messages {
		if m.ParentID != nil {
			stats.ReplyMessages++
		}
		senders[m.Sender] = true
	}
	stats.UniqueSenders = len(senders)
	return stats, nil
}

func (s *memStore) Close() error { return nil }

func sortAscending(messages []*types.Message) {
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt != messages[j].CreatedAt {
			return messages[i].CreatedAt < messages[j].CreatedAt
		}
		return messages[i].ID < messages[j].ID
	})
}

func sortDescending(messages []*types.Message) {
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt != messages[j].CreatedAt {
			return messages[i].CreatedAt > messages[j].CreatedAt
		}
		return messages[i].ID > messages[j].ID
	})
}

// onePerThread keeps the highest-id message per COALESCE(thread_id, id)
// group, sorted most recent first, matching the SQLite backend's collapse
// of search results to one representative per thread.
func onePerThread(messages []*types.Message) []*types.Message {
	best := make(map[int64]*types.Message)
	for _, m := range messages {
		hint := m.ID
		if m.ThreadID != nil {
			hint = *m.ThreadID
		}
		if cur, ok := best[hint]; !ok || m.ID > cur.ID {
			best[hint] = m
		}
	}
	out := make([]*types.Message, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}
	sortDescending(out)
	return out
}

func truncate(messages []*types.Message, limit int) []*types.Message {
	if limit > 0 && len(messages) > limit {
		return messages[:limit]
	}
	return messages
}
