package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/metaphy/threadctl/internal/types"
)

// GetMessage returns the message with the given id.
func (s *SQLiteStore) GetMessage(ctx context.Context, id int64) (*types.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages m
		LEFT JOIN channels c ON m.channel_id = c.id
		WHERE m.id = ?
	`

	msg, err := scanMessage(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message %d: %w", id, err)
	}
	return msg, nil
}

// GetChildren returns the direct replies to a message. A reply is either a
// row whose parent_id names the message, or a row that names the message as
// its thread root without carrying an explicit parent.
func (s *SQLiteStore) GetChildren(ctx context.Context, id int64) ([]*types.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages m
		LEFT JOIN channels c ON m.channel_id = c.id
		WHERE (m.parent_id = ? AND m.id != ?)
		   OR (m.thread_id = ? AND m.parent_id IS NULL AND m.id != ?)
		ORDER BY m.created_at, m.id
	`

	rows, err := s.db.QueryContext(ctx, query, id, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get children of message %d: %w", id, err)
	}
	return collectMessages(rows)
}

// SearchContent returns messages containing the keyword, case-insensitively,
// most recent first, collapsed to one representative per thread. Grouping by
// COALESCE(thread_id, id) before the limit means the limit bounds distinct
// threads, so one busy thread cannot crowd the others out of the result.
func (s *SQLiteStore) SearchContent(ctx context.Context, keyword string, limit int) ([]*types.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages m
		LEFT JOIN channels c ON m.channel_id = c.id
		WHERE m.id IN (
			SELECT MAX(id) FROM messages
			WHERE content LIKE ? ESCAPE '\'
			GROUP BY COALESCE(thread_id, id)
		)
		ORDER BY m.created_at DESC, m.id DESC
	`
	args := []interface{}{"%" + escapeLike(keyword) + "%"}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search content for %q: %w", keyword, err)
	}
	return collectMessages(rows)
}

// GetBySender returns messages sent by the given identifier, collapsed to
// one representative per thread as in SearchContent. Matching is
// case-insensitive equality against both the sender id and display name.
func (s *SQLiteStore) GetBySender(ctx context.Context, sender string, limit int) ([]*types.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages m
		LEFT JOIN channels c ON m.channel_id = c.id
		WHERE m.id IN (
			SELECT MAX(id) FROM messages
			WHERE sender_id = ? COLLATE NOCASE
			   OR sender = ? COLLATE NOCASE
			GROUP BY COALESCE(thread_id, id)
		)
		ORDER BY m.created_at DESC, m.id DESC
	`
	args := []interface{}{sender, sender}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages by sender %q: %w", sender, err)
	}
	return collectMessages(rows)
}

// GetRoots returns candidate thread roots: messages that are not replies to
// anything, most recent first.
func (s *SQLiteStore) GetRoots(ctx context.Context, limit int) ([]*types.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages m
		LEFT JOIN channels c ON m.channel_id = c.id
		WHERE (m.parent_id IS NULL AND m.thread_id IS NULL)
		   OR m.thread_id = m.id
		ORDER BY m.created_at DESC, m.id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread roots: %w", err)
	}
	return collectMessages(rows)
}

// Statistics returns aggregate metrics over the whole store.
func (s *SQLiteStore) Statistics(ctx context.Context) (*types.Statistics, error) {
	stats := &types.Statistics{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM messages", &stats.TotalMessages},
		{"SELECT COUNT(*) FROM messages WHERE parent_id IS NOT NULL", &stats.ReplyMessages},
		{"SELECT COUNT(DISTINCT sender_id) FROM messages", &stats.UniqueSenders},
		{"SELECT COUNT(*) FROM channels", &stats.Channels},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to compute statistics: %w", err)
		}
	}

	var earliest, latest sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT MIN(created_at), MAX(created_at) FROM messages").Scan(&earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("failed to compute message date range: %w", err)
	}
	stats.EarliestMessage = earliest.String
	stats.LatestMessage = latest.String

	return stats, nil
}

// escapeLike escapes LIKE metacharacters so user keywords match literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
