package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/metaphy/threadctl/internal/types"
)

// ErrNotFound is returned when a message id does not exist.
var ErrNotFound = errors.New("message not found")

// SQLiteStore implements the storage.Store interface over a comms database.
// Access is strictly read-only.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens an existing comms database. The file must already exist;
// this tool never creates or mutates a store.
func Open(path string) (*SQLiteStore, error) {
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("database not found: %s", path)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// messageColumns is the select list shared by every message query. The
// channel name comes from a LEFT JOIN so rows with unknown channels still
// scan cleanly.
const messageColumns = `
	m.id, m.content, m.sender_id, m.sender, m.channel_id,
	m.parent_id, m.thread_id, m.created_at, m.message_type,
	c.name AS channel_name`

// scanMessage scans a single joined message row into a types.Message.
func scanMessage(row interface{ Scan(...interface{}) error }) (*types.Message, error) {
	var (
		msg         types.Message
		content     sql.NullString
		senderID    sql.NullString
		senderName  sql.NullString
		channelID   sql.NullString
		parentID    sql.NullInt64
		threadID    sql.NullInt64
		createdAt   sql.NullString
		messageType sql.NullString
		channelName sql.NullString
	)

	err := row.Scan(&msg.ID, &content, &senderID, &senderName, &channelID,
		&parentID, &threadID, &createdAt, &messageType, &channelName)
	if err != nil {
		return nil, err
	}

	msg.Content = content.String
	msg.Sender = senderID.String
	if msg.Sender == "" {
		msg.Sender = senderName.String
	}
	if msg.Sender == "" {
		msg.Sender = "Unknown"
	}
	msg.SenderName = senderName.String
	msg.ChannelID = channelID.String
	msg.ChannelName = channelName.String
	if parentID.Valid {
		v := parentID.Int64
		msg.ParentID = &v
	}
	if threadID.Valid {
		v := threadID.Int64
		msg.ThreadID = &v
	}
	msg.CreatedAt = createdAt.String
	msg.MessageType = messageType.String
	if msg.MessageType == "" {
		msg.MessageType = "message"
	}
	msg.Mentions = types.ExtractMentions(msg.Content)

	return &msg, nil
}

// collectMessages drains a result set of joined message rows.
func collectMessages(rows *sql.Rows) ([]*types.Message, error) {
	defer rows.Close()

	var messages []*types.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}
