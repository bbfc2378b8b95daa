package storage

import (
	"context"

	"github.com/metaphy/threadctl/internal/storage/sqlite"
	"github.com/metaphy/threadctl/internal/types"
)

// ErrNotFound is returned when a message id does not exist in the store.
var ErrNotFound = sqlite.ErrNotFound

// Store defines the read-only interface to a message store backend.
// Implementations must be safe for concurrent readers.
type Store interface {
	// GetMessage returns the message with the given id, or an error
	// wrapping ErrNotFound.
	GetMessage(ctx context.Context, id int64) (*types.Message, error)

	// GetChildren returns the direct replies to a message: rows whose
	// parent_id matches, plus rows that reference it as their thread root
	// without naming an explicit parent. Ordered by created_at.
	GetChildren(ctx context.Context, id int64) ([]*types.Message, error)

	// SearchContent returns messages whose content contains the keyword,
	// case-insensitively, most recent first, at most one message per
	// thread. The limit therefore bounds distinct threads, not raw
	// matches.
	SearchContent(ctx context.Context, keyword string, limit int) ([]*types.Message, error)

	// GetBySender returns messages whose sender matches the identifier,
	// case-insensitively, most recent first, at most one message per
	// thread as in SearchContent.
	GetBySender(ctx context.Context, sender string, limit int) ([]*types.Message, error)

	// GetRoots returns candidate thread roots (messages with no parent),
	// most recent first.
	GetRoots(ctx context.Context, limit int) ([]*types.Message, error)

	// Statistics returns aggregate metrics over the whole store.
	Statistics(ctx context.Context) (*types.Statistics, error)

	// Lifecycle
	Close() error
}

// Config holds message store configuration.
type Config struct {
	// Path is the SQLite database file path.
	// Special value ":memory:" creates an in-memory database (useful for tests).
	Path string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Path: "comms.db",
	}
}

// NewStore opens a SQLite-backed message store. The store is read-only:
// nothing in this package or its callers mutates the underlying database.
func NewStore(cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		cfg.Path = "comms.db"
	}
	return sqlite.Open(cfg.Path)
}
