package thread

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/metaphy/threadctl/internal/storage"
	"github.com/metaphy/threadctl/internal/types"
)

// MaxAncestorHops bounds the upward parent walk during root resolution.
// A chain longer than this is treated as malformed data rather than
// followed forever.
const MaxAncestorHops = 1000

// Reconstructor rebuilds complete conversation threads from the flat
// message store. It holds no mutable state between calls; every
// reconstruction allocates a fresh Thread owned by the caller.
type Reconstructor struct {
	store  storage.Store
	logger *zap.Logger
}

// NewReconstructor creates a reconstructor over the given store.
func NewReconstructor(store storage.Store, logger *zap.Logger) *Reconstructor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconstructor{store: store, logger: logger}
}

// Reconstruct rebuilds the thread containing the seed message: it resolves
// the thread root, collects every descendant breadth-first with depth
// annotation, and returns the messages in chronological order.
//
// A missing seed returns an error wrapping storage.ErrNotFound. Cycles and
// dangling parent references are recovered locally: the walk stops at the
// best-known root, a warning is logged, and the returned thread carries the
// Malformed flag.
func (r *Reconstructor) Reconstruct(ctx context.Context, seedID int64) (*types.Thread, error) {
	seed, err := r.store.GetMessage(ctx, seedID)
	if err != nil {
		return nil, err
	}

	root, malformed, err := r.resolveRoot(ctx, seed)
	if err != nil {
		return nil, err
	}

	t := types.NewThread(root)
	t.Malformed = malformed

	if err := r.collectDescendants(ctx, t); err != nil {
		return nil, err
	}

	t.SortChronological()
	return t, nil
}

// resolveRoot finds the thread root for a seed message. The thread_id
// reference wins when it points at an existing message; otherwise the
// parent chain is walked upward with a visited set and a hop ceiling.
func (r *Reconstructor) resolveRoot(ctx context.Context, seed *types.Message) (*types.Message, bool, error) {
	if seed.ThreadID != nil {
		if *seed.ThreadID == seed.ID {
			return seed, false, nil
		}
		root, err := r.store.GetMessage(ctx, *seed.ThreadID)
		if err == nil {
			return root, false, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, false, err
		}
		// Dangling thread reference: fall back to the parent walk.
	}

	current := seed
	visited := map[int64]bool{seed.ID: true}

	for hops := 0; ; hops++ {
		if current.ParentID == nil {
			return current, false, nil
		}

		parentID := *current.ParentID
		if visited[parentID] {
			r.logger.Warn("cycle detected while resolving thread root",
				zap.Int64("seed_id", seed.ID),
				zap.Int64("message_id", current.ID),
				zap.Int64("parent_id", parentID))
			return current, true, nil
		}
		if hops >= MaxAncestorHops {
			r.logger.Warn("ancestor chain exceeded hop ceiling",
				zap.Int64("seed_id", seed.ID),
				zap.Int("hops", hops))
			return current, true, nil
		}

		parent, err := r.store.GetMessage(ctx, parentID)
		if errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("dangling parent reference while resolving thread root",
				zap.Int64("seed_id", seed.ID),
				zap.Int64("message_id", current.ID),
				zap.Int64("parent_id", parentID))
			return current, true, nil
		}
		if err != nil {
			return nil, false, err
		}

		visited[parentID] = true
		current = parent
	}
}

// collectDescendants walks the parent->children relation breadth-first
// from the thread root, recording each message's depth as it is found.
// The thread's own id set doubles as the visited set, so malformed child
// links cannot loop.
func (r *Reconstructor) collectDescendants(ctx context.Context, t *types.Thread) error {
	queue := []*types.Message{t.Root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := r.store.GetChildren(ctx, current.ID)
		if err != nil {
			return fmt.Errorf("failed to collect replies to message %d: %w", current.ID, err)
		}

		for _, child := range children {
			if t.Contains(child.ID) {
				continue
			}
			child.Depth = current.Depth + 1
			t.Add(child)
			queue = append(queue, child)
		}
	}

	return nil
}
