package thread

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/metaphy/threadctl/internal/storage"
	"github.com/metaphy/threadctl/internal/types"
)

// ErrInvalidQuery is returned when a query carries a negative limit or
// threshold. It is rejected before any store access.
var ErrInvalidQuery = errors.New("invalid query")

// EngineConfig tunes the discovery engine.
type EngineConfig struct {
	// ScanCandidateCap is the maximum number of root candidates examined
	// by a significance scan. 0 means unbounded.
	ScanCandidateCap int

	// ScanParallelism is the number of candidate threads reconstructed
	// concurrently during a significance scan. Reconstructions share no
	// state, so this only requires the store to tolerate concurrent reads.
	ScanParallelism int
}

// DefaultEngineConfig returns the default engine tuning.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ScanCandidateCap: 500,
		ScanParallelism:  4,
	}
}

// Engine answers thread discovery queries: topic search, participant
// search, significance scans, and related-thread lookup. All queries share
// the same pipeline: find candidate messages, reconstruct each candidate's
// thread exactly once, then filter and order the results.
type Engine struct {
	store  storage.Store
	rec    *Reconstructor
	cfg    EngineConfig
	logger *zap.Logger
}

// NewEngine creates a discovery engine over the given store.
func NewEngine(store storage.Store, cfg EngineConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ScanParallelism <= 0 {
		cfg.ScanParallelism = 1
	}
	return &Engine{
		store:  store,
		rec:    NewReconstructor(store, logger),
		cfg:    cfg,
		logger: logger,
	}
}

// FindByTopic returns threads containing at least one message whose content
// includes the keyword, case-insensitively. Threads are de-duplicated by
// root id and ordered by root created_at, most recent first. A limit of 0
// means no truncation; a negative limit is rejected with ErrInvalidQuery.
func (e *Engine) FindByTopic(ctx context.Context, keyword string, limit int) ([]*types.Thread, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidQuery)
	}

	matches, err := e.store.SearchContent(ctx, keyword, oversample(limit))
	if err != nil {
		return nil, err
	}
	return e.assembleThreads(ctx, matches, limit)
}

// FindByParticipant returns threads in which the given identifier sent at
// least one message. Matching is case-insensitive equality on the sender,
// not substring. Ordering and de-duplication follow FindByTopic.
func (e *Engine) FindByParticipant(ctx context.Context, identifier string, limit int) ([]*types.Thread, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidQuery)
	}

	matches, err := e.store.GetBySender(ctx, identifier, oversample(limit))
	if err != nil {
		return nil, err
	}
	return e.assembleThreads(ctx, matches, limit)
}

// ScanSignificant enumerates thread roots and retains the threads meeting
// all three thresholds simultaneously. Results are sorted by message count
// descending, ties broken by depth descending, then root id ascending.
func (e *Engine) ScanSignificant(ctx context.Context, minDepth, minMessages, minParticipants, limit int) ([]*types.Thread, error) {
	if minDepth < 0 || minMessages < 0 || minParticipants < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: thresholds and limit must not be negative", ErrInvalidQuery)
	}

	roots, err := e.store.GetRoots(ctx, e.cfg.ScanCandidateCap)
	if err != nil {
		return nil, err
	}

	// Candidates are independent, so reconstruct them with bounded
	// parallelism. Results land in a fixed slot per candidate and are
	// re-sorted below, keeping the output deterministic.
	candidates := make([]*types.Thread, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.ScanParallelism)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			t, err := e.rec.Reconstruct(gctx, root.ID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					// Candidate vanished between scan and fetch.
					return nil
				}
				return err
			}
			candidates[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var significant []*types.Thread
	for _, t := range candidates {
		if t == nil || seen[t.Root.ID] {
			continue
		}
		seen[t.Root.ID] = true
		if t.Depth() >= minDepth &&
			t.MessageCount() >= minMessages &&
			len(t.Participants()) >= minParticipants {
			significant = append(significant, t)
		}
	}

	sort.Slice(significant, func(i, j int) bool {
		if significant[i].MessageCount() != significant[j].MessageCount() {
			return significant[i].MessageCount() > significant[j].MessageCount()
		}
		if significant[i].Depth() != significant[j].Depth() {
			return significant[i].Depth() > significant[j].Depth()
		}
		return significant[i].Root.ID < significant[j].Root.ID
	})

	if limit > 0 && len(significant) > limit {
		significant = significant[:limit]
	}
	return significant, nil
}

// FindRelated returns threads sharing participants with the given thread,
// excluding the thread itself. At most the first three participants are
// consulted.
func (e *Engine) FindRelated(ctx context.Context, t *types.Thread, limit int) ([]*types.Thread, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidQuery)
	}

	participants := t.Participants()
	if len(participants) > 3 {
		participants = participants[:3]
	}

	seen := map[int64]bool{t.Root.ID: true}
	var related []*types.Thread
	for _, p := range participants {
		threads, err := e.FindByParticipant(ctx, p, 5)
		if err != nil {
			return nil, err
		}
		for _, candidate := range threads {
			if seen[candidate.Root.ID] {
				continue
			}
			seen[candidate.Root.ID] = true
			related = append(related, candidate)
			if limit > 0 && len(related) >= limit {
				return related, nil
			}
		}
	}
	return related, nil
}

// assembleThreads reconstructs the thread for each matching message exactly
// once, de-duplicates by root id, orders by root recency, and truncates.
func (e *Engine) assembleThreads(ctx context.Context, matches []*types.Message, limit int) ([]*types.Thread, error) {
	// Cheap pre-dedup on the likely root id so one busy thread does not
	// trigger a reconstruction per matching message.
	seenHint := make(map[int64]bool)
	var hints []int64
	for _, m := range matches {
		hint := m.ID
		if m.ThreadID != nil {
			hint = *m.ThreadID
		}
		if !seenHint[hint] {
			seenHint[hint] = true
			hints = append(hints, hint)
		}
	}

	seenRoot := make(map[int64]bool)
	var threads []*types.Thread
	for _, hint := range hints {
		t, err := e.rec.Reconstruct(ctx, hint)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				e.logger.Debug("search match referenced a missing thread root",
					zap.Int64("root_hint", hint))
				continue
			}
			return nil, err
		}
		if seenRoot[t.Root.ID] {
			continue
		}
		seenRoot[t.Root.ID] = true
		threads = append(threads, t)
	}

	// Most recent root first; ties break on root id, newest first.
	sort.SliceStable(threads, func(i, j int) bool {
		ti, _ := threads[i].Root.Time()
		tj, _ := threads[j].Root.Time()
		if ti.Equal(tj) {
			return threads[i].Root.ID > threads[j].Root.ID
		}
		return ti.After(tj)
	})

	if limit > 0 && len(threads) > limit {
		threads = threads[:limit]
	}
	return threads, nil
}

// oversample widens a store fetch so de-duplication by root still leaves
// enough distinct threads to fill the limit.
func oversample(limit int) int {
	if limit <= 0 {
		return 0
	}
	return limit * 2
}
