package export

import (
	"encoding/json"
	"fmt"

	"github.com/metaphy/threadctl/internal/types"
)

// Document is the machine-readable form of a thread: the computed summary
// plus every message with all fields. This is the only export format that
// round-trips the thread losslessly.
type Document struct {
	Summary  types.Summary    `json:"summary"`
	Messages []*types.Message `json:"messages"`
}

// JSON renders a thread as an indented JSON document. Messages appear in
// chronological order regardless of the thread's current ordering, so the
// output is canonical for a given message set.
func JSON(t *types.Thread) (string, error) {
	doc := Document{
		Summary:  t.Summary(),
		Messages: t.ChronologicalView(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode thread %d: %w", t.Root.ID, err)
	}
	return string(data), nil
}
