// Package export renders reconstructed threads into external formats.
// Serializers are pure: they operate on an already-materialized thread,
// never touch the store, never mutate their input, and produce
// byte-identical output for identical input.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/metaphy/threadctl/internal/types"
)

// Markdown renders a thread as a markdown document: a header block with the
// thread metrics followed by one section per message, indented by depth.
// When includeContent is false each message body is reduced to its preview.
func Markdown(t *types.Thread, includeContent bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Conversation Thread #%d\n\n", t.Root.ID)
	fmt.Fprintf(&b, "**Started by:** %s\n", t.Root.Sender)
	fmt.Fprintf(&b, "**Channel:** %s\n", t.Root.Channel())
	fmt.Fprintf(&b, "**Messages:** %d\n", t.MessageCount())
	fmt.Fprintf(&b, "**Depth:** %d\n", t.Depth())
	fmt.Fprintf(&b, "**Participants:** %s\n", strings.Join(sortedCopy(t.Participants()), ", "))

	if d := t.Duration(); d > 0 {
		fmt.Fprintf(&b, "**Duration:** %.1f minutes\n", d.Minutes())
	}

	b.WriteString("\n---\n\n## Messages\n\n")

	for _, msg := range t.HierarchicalView() {
		indent := strings.Repeat("  ", msg.Depth)

		fmt.Fprintf(&b, "%s### %s (#%d)\n", indent, msg.Sender, msg.ID)
		fmt.Fprintf(&b, "%s*%s*\n\n", indent, formatTimestamp(msg, "2006-01-02 15:04:05", "Unknown"))

		if includeContent && msg.Content != "" {
			for _, line := range strings.Split(msg.Content, "\n") {
				b.WriteString(indent)
				b.WriteString(line)
				b.WriteByte('\n')
			}
		} else {
			b.WriteString(indent)
			b.WriteString(msg.Preview())
			b.WriteByte('\n')
		}
		b.WriteByte('\n')

		if len(msg.Mentions) > 0 {
			fmt.Fprintf(&b, "%s**Mentions:** %s\n\n", indent, strings.Join(msg.Mentions, ", "))
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// formatTimestamp formats a message timestamp, substituting a placeholder
// when the timestamp is missing or unparseable.
func formatTimestamp(msg *types.Message, layout, missing string) string {
	ts, ok := msg.Time()
	if !ok {
		return missing
	}
	return ts.Format(layout)
}

// sortedCopy returns the strings in alphabetical order without disturbing
// the input slice.
func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
