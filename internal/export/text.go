package export

import (
	"fmt"
	"strings"

	"github.com/metaphy/threadctl/internal/types"
)

const (
	textBannerWidth = 70
	textMaxLines    = 10
	textMaxColumns  = 100
)

// Text renders a thread as plain text for narrow terminal display: no
// markup, depth shown as a "| " gutter, message bodies clipped to
// textMaxLines lines of textMaxColumns characters. Content is always
// included; there is no preview-only mode.
func Text(t *types.Thread) string {
	banner := strings.Repeat("=", textBannerWidth)

	var b strings.Builder
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "CONVERSATION THREAD #%d\n", t.Root.ID)
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Started by: %s\n", t.Root.Sender)
	fmt.Fprintf(&b, "Messages: %d\n", t.MessageCount())
	fmt.Fprintf(&b, "Participants: %s\n", strings.Join(sortedCopy(t.Participants()), ", "))
	b.WriteString(banner + "\n\n")

	for _, msg := range t.HierarchicalView() {
		indent := strings.Repeat("| ", msg.Depth)

		fmt.Fprintf(&b, "%s[%s] %s:\n", indent, formatTimestamp(msg, "2006-01-02 15:04", "?"), msg.Sender)

		lines := []string{"(empty)"}
		if msg.Content != "" {
			lines = strings.Split(msg.Content, "\n")
		}
		shown := lines
		if len(shown) > textMaxLines {
			shown = shown[:textMaxLines]
		}
		for _, line := range shown {
			fmt.Fprintf(&b, "%s  %s\n", indent, clip(line, textMaxColumns))
		}
		if len(lines) > textMaxLines {
			fmt.Fprintf(&b, "%s  ... (%d more lines)\n", indent, len(lines)-textMaxLines)
		}
		b.WriteByte('\n')
	}

	b.WriteString(banner + "\n")
	return b.String()
}

// clip truncates a line to n characters, rune-safe.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
