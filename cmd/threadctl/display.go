package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/metaphy/threadctl/internal/types"
)

// ASCII-safe status indicators (Windows terminal compatibility).
const (
	iconOK    = "[OK]"
	iconError = "[X]"
	iconWarn  = "[!]"
	iconInfo  = "[i]"
)

// formatThreadList renders a discovered thread list for terminal display.
func formatThreadList(threads []*types.Thread, verbose bool) string {
	if len(threads) == 0 {
		return "No threads found."
	}

	bold := color.New(color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d thread(s):\n\n", len(threads))

	for i, t := range threads {
		s := t.Summary()
		fmt.Fprintf(&b, "%d. %s\n", i+1, bold(fmt.Sprintf("Thread #%d", s.RootID)))
		fmt.Fprintf(&b, "   Sender: %s\n", t.Root.DisplayName())
		fmt.Fprintf(&b, "   Messages: %d | Depth: %d | Participants: %d\n",
			s.MessageCount, s.Depth, s.ParticipantCount)

		if verbose {
			fmt.Fprintf(&b, "   Channel: %s\n", s.Channel)
			shown := s.Participants
			if len(shown) > 5 {
				shown = shown[:5]
			}
			fmt.Fprintf(&b, "   Participants: %s\n", strings.Join(shown, ", "))
			if s.DurationMinutes > 0 {
				fmt.Fprintf(&b, "   Duration: %.1f min\n", s.DurationMinutes)
			}
		}

		fmt.Fprintf(&b, "   Preview: %s\n\n", gray(s.RootPreview))
	}

	return strings.TrimRight(b.String(), "\n")
}
