package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaphy/threadctl/internal/export"
	"github.com/metaphy/threadctl/internal/storage"
	"github.com/metaphy/threadctl/internal/thread"
	"github.com/metaphy/threadctl/internal/types"
)

var (
	threadFormat    string
	threadOutput    string
	threadNoContent bool
)

var threadCmd = &cobra.Command{
	Use:   "thread <message-id>",
	Short: "Reconstruct the thread containing a message",
	Long: `Reconstruct the complete conversation thread containing the given
message: resolve the thread root, collect every reply, and render the
result in the chosen format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid message id %q", args[0])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		rec := thread.NewReconstructor(store, logger)
		t, err := rec.Reconstruct(cmd.Context(), messageID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("message #%d not found", messageID)
			}
			return err
		}
		if t.Malformed {
			fmt.Fprintf(os.Stderr, "%s thread contains malformed links; showing partial thread\n", iconWarn)
		}

		output, err := renderThread(t, threadFormat, !threadNoContent)
		if err != nil {
			return err
		}

		if threadOutput != "" {
			if err := os.WriteFile(threadOutput, []byte(output), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", threadOutput, err)
			}
			s := t.Summary()
			fmt.Printf("%s Thread exported to %s\n", iconOK, threadOutput)
			fmt.Printf("   Messages: %d | Depth: %d\n", s.MessageCount, s.Depth)
			fmt.Printf("   Participants: %s\n", strings.Join(s.Participants, ", "))
			return nil
		}

		fmt.Println(output)
		return nil
	},
}

// renderThread dispatches to the serializer for the requested format.
func renderThread(t *types.Thread, format string, includeContent bool) (string, error) {
	switch format {
	case "markdown", "md":
		return export.Markdown(t, includeContent), nil
	case "json":
		return export.JSON(t)
	case "text":
		return export.Text(t), nil
	default:
		return "", fmt.Errorf("unknown format %q (expected markdown, json, or text)", format)
	}
}

func init() {
	threadCmd.Flags().StringVarP(&threadFormat, "format", "f", "markdown", "output format: markdown, json, or text")
	threadCmd.Flags().StringVarP(&threadOutput, "output", "o", "", "write output to file instead of stdout")
	threadCmd.Flags().BoolVar(&threadNoContent, "no-content", false, "exclude full message content")
	rootCmd.AddCommand(threadCmd)
}
