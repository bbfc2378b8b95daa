package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/metaphy/threadctl/internal/storage"
	"github.com/metaphy/threadctl/internal/thread"
)

var (
	relatedLimit   int
	relatedVerbose bool
)

var relatedCmd = &cobra.Command{
	Use:   "related <message-id>",
	Short: "Find threads related to the one containing a message",
	Long: `Reconstruct the thread containing the given message, then find other
threads involving the same participants.`,
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

		related, err := newEngine(store).FindRelated(cmd.Context(), t, relatedLimit)
		if err != nil {
			return err
		}

		fmt.Println(formatThreadList(related, relatedVerbose))
		return nil
	},
}

func init() {
	relatedCmd.Flags().IntVarP(&relatedLimit, "limit", "n", 10, "maximum threads to return")
	relatedCmd.Flags().BoolVar(&relatedVerbose, "long", false, "show channel, participants, and duration per thread")
	rootCmd.AddCommand(relatedCmd)
}
