package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	participantLimit   int
	participantVerbose bool
)

var participantCmd = &cobra.Command{
	Use:   "participant <identifier>",
	Short: "Find threads a participant was involved in",
	Long: `Find threads in which the given identifier sent at least one message.
Matching is case-insensitive equality on the sender id or display name.
Results are ordered by thread recency, most recent root first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		limit := participantLimit
		if limit == 0 {
			limit = cfg.DefaultLimit
		}

		threads, err := newEngine(store).FindByParticipant(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}

		fmt.Println(formatThreadList(threads, participantVerbose))
		return nil
	},
}

func init() {
	participantCmd.Flags().IntVarP(&participantLimit, "limit", "n", 0, "maximum threads to return")
	participantCmd.Flags().BoolVar(&participantVerbose, "long", false, "show channel, participants, and duration per thread")
	rootCmd.AddCommand(participantCmd)
}
