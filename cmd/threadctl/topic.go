package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	topicLimit   int
	topicVerbose bool
)

var topicCmd = &cobra.Command{
	Use:   "topic <keyword>",
	Short: "Find threads by topic keyword",
	Long: `Find threads containing at least one message whose content includes
the keyword. Matching is literal, case-insensitive substring matching.
Results are ordered by thread recency, most recent root first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		limit := topicLimit
		if limit == 0 {
			limit = cfg.DefaultLimit
		}

		threads, err := newEngine(store).FindByTopic(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}

		fmt.Println(formatThreadList(threads, topicVerbose))
		return nil
	},
}

func init() {
	topicCmd.Flags().IntVarP(&topicLimit, "limit", "n", 0, "maximum threads to return")
	topicCmd.Flags().BoolVar(&topicVerbose, "long", false, "show channel, participants, and duration per thread")
	rootCmd.AddCommand(topicCmd)
}
