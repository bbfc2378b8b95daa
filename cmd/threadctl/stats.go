package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Statistics(cmd.Context())
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%s\n", cyan("Database Statistics"))
		fmt.Println("========================================")
		fmt.Printf("Total messages:     %d\n", stats.TotalMessages)
		fmt.Printf("Reply messages:     %d\n", stats.ReplyMessages)
		fmt.Printf("Unique senders:     %d\n", stats.UniqueSenders)
		fmt.Printf("Channels:           %d\n", stats.Channels)
		fmt.Printf("Earliest message:   %s\n", stats.EarliestMessage)
		fmt.Printf("Latest message:     %s\n", stats.LatestMessage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
