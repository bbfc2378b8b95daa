package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	scanMinDepth        int
	scanMinMessages     int
	scanMinParticipants int
	scanLimit           int
	scanVerbose         bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for significant threads",
	Long: `Enumerate every thread root in the store, reconstruct each thread, and
retain those meeting all three thresholds: minimum depth, minimum message
count, and minimum participant count. Results are sorted by message count,
most active first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		limit := scanLimit
		if limit == 0 {
			limit = cfg.DefaultLimit
		}

		fmt.Printf("%s Scanning for significant threads...\n", iconInfo)
		fmt.Printf("   Criteria: depth >= %d, messages >= %d, participants >= %d\n\n",
			scanMinDepth, scanMinMessages, scanMinParticipants)

		threads, err := newEngine(store).ScanSignificant(cmd.Context(),
			scanMinDepth, scanMinMessages, scanMinParticipants, limit)
		if err != nil {
			return err
		}

		fmt.Println(formatThreadList(threads, scanVerbose))
		return nil
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanMinDepth, "min-depth", 3, "minimum thread depth")
	scanCmd.Flags().IntVar(&scanMinMessages, "min-messages", 5, "minimum message count")
	scanCmd.Flags().IntVar(&scanMinParticipants, "min-participants", 2, "minimum participant count")
	scanCmd.Flags().IntVarP(&scanLimit, "limit", "n", 0, "maximum threads to return")
	scanCmd.Flags().BoolVar(&scanVerbose, "long", false, "show channel, participants, and duration per thread")
	rootCmd.AddCommand(scanCmd)
}
