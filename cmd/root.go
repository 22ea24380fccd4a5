package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagEntries []string
	flagLimit   string
	flagMode    string
	flagToday   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Daily calorie and spending tracker",
	Long: "Track entries against a fixed daily limit: today's total, the trailing week,\n" +
		"and what is left for today, optionally converted into another currency.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&flagEntries, "entry", "e", nil,
		"Record an entry as amount[;note[;dd.mm.yyyy]] (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&flagLimit, "limit", "l", "", "Daily limit (overrides config for the selected mode)")
	rootCmd.PersistentFlags().StringVarP(&flagMode, "mode", "m", "", "Tracking mode: calories or cash (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Pin today's date (dd.mm.yyyy) for reproducible runs")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
}
