package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
)

var remainingCmd = &cobra.Command{
	Use:   "remaining",
	Short: "What is left of today's limit",
	RunE:  runRemaining,
}

func init() {
	rootCmd.AddCommand(remainingCmd)
}

func runRemaining(cmd *cobra.Command, _ []string) error {
	s, err := loadSession("", sessionOptions{})
	if err != nil {
		return err
	}
	return writeRemaining(cmd.OutOrStdout(), s)
}

func writeRemaining(w io.Writer, s *session) error {
	report, err := s.policy.Report(s.ledger.Limit(), s.ledger.TodayTotal())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, cli.RenderReport(report)+"\n")
	return err
}
