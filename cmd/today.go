package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Total recorded today",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, _ []string) error {
	s, err := loadSession("", sessionOptions{})
	if err != nil {
		return err
	}
	writeToday(cmd.OutOrStdout(), s)
	return nil
}

func writeToday(w io.Writer, s *session) {
	l := s.ledger
	fmt.Fprintf(w, "  Today (%s): %s of %s %s\n",
		cli.FormatDate(l.Now()),
		cli.FormatAmount(l.TodayTotal()),
		cli.FormatAmount(l.Limit()),
		s.unitLabel(),
	)
}
