package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/ledger"
)

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := loadSession("", sessionOptions{})
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), s)
}

func writeSummary(w io.Writer, s *session) error {
	l := s.ledger
	today := l.TodayTotal()
	week := l.WeekTotal()
	unit := s.unitLabel()

	report, err := s.policy.Report(l.Limit(), today)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("TALLY  %s  %s", strings.ToUpper(s.mode), cli.FormatDate(l.Now()))))
	fmt.Fprintln(w)

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"", unit},
		Rows: [][]string{
			{"Today", cli.FormatAmount(today)},
			{fmt.Sprintf("Last %d days", ledger.WeekDays), cli.FormatAmount(week)},
			{"---"},
			{"Daily limit", cli.FormatAmount(l.Limit())},
			{"Entries", cli.FormatNumber(int64(l.Len()))},
		},
	}))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", cli.RenderUsageBar(cli.UsedFraction(today, l.Limit()), 30))
	fmt.Fprintln(w, cli.RenderReport(report))
	fmt.Fprintln(w)

	return nil
}
