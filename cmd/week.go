package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/ledger"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Total over the trailing 7 days with a per-day table",
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(cmd *cobra.Command, _ []string) error {
	s, err := loadSession("", sessionOptions{})
	if err != nil {
		return err
	}
	writeWeek(cmd.OutOrStdout(), s)
	return nil
}

func writeWeek(w io.Writer, s *session) {
	l := s.ledger
	days := l.Daily(ledger.WeekDays)

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("LAST %d DAYS  %s %s", ledger.WeekDays, cli.FormatAmount(l.WeekTotal()), s.unitLabel())))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(days))
	spark := make([]float64, len(days))
	for i, d := range days {
		rows = append(rows, []string{
			cli.FormatDate(d.Date),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.FormatNumber(int64(d.Entries)),
			cli.FormatAmount(d.Total),
			cli.FormatPercent(cli.UsedFraction(d.Total, l.Limit())),
		})
		// oldest on the left
		spark[len(days)-1-i], _ = d.Total.Float64()
	}

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Entries", "Total", "Of limit"},
		Rows:    rows,
	}))
	fmt.Fprintf(w, "  Trend: %s\n\n", cli.RenderSparkline(spark))
}
