package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/allowance"
	"github.com/theirongolddev/tally/internal/config"
)

var (
	flagCashUnit  string
	flagCashRates []string
)

var cashCmd = &cobra.Command{
	Use:   "cash",
	Short: "Remaining cash for today, converted into a currency",
	Long: "Reports today's remaining spending allowance in the chosen currency.\n" +
		"Rates are native units per one unit of the target currency.",
	Example: "  tally cash -e '700;groceries' --unit usd\n" +
		"  tally cash -e 1200 --unit eur --rate eur=95.5",
	RunE: runCash,
}

func init() {
	cashCmd.Flags().StringVarP(&flagCashUnit, "unit", "u", "",
		fmt.Sprintf("Currency to report in: %s (default from config)", strings.Join(allowance.UnitNames(), ", ")))
	cashCmd.Flags().StringArrayVar(&flagCashRates, "rate", nil, "Override a conversion rate as unit=value (repeatable)")
	rootCmd.AddCommand(cashCmd)
}

func runCash(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(config.ModeCash, sessionOptions{
		Unit:  flagCashUnit,
		Rates: flagCashRates,
	})
	if err != nil {
		return err
	}
	return writeRemaining(cmd.OutOrStdout(), s)
}
