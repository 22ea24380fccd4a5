// Package cmd implements the tally CLI commands.
package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/allowance"
	"github.com/theirongolddev/tally/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return writeConfig(cmd.OutOrStdout(), cfg, config.Exists())
}

func writeConfig(w io.Writer, cfg config.Config, onDisk bool) error {
	fmt.Fprintf(w, "  Config file: %s\n", config.Path())
	if onDisk {
		fmt.Fprintln(w, "  Status: loaded")
	} else {
		fmt.Fprintln(w, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [General]")
	fmt.Fprintf(w, "    Mode:              %s\n", config.GetMode(cfg))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Calories]")
	fmt.Fprintf(w, "    Daily limit:       %v %s\n", cfg.Calories.DailyLimit, allowance.QuantityLabel)
	fmt.Fprintln(w)

	rates, err := config.RateTable(cfg, nil)
	if err != nil {
		return err
	}
	native := rates.Label(allowance.Native)

	fmt.Fprintln(w, "  [Cash]")
	fmt.Fprintf(w, "    Daily limit:       %v %s\n", cfg.Cash.DailyLimit, native)
	fmt.Fprintf(w, "    Report currency:   %s\n", cfg.Cash.Currency)
	units := make([]string, 0, len(rates.Rates))
	for u := range rates.Rates {
		units = append(units, string(u))
	}
	sort.Strings(units)
	for _, u := range units {
		unit := allowance.Unit(u)
		fmt.Fprintf(w, "    Rate %-4s         1 %s = %s %s\n", u, rates.Label(unit), rates.Rates[unit].String(), native)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Appearance]")
	fmt.Fprintf(w, "    Theme:             %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Daemon]")
	fmt.Fprintf(w, "    Address:           %s\n", cfg.Daemon.Addr)
	fmt.Fprintf(w, "    Events buffer:     %d\n", cfg.Daemon.EventsBuffer)
	fmt.Fprintln(w)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  Problems:\n  %v\n\n", err)
	}

	fmt.Fprintln(w, "  Run `tally setup` to reconfigure.")
	return nil
}
