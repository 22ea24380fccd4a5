package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/allowance"
	"github.com/theirongolddev/tally/internal/clock"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
)

// session is everything one command invocation works on: the ledger built
// from --entry flags plus the report policy for the selected mode.
type session struct {
	cfg    config.Config
	mode   string
	ledger *ledger.Ledger
	policy allowance.Policy
	log    *log.Logger
}

// sessionOptions collects the flag values a session is built from.
type sessionOptions struct {
	Mode    string
	Limit   string
	Today   string
	Entries []string
	Unit    string
	Rates   []string
}

func newLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Component = log.ComponentCLI
	if flagVerbose {
		cfg.Level = slog.LevelDebug
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// loadSession builds a session from the config file and the global flags.
// forceMode, when set, wins over --mode and the config.
func loadSession(forceMode string, extra sessionOptions) (*session, error) {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "path", config.Path(), log.FieldMode, cfg.General.Mode)

	opts := extra
	opts.Mode = flagMode
	if opts.Mode == "" {
		opts.Mode = config.GetMode(cfg)
	}
	if forceMode != "" {
		opts.Mode = forceMode
	}
	opts.Limit = flagLimit
	opts.Today = flagToday
	opts.Entries = flagEntries

	return newSession(cfg, opts, logger)
}

func newSession(cfg config.Config, opts sessionOptions, logger *log.Logger) (*session, error) {
	if logger == nil {
		logger = log.Discard()
	}
	mode := strings.ToLower(strings.TrimSpace(opts.Mode))

	limit, err := resolveLimit(cfg, mode, opts.Limit)
	if err != nil {
		return nil, err
	}

	clk, err := clockFor(opts.Today)
	if err != nil {
		return nil, err
	}

	l, err := ledger.New(limit, clk)
	if err != nil {
		return nil, fmt.Errorf("%s limit %s: %w", mode, limit, err)
	}

	for _, raw := range opts.Entries {
		e, err := parseEntryFlag(raw, clk)
		if err != nil {
			return nil, err
		}
		l.Append(e)
		logger.Debug("entry recorded",
			log.FieldEntryID, e.ID().String(),
			log.FieldAmount, e.Amount().String(),
			log.FieldDate, model.FormatDate(e.OccurredOn()),
		)
	}

	policy, err := policyFor(cfg, mode, opts.Unit, opts.Rates)
	if err != nil {
		return nil, err
	}

	logger.Debug("session ready", log.FieldMode, mode, log.FieldLimit, limit.String(), log.FieldEntries, l.Len())
	return &session{cfg: cfg, mode: mode, ledger: l, policy: policy, log: logger}, nil
}

func resolveLimit(cfg config.Config, mode, override string) (decimal.Decimal, error) {
	if override != "" {
		d, err := model.ParseAmount(override)
		if err != nil {
			return decimal.Zero, fmt.Errorf("--limit: %w", err)
		}
		if _, err := cfg.DailyLimit(mode); err != nil {
			return decimal.Zero, err
		}
		return d, nil
	}

	f, err := cfg.DailyLimit(mode)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(f), nil
}

// clockFor pins now to midday of the given date, or uses the system clock.
func clockFor(today string) (clock.Clock, error) {
	if today == "" {
		return clock.System{}, nil
	}
	d, err := model.ParseDate(today, time.Local)
	if err != nil {
		return nil, fmt.Errorf("--today: %w", err)
	}
	return clock.Fixed(d.Add(12 * time.Hour)), nil
}

// parseEntryFlag parses amount[;note[;dd.mm.yyyy]].
func parseEntryFlag(raw string, clk clock.Clock) (model.Entry, error) {
	parts := strings.SplitN(raw, ";", 3)

	amount, err := model.ParseAmount(parts[0])
	if err != nil {
		return model.Entry{}, fmt.Errorf("--entry %q: %w", raw, err)
	}

	var note, date string
	if len(parts) > 1 {
		note = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		date = strings.TrimSpace(parts[2])
	}

	e, err := model.NewEntry(amount, note, date, clk)
	if err != nil {
		return model.Entry{}, fmt.Errorf("--entry %q: %w", raw, err)
	}
	return e, nil
}

func policyFor(cfg config.Config, mode, unit string, rawRates []string) (allowance.Policy, error) {
	if mode != config.ModeCash {
		return allowance.Policy{}, nil
	}

	overrides := make(map[allowance.Unit]decimal.Decimal, len(rawRates))
	for _, raw := range rawRates {
		u, rate, err := config.ParseRateOverride(raw)
		if err != nil {
			return allowance.Policy{}, fmt.Errorf("--rate: %w", err)
		}
		overrides[u] = rate
	}

	rates, err := config.RateTable(cfg, overrides)
	if err != nil {
		return allowance.Policy{}, err
	}

	if unit == "" {
		unit = cfg.Cash.Currency
	}
	return allowance.Policy{Currency: true, Unit: unit, Rates: rates}, nil
}

// unitLabel names what the limit and totals are counted in.
func (s *session) unitLabel() string {
	if s.policy.Currency {
		return s.policy.Rates.Label(allowance.Native)
	}
	return allowance.QuantityLabel
}
