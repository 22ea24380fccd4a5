package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/allowance"
)

// DefaultRates holds the built-in conversion rates: native units per one
// unit of the foreign currency.
var DefaultRates = map[allowance.Unit]decimal.Decimal{
	allowance.USD: decimal.NewFromInt(60),
	allowance.EUR: decimal.NewFromInt(70),
}

func validateUnit(s string) error {
	_, err := allowance.ParseUnit(s)
	return err
}

// RateTable merges the default rates, the config file's [cash.rates] and
// the explicit overrides, later sources winning.
func RateTable(cfg Config, overrides map[allowance.Unit]decimal.Decimal) (allowance.RateTable, error) {
	rates := make(map[allowance.Unit]decimal.Decimal, len(DefaultRates))
	for u, r := range DefaultRates {
		rates[u] = r
	}

	for name, r := range cfg.Cash.Rates {
		u, err := allowance.ParseUnit(name)
		if err != nil {
			return allowance.RateTable{}, fmt.Errorf("cash.rates: %w", err)
		}
		rates[u] = decimal.NewFromFloat(r)
	}

	for u, r := range overrides {
		rates[u] = r
	}

	return allowance.RateTable{
		Rates:       rates,
		NativeLabel: cfg.Cash.NativeLabel,
	}, nil
}

// ParseRateOverride parses a "unit=rate" flag value.
func ParseRateOverride(s string) (allowance.Unit, decimal.Decimal, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", decimal.Zero, fmt.Errorf("rate override %q: expected unit=rate", s)
	}

	u, err := allowance.ParseUnit(name)
	if err != nil {
		return "", decimal.Zero, err
	}
	if u == allowance.Native {
		return "", decimal.Zero, fmt.Errorf("rate override %q: native currency has no rate", s)
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("rate override %q: %w", s, err)
	}
	if !rate.IsPositive() {
		return "", decimal.Zero, fmt.Errorf("rate override %q: %w", s, allowance.ErrInvalidRate)
	}
	return u, rate, nil
}
