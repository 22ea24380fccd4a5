// Package allowance turns a daily limit and today's total into a
// remaining-allowance report, either in the limit's own unit or converted
// into a currency at a fixed rate.
//
// Both report functions take plain (limit, todayTotal) values, so they share
// whatever aggregation the caller used to produce the total.
package allowance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuantityLabel is the unit shown in quantity reports.
const QuantityLabel = "kcal"

// Status classifies a remaining-allowance report.
type Status int

const (
	// StatusAvailable means some allowance is left; Value carries it.
	StatusAvailable Status = iota
	// StatusLimitReached means the quantity limit is used up or exceeded.
	StatusLimitReached
	// StatusNoFunds means the converted remainder is exactly zero.
	StatusNoFunds
	// StatusDebt means the converted remainder is negative; Value carries
	// its absolute value.
	StatusDebt
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusLimitReached:
		return "limit_reached"
	case StatusNoFunds:
		return "no_funds"
	case StatusDebt:
		return "debt"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText lets Status encode as its name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusAvailable, StatusLimitReached, StatusNoFunds, StatusDebt} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Report is the outcome of a remaining-allowance query.
type Report struct {
	Status   Status
	Value    decimal.Decimal
	HasValue bool
	Unit     string

	currency bool
}

// Message renders the report as a human-readable line.
func (r Report) Message() string {
	if !r.currency {
		if r.Status == StatusAvailable {
			return fmt.Sprintf("You can eat something else today, but no more than %s %s", r.Value.String(), r.Unit)
		}
		return "Stop eating!"
	}

	switch r.Status {
	case StatusAvailable:
		return fmt.Sprintf("Left for today: %s %s", r.Value.StringFixed(2), r.Unit)
	case StatusNoFunds:
		return "No money left, hang in there"
	default:
		return fmt.Sprintf("No money left, hang in there: your debt is %s %s", r.Value.StringFixed(2), r.Unit)
	}
}

func (r Report) String() string { return r.Message() }

// Remaining returns limit - today.
func Remaining(limit, today decimal.Decimal) decimal.Decimal {
	return limit.Sub(today)
}

// Quantity reports the allowance left in the limit's own unit. Zero and
// negative remainders are the same state.
func Quantity(limit, today decimal.Decimal) Report {
	remaining := Remaining(limit, today)
	if remaining.IsPositive() {
		return Report{
			Status:   StatusAvailable,
			Value:    remaining,
			HasValue: true,
			Unit:     QuantityLabel,
		}
	}
	return Report{Status: StatusLimitReached, Unit: QuantityLabel}
}

// Currency reports the allowance left converted into the selected unit.
// The sign test runs on the unrounded converted value; displayed values are
// rounded to two decimal places.
func Currency(limit, today decimal.Decimal, unit string, table RateTable) (Report, error) {
	u, err := ParseUnit(unit)
	if err != nil {
		return Report{}, err
	}

	converted, err := table.Convert(u, Remaining(limit, today))
	if err != nil {
		return Report{}, err
	}

	label := table.Label(u)
	switch converted.Sign() {
	case 1:
		return Report{Status: StatusAvailable, Value: converted.Round(2), HasValue: true, Unit: label, currency: true}, nil
	case 0:
		return Report{Status: StatusNoFunds, Unit: label, currency: true}, nil
	default:
		return Report{Status: StatusDebt, Value: converted.Abs().Round(2), HasValue: true, Unit: label, currency: true}, nil
	}
}
