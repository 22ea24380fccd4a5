package allowance

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit selects the currency a report is converted into.
type Unit string

// Supported units. Native is the limit's own currency and never converts.
const (
	USD    Unit = "usd"
	EUR    Unit = "eur"
	Native Unit = "native"
)

// DefaultNativeLabel is shown for Native when no label is configured.
const DefaultNativeLabel = "RUB"

var (
	// ErrUnsupportedUnit matches every *UnsupportedUnitError.
	ErrUnsupportedUnit = errors.New("unsupported unit")
	// ErrInvalidRate is returned when a unit has no positive rate.
	ErrInvalidRate = errors.New("invalid conversion rate")
)

// UnsupportedUnitError reports an unrecognized unit selector.
type UnsupportedUnitError struct {
	Unit string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported unit %q: expected one of %s", e.Unit, strings.Join(UnitNames(), ", "))
}

// Is reports whether target is ErrUnsupportedUnit.
func (e *UnsupportedUnitError) Is(target error) bool {
	return target == ErrUnsupportedUnit
}

var unitAliases = map[string]Unit{
	"usd":    USD,
	"eur":    EUR,
	"native": Native,
	"rub":    Native,
}

var defaultLabels = map[Unit]string{
	USD: "USD",
	EUR: "Euro",
}

// UnitNames lists the accepted selectors, sorted.
func UnitNames() []string {
	names := make([]string, 0, len(unitAliases))
	for name := range unitAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseUnit resolves a selector, case-insensitively. "rub" is an alias of
// native.
func ParseUnit(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &UnsupportedUnitError{Unit: s}
	}
	return u, nil
}

// RateTable maps each foreign unit to how many native units buy one unit
// of it.
type RateTable struct {
	Rates       map[Unit]decimal.Decimal
	NativeLabel string
}

// Convert divides amount by the unit's rate. Native amounts pass through.
func (t RateTable) Convert(u Unit, amount decimal.Decimal) (decimal.Decimal, error) {
	if u == Native {
		return amount, nil
	}
	rate, ok := t.Rates[u]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w for %s", ErrInvalidRate, u)
	}
	return amount.Div(rate), nil
}

// Label returns the display label for u.
func (t RateTable) Label(u Unit) string {
	if u == Native {
		if t.NativeLabel != "" {
			return t.NativeLabel
		}
		return DefaultNativeLabel
	}
	return defaultLabels[u]
}
