package allowance

import "github.com/shopspring/decimal"

// Policy picks the report a tracking mode produces: the plain quantity
// report, or the currency report in Unit using Rates.
type Policy struct {
	Currency bool
	Unit     string
	Rates    RateTable
}

// Report computes the remaining-allowance report for today's total.
func (p Policy) Report(limit, today decimal.Decimal) (Report, error) {
	if !p.Currency {
		return Quantity(limit, today), nil
	}
	return Currency(limit, today, p.Unit, p.Rates)
}

// WithUnit returns a copy of p that reports in unit.
func (p Policy) WithUnit(unit string) Policy {
	p.Unit = unit
	return p
}
