// Package model defines domain types for tally entries and totals.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/clock"
)

// DateLayout is the accepted entry date format (day.month.year).
// Single-digit days and months are accepted as well.
const DateLayout = "2.1.2006"

// amountHint describes accepted amounts in errors.
const amountHint = "decimal number without thousands separators"

// DateFormatHint is the human-readable form of DateLayout used in errors.
const DateFormatHint = "dd.mm.yyyy"

// Entry is one recorded amount on a calendar date. Entries are immutable
// once constructed.
type Entry struct {
	id         uuid.UUID
	amount     decimal.Decimal
	occurredOn time.Time
	note       string
}

// NewEntry builds an Entry. An empty date resolves to the clock's current
// date, read exactly once here. A non-empty date must be a real calendar
// date in dd.mm.yyyy form.
func NewEntry(amount decimal.Decimal, note, date string, clk clock.Clock) (Entry, error) {
	now := clk.Now()

	var occurredOn time.Time
	if strings.TrimSpace(date) == "" {
		occurredOn = clock.Date(now)
	} else {
		d, err := ParseDate(date, now.Location())
		if err != nil {
			return Entry{}, err
		}
		occurredOn = d
	}

	return Entry{
		id:         uuid.New(),
		amount:     amount,
		occurredOn: occurredOn,
		note:       note,
	}, nil
}

// ParseDate parses a dd.mm.yyyy string into midnight of that date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, &MalformedInputError{Input: s, Expected: DateFormatHint, Err: err}
	}
	return d, nil
}

// ParseAmount parses a decimal amount with an optional leading sign. A
// single comma is read as the decimal separator ("12,5"), except where it
// reads like a thousands separator ("1,500"): those and any mix of commas
// and dots are rejected rather than guessed at.
func ParseAmount(s string) (decimal.Decimal, error) {
	norm := strings.TrimSpace(s)
	if strings.Contains(norm, ",") {
		whole, frac, _ := strings.Cut(norm, ",")
		if strings.ContainsAny(frac, ",.") || strings.Contains(whole, ".") || len(frac) == 3 {
			return decimal.Zero, &MalformedInputError{Input: s, Expected: amountHint}
		}
		norm = whole + "." + frac
	}
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Zero, &MalformedInputError{Input: s, Expected: amountHint, Err: err}
	}
	return d, nil
}

// FormatDate renders a date in canonical dd.mm.yyyy form, zero-padded.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// ID returns the entry's audit identifier.
func (e Entry) ID() uuid.UUID { return e.id }

// Amount returns the recorded quantity. The sign is taken literally.
func (e Entry) Amount() decimal.Decimal { return e.amount }

// OccurredOn returns the entry's calendar date (midnight, local to the clock
// that created it).
func (e Entry) OccurredOn() time.Time { return e.occurredOn }

// Note returns the free-text annotation.
func (e Entry) Note() string { return e.note }
