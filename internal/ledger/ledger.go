// Package ledger holds the append-only entry collection and its rolling
// window aggregations.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/clock"
	"github.com/theirongolddev/tally/internal/model"
)

// WeekDays is the width of the trailing week window.
const WeekDays = 7

// ErrNonPositiveLimit is returned by New for a zero or negative limit.
var ErrNonPositiveLimit = errors.New("limit must be positive")

// Ledger is an append-only list of entries with a fixed daily limit.
// It is not safe for concurrent use; callers that share one Ledger across
// goroutines must guard it themselves.
type Ledger struct {
	limit   decimal.Decimal
	entries []model.Entry
	clock   clock.Clock
}

// New creates an empty ledger. A nil clock falls back to the system clock.
func New(limit decimal.Decimal, clk clock.Clock) (*Ledger, error) {
	if !limit.IsPositive() {
		return nil, ErrNonPositiveLimit
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Ledger{limit: limit, clock: clk}, nil
}

// Append adds one entry. It always succeeds.
func (l *Ledger) Append(e model.Entry) {
	l.entries = append(l.entries, e)
}

// Limit returns the configured daily limit.
func (l *Ledger) Limit() decimal.Decimal { return l.limit }

// Len returns the number of appended entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Clock returns the ledger's time source, so new entries can share it.
func (l *Ledger) Clock() clock.Clock { return l.clock }

// Now returns the ledger's current time.
func (l *Ledger) Now() time.Time { return l.clock.Now() }

// Entries returns a copy of all entries in append order.
func (l *Ledger) Entries() []model.Entry {
	out := make([]model.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// TodayTotal sums the entries dated on the current calendar date.
func (l *Ledger) TodayTotal() decimal.Decimal {
	return l.WindowTotal(1)
}

// WeekTotal sums the entries dated within the trailing seven days,
// today included: 0 <= daysAgo < 7.
func (l *Ledger) WeekTotal() decimal.Decimal {
	return l.WindowTotal(WeekDays)
}

// WindowTotal sums the entries whose date lies in [today-days+1, today].
// Entries dated in the future never count. "Today" is read from the clock
// on every call.
func (l *Ledger) WindowTotal(days int) decimal.Decimal {
	now := l.clock.Now()
	total := decimal.Zero
	for _, e := range l.entries {
		if inWindow(e.OccurredOn(), now, days) {
			total = total.Add(e.Amount())
		}
	}
	return total
}

func inWindow(occurredOn, now time.Time, days int) bool {
	ago := clock.DaysBetween(occurredOn, now)
	return ago >= 0 && ago < days
}
