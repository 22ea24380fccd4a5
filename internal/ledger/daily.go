package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/clock"
	"github.com/theirongolddev/tally/internal/model"
)

// Daily computes per-day totals over the trailing window of the given width.
// Every day in the window is present, zero-filled, most recent first.
func (l *Ledger) Daily(days int) []model.DayTotal {
	if days <= 0 {
		return nil
	}

	today := clock.Today(l.clock)
	out := make([]model.DayTotal, days)
	for i := range out {
		out[i] = model.DayTotal{
			Date:  today.AddDate(0, 0, -i),
			Total: decimal.Zero,
		}
	}

	for _, e := range l.entries {
		ago := clock.DaysBetween(e.OccurredOn(), today)
		if ago < 0 || ago >= days {
			continue
		}
		out[ago].Entries++
		out[ago].Total = out[ago].Total.Add(e.Amount())
	}

	return out
}
