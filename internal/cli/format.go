// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return groupDigits(strconv.FormatInt(n, 10))
}

// FormatAmount formats a decimal with comma-separated thousands, keeping at
// most two fractional digits and dropping them when the value is whole.
// e.g., 1234.5 -> "1,234.50", 2000 -> "2,000"
func FormatAmount(d decimal.Decimal) string {
	whole, frac, _ := strings.Cut(d.Round(2).StringFixed(2), ".")
	out := groupDigits(whole)
	if frac != "" && frac != "00" {
		out += "." + frac
	}
	return out
}

// groupDigits inserts thousands separators into an optionally signed string
// of digits. Working on the text keeps values beyond int64 intact.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders a calendar date in the dd.mm.yyyy form entries use.
func FormatDate(t time.Time) string {
	return model.FormatDate(t)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// UsedFraction returns total/limit as a float, 0 when limit is not positive.
func UsedFraction(total, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}
	f, _ := total.Div(limit).Float64()
	return f
}
