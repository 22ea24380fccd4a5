package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from values. Values at or below
// zero render as the lowest block.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// Bar is one row of a DayBars chart. Used is the fraction of the daily
// limit the row consumed.
type Bar struct {
	Label string
	Value string
	Used  float64
}

// DayBars renders one horizontal bar per row, scaled so a full bar equals
// the daily limit. Rows over the limit saturate and turn red.
func DayBars(rows []Bar, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW, valueW := 0, 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		valueW = max(valueW, lipgloss.Width(r.Value))
	}

	barW := width - labelW - valueW - 2
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for i, r := range rows {
		used := r.Used
		if used < 0 {
			used = 0
		}
		filled := int(min(used, 1) * float64(barW))
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(used)))

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label)))
		b.WriteString(" ")
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(emptyStyle.Render(strings.Repeat("·", barW-filled)))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, r.Value)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
