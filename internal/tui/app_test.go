package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/allowance"
	"github.com/theirongolddev/tally/internal/clock"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, limit int64, policy allowance.Policy) (App, *ledger.Ledger) {
	t.Helper()
	l, err := ledger.New(decimal.NewFromInt(limit), clock.Fixed(testNow))
	if err != nil {
		t.Fatalf("ledger.New: %v", err)
	}
	mode := config.ModeCalories
	if policy.Currency {
		mode = config.ModeCash
	}
	return NewApp(l, Options{Mode: mode, Policy: policy}), l
}

func cashPolicy(unit string) allowance.Policy {
	return allowance.Policy{
		Currency: true,
		Unit:     unit,
		Rates: allowance.RateTable{
			Rates: map[allowance.Unit]decimal.Decimal{
				allowance.USD: decimal.NewFromInt(60),
				allowance.EUR: decimal.NewFromInt(70),
			},
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return next, cmd
}

func TestCommitAppendsEntry(t *testing.T) {
	a, l := newTestApp(t, 2000, allowance.Policy{})

	e, err := a.commit(entryDraft{Amount: "1500", Note: " lunch "})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("ledger len = %d, want 1", l.Len())
	}
	if e.Note() != "lunch" {
		t.Fatalf("note = %q, want %q", e.Note(), "lunch")
	}
	if !e.OccurredOn().Equal(clock.Date(testNow)) {
		t.Fatalf("date = %v, want today", e.OccurredOn())
	}
	if got := l.TodayTotal(); !got.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("TodayTotal = %s, want 1500", got)
	}
	if rows := a.entries.Rows(); len(rows) != 1 || rows[0][1] != "1,500" {
		t.Fatalf("entry rows = %v, want one row of 1,500", rows)
	}
}

func TestCommitNewestFirst(t *testing.T) {
	a, _ := newTestApp(t, 2000, allowance.Policy{})
	for _, amt := range []string{"100", "200", "300"} {
		if _, err := a.commit(entryDraft{Amount: amt}); err != nil {
			t.Fatalf("commit %s: %v", amt, err)
		}
	}
	rows := a.entries.Rows()
	if len(rows) != 3 || rows[0][1] != "300" || rows[2][1] != "100" {
		t.Fatalf("rows = %v, want newest first", rows)
	}
}

func TestCommitRejectsMalformedInput(t *testing.T) {
	tests := []entryDraft{
		{Amount: "abc"},
		{Amount: "100", Date: "31.02.2024"},
		{Amount: "100", Date: "2024-02-01"},
	}
	for _, d := range tests {
		a, l := newTestApp(t, 2000, allowance.Policy{})
		if _, err := a.commit(d); !errors.Is(err, model.ErrMalformedInput) {
			t.Fatalf("commit(%+v) err = %v, want ErrMalformedInput", d, err)
		}
		if l.Len() != 0 {
			t.Fatalf("commit(%+v) appended an entry", d)
		}
	}
}

func TestAddOpensFormAndEscCancels(t *testing.T) {
	a, _ := newTestApp(t, 2000, allowance.Policy{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})

	a, _ = update(t, a, keyRunes("a"))
	if a.form == nil {
		t.Fatal("form should be open after pressing a")
	}

	// q is typed into the form, not treated as quit
	a, _ = update(t, a, keyRunes("q"))
	if a.form == nil {
		t.Fatal("form should stay open while typing")
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.form != nil {
		t.Fatal("esc should close the form")
	}
	if a.notice != "Entry discarded" {
		t.Fatalf("notice = %q, want %q", a.notice, "Entry discarded")
	}
}

func TestQuitKeys(t *testing.T) {
	a, _ := newTestApp(t, 2000, allowance.Policy{})
	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, a, msg)
		if cmd == nil {
			t.Fatalf("%s: no command returned", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: command did not quit", msg)
		}
	}
}

func TestUnitKeyCyclesInCashMode(t *testing.T) {
	a, _ := newTestApp(t, 1000, cashPolicy("native"))
	want := []string{"usd", "eur", "native"}
	for _, w := range want {
		a, _ = update(t, a, keyRunes("u"))
		if a.policy.Unit != w {
			t.Fatalf("unit = %q, want %q", a.policy.Unit, w)
		}
	}
}

func TestUnitKeyDisabledForCalories(t *testing.T) {
	a, _ := newTestApp(t, 2000, allowance.Policy{Unit: "native"})
	a, _ = update(t, a, keyRunes("u"))
	if a.policy.Unit != "native" {
		t.Fatalf("unit = %q, want unchanged", a.policy.Unit)
	}
}

func TestNextUnit(t *testing.T) {
	tests := map[string]string{
		"native": "usd",
		"rub":    "usd",
		"USD":    "eur",
		"eur":    "native",
		"bogus":  "native",
	}
	for in, want := range tests {
		if got := nextUnit(in); got != want {
			t.Fatalf("nextUnit(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestViewShowsReport(t *testing.T) {
	a, _ := newTestApp(t, 2000, allowance.Policy{})
	if a.View() != "" {
		t.Fatal("View before the first WindowSizeMsg should be empty")
	}
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	if _, err := a.commit(entryDraft{Amount: "2500", Note: "feast"}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	view := a.View()
	for _, want := range []string{"Stop eating!", "Entries (1)", "Last 7 days", "calories"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestViewShowsDebt(t *testing.T) {
	a, _ := newTestApp(t, 1000, cashPolicy("usd"))
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	if _, err := a.commit(entryDraft{Amount: "1200"}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if view := a.View(); !strings.Contains(view, "your debt is 3.33 USD") {
		t.Fatalf("view missing debt line:\n%s", view)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a, _ := newTestApp(t, 2000, allowance.Policy{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("narrow terminal should get the too-narrow notice")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	v.Mode = config.ModeCash
	v.CashLimit = "1500,5"
	v.Currency = "eur"
	v.NativeLabel = " UAH "
	v.Theme = "tokyo-night"

	if err := v.Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.General.Mode != config.ModeCash || cfg.Cash.DailyLimit != 1500.5 {
		t.Fatalf("cfg = %+v, want cash mode with 1500.5 limit", cfg)
	}
	if cfg.Cash.NativeLabel != "UAH" || cfg.Cash.Currency != "eur" {
		t.Fatalf("cash = %+v", cfg.Cash)
	}
	if cfg.Calories.DailyLimit != 2000 {
		t.Fatalf("calorie limit = %v, want untouched 2000", cfg.Calories.DailyLimit)
	}
}

func TestSetupValuesApplyRejectsBadLimit(t *testing.T) {
	for _, bad := range []string{"", "zero", "0", "-5", "2,000"} {
		cfg := config.DefaultConfig()
		v := SetupValuesFrom(cfg)
		v.CaloriesLimit = bad
		if err := v.Apply(&cfg); err == nil {
			t.Fatalf("Apply with calorie limit %q should fail", bad)
		}
		if cfg.Calories.DailyLimit != 2000 {
			t.Fatalf("failed Apply changed the config")
		}
	}
}

func TestReportValue(t *testing.T) {
	limit := decimal.NewFromInt(2000)
	over, err := allowance.Policy{}.Report(limit, decimal.NewFromInt(2500))
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got := reportValue(over); got != "limit reached" {
		t.Fatalf("reportValue(over limit) = %q, want %q", got, "limit reached")
	}

	left, _ := allowance.Policy{}.Report(limit, decimal.NewFromInt(500))
	if got := reportValue(left); got != "1,500 kcal" {
		t.Fatalf("reportValue(available) = %q, want %q", got, "1,500 kcal")
	}

	cash := cashPolicy("usd")
	broke, err := cash.Report(decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got := reportValue(broke); got != "0 USD" {
		t.Fatalf("reportValue(no funds) = %q, want %q", got, "0 USD")
	}

	debt, _ := cash.Report(decimal.NewFromInt(1000), decimal.NewFromInt(1200))
	if got := reportValue(debt); got != "-3.33 USD" {
		t.Fatalf("reportValue(debt) = %q, want %q", got, "-3.33 USD")
	}
}
