package ledger

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/clock"
	"github.com/theirongolddev/tally/internal/model"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newLedger(t *testing.T, limit int64) *Ledger {
	t.Helper()
	l, err := New(dec(limit), clock.Fixed(testNow))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

// entryDaysAgo builds an entry dated n days before testNow.
func entryDaysAgo(t *testing.T, amount int64, n int) model.Entry {
	t.Helper()
	date := testNow.AddDate(0, 0, -n).Format(model.DateLayout)
	e, err := model.NewEntry(dec(amount), "", date, clock.Fixed(testNow))
	if err != nil {
		t.Fatalf("NewEntry(%s): %v", date, err)
	}
	return e
}

func TestNew_RejectsNonPositiveLimit(t *testing.T) {
	for _, limit := range []int64{0, -1} {
		if _, err := New(dec(limit), clock.Fixed(testNow)); !errors.Is(err, ErrNonPositiveLimit) {
			t.Fatalf("New(%d) error = %v, want ErrNonPositiveLimit", limit, err)
		}
	}
}

func TestNew_NilClockUsesSystem(t *testing.T) {
	l, err := New(dec(1), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := l.Clock().(clock.System); !ok {
		t.Fatalf("Clock() = %T, want clock.System", l.Clock())
	}
}

func TestAppend_PreservesOrderAndLimit(t *testing.T) {
	l := newLedger(t, 2000)
	a := entryDaysAgo(t, 1, 3)
	b := entryDaysAgo(t, 2, 0)
	c := entryDaysAgo(t, 3, 10)
	l.Append(a)
	l.Append(b)
	l.Append(c)

	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	got := l.Entries()
	for i, want := range []model.Entry{a, b, c} {
		if got[i].ID() != want.ID() {
			t.Fatalf("entry %d ID = %s, want %s", i, got[i].ID(), want.ID())
		}
	}
	if !l.Limit().Equal(dec(2000)) {
		t.Fatalf("Limit = %s, want 2000", l.Limit())
	}

	// The returned slice is a copy.
	got[0] = c
	if l.Entries()[0].ID() != a.ID() {
		t.Fatal("Entries() exposed internal storage")
	}
}

func TestTodayTotal(t *testing.T) {
	l := newLedger(t, 2000)
	if !l.TodayTotal().IsZero() {
		t.Fatalf("empty TodayTotal = %s, want 0", l.TodayTotal())
	}

	l.Append(entryDaysAgo(t, 500, 0))
	l.Append(entryDaysAgo(t, 300, 0))
	l.Append(entryDaysAgo(t, 700, 1))
	l.Append(entryDaysAgo(t, 900, -1))

	if got := l.TodayTotal(); !got.Equal(dec(800)) {
		t.Fatalf("TodayTotal = %s, want 800", got)
	}
}

func TestTodayTotal_EvaluatedPerCall(t *testing.T) {
	now := testNow
	l, err := New(dec(2000), clock.Func(func() time.Time { return now }))
	if err != nil {
		t.Fatal(err)
	}
	l.Append(entryDaysAgo(t, 500, 0))

	if got := l.TodayTotal(); !got.Equal(dec(500)) {
		t.Fatalf("TodayTotal = %s, want 500", got)
	}
	now = now.AddDate(0, 0, 1)
	if got := l.TodayTotal(); !got.IsZero() {
		t.Fatalf("TodayTotal next day = %s, want 0", got)
	}
	if got := l.WeekTotal(); !got.Equal(dec(500)) {
		t.Fatalf("WeekTotal next day = %s, want 500", got)
	}
}

func TestWeekTotal_Boundaries(t *testing.T) {
	cases := []struct {
		daysAgo int
		counts  bool
	}{
		{-3, false},
		{-1, false},
		{0, true},
		{1, true},
		{5, true},
		{6, true},
		{7, false},
		{8, false},
		{30, false},
	}
	for _, tc := range cases {
		l := newLedger(t, 3000)
		l.Append(entryDaysAgo(t, 100, tc.daysAgo))

		want := decimal.Zero
		if tc.counts {
			want = dec(100)
		}
		if got := l.WeekTotal(); !got.Equal(want) {
			t.Fatalf("daysAgo=%d: WeekTotal = %s, want %s", tc.daysAgo, got, want)
		}
	}
}

func TestWeekTotal_Scenario(t *testing.T) {
	l := newLedger(t, 3000)
	l.Append(entryDaysAgo(t, 1000, 6))
	l.Append(entryDaysAgo(t, 500, 7))

	if got := l.WeekTotal(); !got.Equal(dec(1000)) {
		t.Fatalf("WeekTotal = %s, want 1000", got)
	}
}

func TestTotals_SignTakenLiterally(t *testing.T) {
	l := newLedger(t, 100)
	l.Append(entryDaysAgo(t, 300, 0))
	l.Append(entryDaysAgo(t, -120, 0))
	l.Append(entryDaysAgo(t, -50, 2))

	if got := l.TodayTotal(); !got.Equal(dec(180)) {
		t.Fatalf("TodayTotal = %s, want 180", got)
	}
	if got := l.WeekTotal(); !got.Equal(dec(130)) {
		t.Fatalf("WeekTotal = %s, want 130", got)
	}
}

func TestTotals_Idempotent(t *testing.T) {
	l := newLedger(t, 2000)
	for i := 0; i < 10; i++ {
		l.Append(entryDaysAgo(t, int64(i*37), i))
	}
	today, week := l.TodayTotal(), l.WeekTotal()
	for i := 0; i < 5; i++ {
		if !l.TodayTotal().Equal(today) || !l.WeekTotal().Equal(week) {
			t.Fatalf("totals changed between calls: today %s/%s week %s/%s",
				today, l.TodayTotal(), week, l.WeekTotal())
		}
	}
}

func TestTodayWithinWeek(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		l := newLedger(t, 2000)
		for i := 0; i < 20; i++ {
			l.Append(entryDaysAgo(t, rng.Int63n(1000), rng.Intn(WeekDays)))
		}
		if l.TodayTotal().GreaterThan(l.WeekTotal()) {
			t.Fatalf("round %d: TodayTotal %s > WeekTotal %s", round, l.TodayTotal(), l.WeekTotal())
		}
	}
}

func TestWindowTotal_MatchesTodayAndWeek(t *testing.T) {
	l := newLedger(t, 2000)
	for i := -2; i < 12; i++ {
		l.Append(entryDaysAgo(t, int64(10+i), i))
	}
	if !l.WindowTotal(1).Equal(l.TodayTotal()) {
		t.Fatalf("WindowTotal(1) = %s, TodayTotal = %s", l.WindowTotal(1), l.TodayTotal())
	}
	if !l.WindowTotal(WeekDays).Equal(l.WeekTotal()) {
		t.Fatalf("WindowTotal(7) = %s, WeekTotal = %s", l.WindowTotal(WeekDays), l.WeekTotal())
	}
	if !l.WindowTotal(0).IsZero() {
		t.Fatalf("WindowTotal(0) = %s, want 0", l.WindowTotal(0))
	}
}

func TestDaily(t *testing.T) {
	l := newLedger(t, 2000)
	l.Append(entryDaysAgo(t, 500, 0))
	l.Append(entryDaysAgo(t, 250, 0))
	l.Append(entryDaysAgo(t, 1000, 6))
	l.Append(entryDaysAgo(t, 400, 7))
	l.Append(entryDaysAgo(t, 90, -1))

	days := l.Daily(WeekDays)
	if len(days) != WeekDays {
		t.Fatalf("len(Daily) = %d, want %d", len(days), WeekDays)
	}

	today := clock.Date(testNow)
	for i, d := range days {
		want := today.AddDate(0, 0, -i)
		if !d.Date.Equal(want) {
			t.Fatalf("day %d Date = %s, want %s", i, d.Date, want)
		}
	}
	if !days[0].Total.Equal(dec(750)) || days[0].Entries != 2 {
		t.Fatalf("today = %s (%d entries), want 750 (2)", days[0].Total, days[0].Entries)
	}
	if !days[6].Total.Equal(dec(1000)) || days[6].Entries != 1 {
		t.Fatalf("6 days ago = %s (%d entries), want 1000 (1)", days[6].Total, days[6].Entries)
	}
	for i := 1; i < 6; i++ {
		if !days[i].Total.IsZero() || days[i].Entries != 0 {
			t.Fatalf("day %d = %s (%d entries), want empty", i, days[i].Total, days[i].Entries)
		}
	}

	sum := decimal.Zero
	for _, d := range days {
		sum = sum.Add(d.Total)
	}
	if !sum.Equal(l.WeekTotal()) {
		t.Fatalf("sum of Daily = %s, WeekTotal = %s", sum, l.WeekTotal())
	}

	if l.Daily(0) != nil {
		t.Fatal("Daily(0) should be nil")
	}
}
