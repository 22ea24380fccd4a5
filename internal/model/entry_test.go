package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/clock"
)

var testNow = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

func TestNewEntry_DefaultsToToday(t *testing.T) {
	calls := 0
	clk := clock.Func(func() time.Time {
		calls++
		return testNow
	})

	e, err := NewEntry(decimal.NewFromInt(500), "lunch", "", clk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	if !e.OccurredOn().Equal(want) {
		t.Fatalf("OccurredOn = %s, want %s", e.OccurredOn(), want)
	}
	if calls != 1 {
		t.Fatalf("clock read %d times, want 1", calls)
	}
	if e.Note() != "lunch" {
		t.Fatalf("Note = %q, want lunch", e.Note())
	}
	if !e.Amount().Equal(decimal.NewFromInt(500)) {
		t.Fatalf("Amount = %s, want 500", e.Amount())
	}
	if e.ID().String() == "" {
		t.Fatal("ID is empty")
	}
}

func TestNewEntry_ParsesDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"08.11.2019", time.Date(2019, 11, 8, 0, 0, 0, 0, time.UTC)},
		{"1.2.2024", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"29.02.2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{" 12.10.2026 ", time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		e, err := NewEntry(decimal.NewFromInt(1), "", tc.in, clock.Fixed(testNow))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if !e.OccurredOn().Equal(tc.want) {
			t.Fatalf("%q: OccurredOn = %s, want %s", tc.in, e.OccurredOn(), tc.want)
		}
	}
}

func TestNewEntry_RejectsMalformedDate(t *testing.T) {
	bad := []string{
		"31.02.2024",
		"29.02.2023",
		"2024-02-01",
		"01/02/2024",
		"1.2.24",
		"yesterday",
		"32.01.2024",
		"01.13.2024",
	}
	for _, in := range bad {
		_, err := NewEntry(decimal.NewFromInt(1), "", in, clock.Fixed(testNow))
		if err == nil {
			t.Fatalf("%q: expected error", in)
		}
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%q: error %v does not match ErrMalformedInput", in, err)
		}
		var mie *MalformedInputError
		if !errors.As(err, &mie) {
			t.Fatalf("%q: error %T is not *MalformedInputError", in, err)
		}
		if mie.Input != in {
			t.Fatalf("Input = %q, want %q", mie.Input, in)
		}
		if mie.Expected != DateFormatHint {
			t.Fatalf("Expected = %q, want %q", mie.Expected, DateFormatHint)
		}
	}
}

func TestNewEntry_AcceptsAnyAmount(t *testing.T) {
	for _, amt := range []int64{0, -250, 1_000_000} {
		e, err := NewEntry(decimal.NewFromInt(amt), "", "", clock.Fixed(testNow))
		if err != nil {
			t.Fatalf("amount %d: unexpected error: %v", amt, err)
		}
		if !e.Amount().Equal(decimal.NewFromInt(amt)) {
			t.Fatalf("Amount = %s, want %d", e.Amount(), amt)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"500", "500", true},
		{"12.5", "12.5", true},
		{"12,75", "12.75", true},
		{"-30", "-30", true},
		{" 0 ", "0", true},
		{"", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"0,5", "0.5", true},
		{"-120,50", "-120.5", true},
		{"1e20", "100000000000000000000", true},
		{"1,500", "", false},
		{"2,000", "", false},
		{"-1,000", "", false},
		{"1,234.50", "", false},
		{"1,234,567", "", false},
		{"12.5,0", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", tc.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q: got %s, want %s", tc.in, got, tc.out)
			}
			continue
		}
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%q: expected ErrMalformedInput, got %v", tc.in, err)
		}
	}
}
