package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("Not/AZone")
	want := Location(DefaultTimezone)
	if loc.String() != want.String() {
		t.Fatalf("expected %s, got %s", want, loc)
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.UTC
	ts := time.Date(2024, 12, 2, 15, 30, 0, 0, loc)

	start, end := DayBounds(ts, loc)
	if !start.Equal(time.Date(2024, 12, 2, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start %s", start)
	}
	if !end.Equal(time.Date(2024, 12, 3, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected end %s", end)
	}
}

func TestMonthBoundsDecember(t *testing.T) {
	loc := time.UTC
	start, end := MonthBounds(time.Date(2024, 12, 31, 23, 0, 0, 0, loc), loc)
	if !start.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start %s", start)
	}
	if !end.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected end %s", end)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2024-12-02", "14:00", time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Hour() != 14 || got.Day() != 2 {
		t.Fatalf("unexpected time %s", got)
	}
	if _, err := ParseDateTime("2024-12-02", "25:00", time.UTC); err == nil {
		t.Fatal("expected error for invalid hour")
	}
}
