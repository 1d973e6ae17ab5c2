package dateutil

import (
	"testing"
	"time"
)

func TestDaysOfMonth(t *testing.T) {
	e := newTestEngine()
	for _, test := range []struct {
		date     time.Time
		expected int
	}{
		{time.Date(2024, 2, 10, 0, 0, 0, 0, jst), 29},
		{time.Date(2023, 2, 28, 23, 59, 0, 0, jst), 28},
		{time.Date(1900, 2, 1, 0, 0, 0, 0, jst), 28},
		{time.Date(2000, 2, 1, 0, 0, 0, 0, jst), 29},
		{time.Date(2024, 4, 30, 0, 0, 0, 0, jst), 30},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, jst), 31},
	} {
		if got := e.DaysOfMonth(test.date); got != test.expected {
			t.Fatalf("%s: expected %d but got %d", test.date, test.expected, got)
		}
	}
}

func TestDaysOfMonthReadsEngineLocation(t *testing.T) {
	e := newTestEngine()
	// 2024-02-29T20:00Z is already March 1 in JST.
	if got := e.DaysOfMonth(time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC)); got != 31 {
		t.Fatalf("expected 31 but got %d", got)
	}
}

func TestDayOfYear(t *testing.T) {
	e := newTestEngine()
	for _, test := range []struct {
		date     time.Time
		expected int
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, jst), 0},
		{time.Date(2024, 1, 1, 23, 59, 59, 0, jst), 0},
		{time.Date(2024, 3, 5, 10, 0, 0, 0, jst), 64},
		{time.Date(2023, 3, 5, 10, 0, 0, 0, jst), 63},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, jst), 365},
	} {
		if got := e.DayOfYear(test.date); got != test.expected {
			t.Fatalf("%s: expected %d but got %d", test.date, test.expected, got)
		}
	}
}

func TestCalendarAcrossDST(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	e := newTestEngine(WithLocation(ny))
	if got := e.DaysOfMonth(time.Date(2024, 3, 20, 0, 0, 0, 0, ny)); got != 31 {
		t.Fatalf("expected 31 days in March but got %d", got)
	}
	if got := e.DaysOfMonth(time.Date(2024, 11, 20, 0, 0, 0, 0, ny)); got != 30 {
		t.Fatalf("expected 30 days in November but got %d", got)
	}
	if got := e.DayOfYear(time.Date(2024, 3, 15, 0, 30, 0, 0, ny)); got != 74 {
		t.Fatalf("expected day 74 but got %d", got)
	}
}
