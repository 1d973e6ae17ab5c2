package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	e := newTestEngine()
	// Tuesday, day 65 of the year.
	ts := time.Date(2024, 3, 5, 14, 7, 9, 45*int(time.Millisecond), jst)
	for _, test := range []struct {
		name     string
		pattern  string
		expected string
	}{
		{name: "date", pattern: "yyyy-MM-dd", expected: "2024-03-05"},
		{name: "short month name", pattern: "MMM dd, yyyy", expected: "Mar 05, 2024"},
		{name: "long month name", pattern: "MMMM d, yy", expected: "March 5, 24"},
		{name: "default", pattern: DefaultPattern, expected: "2024-03-05T14:07:09+0900"},
		{name: "12-hour lowercase", pattern: "hh:mm a", expected: "02:07 pm"},
		{name: "12-hour uppercase", pattern: "h A", expected: "2 PM"},
		{name: "meridiem per character", pattern: "aa", expected: "pmpm"},
		{name: "weekday", pattern: "EEE EEEE E", expected: "Tue Tuesday 2"},
		{name: "quarter", pattern: "q/qq", expected: "1/01"},
		{name: "day of year", pattern: "D DDD", expected: "65 065"},
		{name: "millisecond", pattern: "S SS SSS SSSS", expected: "0 04 045 0045"},
		{name: "offset", pattern: "z zz zzz zzzz", expected: "+9 +09 +0900 +09:00"},
		{name: "utc", pattern: "yyyy-MM-ddTHH:mm:ss.SSSZ", expected: "2024-03-05T05:07:09.045Z"},
		{name: "utc offset", pattern: "HH zzzz Z", expected: "05 -00:00 Z"},
		{name: "quoted", pattern: "yyyy 'year' MM", expected: "2024 year 03"},
		{name: "quoted Z reads utc", pattern: "yyyy-MM-dd'T'HH:mm:ss'Z'", expected: "2024-03-05T05:07:09Z"},
		{name: "double quoted Z reads utc", pattern: `HH"Z"`, expected: "05Z"},
		{name: "unterminated quote", pattern: "yyyy 'y", expected: "2024 '4"},
		{name: "untouched text", pattern: "[yyyy] #", expected: "[2024] #"},
		{name: "empty pattern uses default", pattern: "", expected: "2024-03-05T14:07:09+0900"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, err := e.Format(TimeValue(ts), test.pattern)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Fatalf("expected %q but got %q", test.expected, got)
			}
		})
	}
}

func TestFormatHour12(t *testing.T) {
	e := newTestEngine()
	for _, test := range []struct {
		hour     int
		expected string
	}{
		{hour: 0, expected: "12 am"},
		{hour: 1, expected: "1 am"},
		{hour: 11, expected: "11 am"},
		{hour: 12, expected: "12 pm"},
		{hour: 13, expected: "1 pm"},
		{hour: 23, expected: "11 pm"},
	} {
		ts := time.Date(2024, 3, 5, test.hour, 0, 0, 0, jst)
		got, err := e.Format(TimeValue(ts), "h a")
		if err != nil {
			t.Fatal(err)
		}
		if got != test.expected {
			t.Fatalf("hour %d: expected %q but got %q", test.hour, test.expected, got)
		}
	}
}

func TestFormatOffsetSign(t *testing.T) {
	ts := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, test := range []struct {
		name     string
		loc      *time.Location
		expected string
	}{
		{name: "utc", loc: time.UTC, expected: "-00:00"},
		{name: "half hour ahead", loc: time.FixedZone("IST", 5*60*60+30*60), expected: "+05:30"},
		{name: "half hour behind", loc: time.FixedZone("NST", -(3*60*60 + 30*60)), expected: "-03:30"},
		{name: "behind", loc: time.FixedZone("EST", -5*60*60), expected: "-05:00"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			e := newTestEngine(WithLocation(test.loc))
			got, err := e.Format(TimeValue(ts), "zzzz")
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Fatalf("expected %q but got %q", test.expected, got)
			}
		})
	}
}

func TestFormatInputs(t *testing.T) {
	e := newTestEngine()
	for _, test := range []struct {
		name     string
		input    Value
		pattern  string
		expected string
	}{
		{name: "millis", input: MillisValue(0), pattern: "yyyy-MM-dd HH:mm:ssZ", expected: "1970-01-01 00:00:00Z"},
		{name: "millis local", input: MillisValue(0), pattern: "yyyy-MM-dd HH:mm", expected: "1970-01-01 09:00"},
		{name: "text", input: TextValue("2024-03-05"), pattern: "dd/MM/yyyy", expected: "05/03/2024"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, err := e.Format(test.input, test.pattern)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Fatalf("expected %q but got %q", test.expected, got)
			}
		})
	}
}

func TestFormatNoValue(t *testing.T) {
	e := newTestEngine()
	for _, input := range []Value{{}, TextValue("not a date"), TextValue("")} {
		if _, err := e.Format(input, DefaultPattern); !errors.Is(err, ErrNoValue) {
			t.Fatalf("%s: expected ErrNoValue but got %v", input, err)
		}
	}
}
