package dateutil

import (
	"errors"
	"math"
	"testing"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestValueOf(t *testing.T) {
	e := newTestEngine()
	ts := time.Date(2024, 3, 5, 10, 20, 30, 0, jst)
	for _, test := range []struct {
		name  string
		input any
	}{
		{name: "time", input: ts},
		{name: "time pointer", input: &ts},
		{name: "protobuf timestamp", input: timestamppb.New(ts)},
		{name: "int", input: int(ts.UnixMilli())},
		{name: "int64", input: ts.UnixMilli()},
		{name: "uint64", input: uint64(ts.UnixMilli())},
		{name: "float64", input: float64(ts.UnixMilli())},
		{name: "string", input: "2024-03-05 10:20:30"},
		{name: "value", input: TextValue("2024-03-05 10:20:30")},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			v, err := ValueOf(test.input)
			if err != nil {
				t.Fatal(err)
			}
			got, err := e.Parse(v)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(ts) {
				t.Fatalf("expected %s but got %s", ts, got)
			}
		})
	}
}

func TestValueOfUnsupported(t *testing.T) {
	var nilTime *time.Time
	for _, input := range []any{nil, nilTime, []byte("2024"), math.NaN(), math.Inf(1), uint64(math.MaxUint64), (*timestamppb.Timestamp)(nil)} {
		if _, err := ValueOf(input); !errors.Is(err, ErrNoValue) {
			t.Fatalf("%#v: expected ErrNoValue but got %v", input, err)
		}
	}
}

func TestValueString(t *testing.T) {
	for _, test := range []struct {
		v        Value
		expected string
	}{
		{Value{}, "<none>"},
		{MillisValue(42), "42"},
		{TextValue("abc"), "abc"},
		{TimeValue(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)), "2024-03-05T00:00:00Z"},
	} {
		if got := test.v.String(); got != test.expected {
			t.Fatalf("expected %q but got %q", test.expected, got)
		}
		if test.v.IsZero() != (test.expected == "<none>") {
			t.Fatalf("unexpected IsZero for %q", test.expected)
		}
	}
}
