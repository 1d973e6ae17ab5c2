package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/goccy/datefmt/dateutil"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestDateTimeJSON(t *testing.T) {
	for _, test := range []struct {
		name     string
		body     string
		expected dateutil.Value
	}{
		{name: "text", body: `{"input":"2024-03-05"}`, expected: dateutil.TextValue("2024-03-05")},
		{name: "millis", body: `{"input":1709601630000}`, expected: dateutil.MillisValue(1709601630000)},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			var req FormatRequest
			if err := json.Unmarshal([]byte(test.body), &req); err != nil {
				t.Fatal(err)
			}
			if got := req.Input.Value(); got != test.expected {
				t.Fatalf("expected %s but got %s", test.expected, got)
			}
			b, err := json.Marshal(req.Input)
			if err != nil {
				t.Fatal(err)
			}
			var body map[string]json.RawMessage
			if err := json.Unmarshal([]byte(test.body), &body); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(body["input"]), string(b)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDateTimeJSONInvalid(t *testing.T) {
	var req FormatRequest
	if err := json.Unmarshal([]byte(`{"input":true}`), &req); err == nil {
		t.Fatal("expected error")
	}
}

func TestRequestValidation(t *testing.T) {
	validate := NewValidator()
	for _, test := range []struct {
		name  string
		req   interface{}
		valid bool
	}{
		{name: "format", req: &FormatRequest{Input: NewTextDateTime("2024-03-05")}, valid: true},
		{name: "format without input", req: &FormatRequest{Pattern: "yyyy"}},
		{name: "add", req: &AddRequest{Input: NewMillisDateTime(0), Unit: "ms"}, valid: true},
		{name: "add with default unit", req: &AddRequest{Input: NewMillisDateTime(0)}, valid: true},
		{name: "add with unknown unit", req: &AddRequest{Input: NewMillisDateTime(0), Unit: "w"}},
		{name: "distance without to", req: &DistanceRequest{From: NewMillisDateTime(0)}},
		{name: "moment", req: &MomentRequest{Seconds: 10, MinUnit: "m", MaxUnit: "h"}, valid: true},
		{name: "moment with milliseconds", req: &MomentRequest{Seconds: 10, MinUnit: "ms"}},
		{name: "config", req: &Config{Location: "Asia/Tokyo", FixedNow: "2024-03-05T10:20:30+09:00"}, valid: true},
		{name: "config with unknown location", req: &Config{Location: "Mars/Olympus"}},
		{name: "config with invalid fixed now", req: &Config{FixedNow: "yesterday"}},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			err := validate.Struct(test.req)
			if test.valid && err != nil {
				t.Fatalf("expected valid but got %v", err)
			}
			if !test.valid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestConfig(t *testing.T) {
	cfg := NewConfig()
	if cfg.DefaultPattern != dateutil.DefaultPattern {
		t.Fatalf("unexpected default pattern %s", cfg.DefaultPattern)
	}
	loc, err := cfg.LoadLocation()
	if err != nil {
		t.Fatal(err)
	}
	if loc != time.Local {
		t.Fatalf("expected local location but got %s", loc)
	}
	cfg.FixedNow = "2024-03-05T10:20:30+09:00"
	clock, err := cfg.Clock()
	if err != nil {
		t.Fatal(err)
	}
	expected := time.Date(2024, 3, 5, 1, 20, 30, 0, time.UTC)
	if got := clock.Now(); !got.Equal(expected) {
		t.Fatalf("expected %s but got %s", expected, got)
	}
	cfg.Location = "Mars/Olympus"
	if _, err := cfg.LoadLocation(); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewTimestampResponse(t *testing.T) {
	res := NewTimestampResponse(time.Date(2024, 3, 5, 1, 20, 30, 0, time.UTC))
	if *res.Timestamp != "2024-03-05T01:20:30Z" {
		t.Fatalf("unexpected timestamp %s", *res.Timestamp)
	}
	if *res.UnixMillis != 1709601630000 {
		t.Fatalf("unexpected millis %d", *res.UnixMillis)
	}
}
