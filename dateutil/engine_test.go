package dateutil

import (
	"testing"
	"time"

	_ "time/tzdata"
)

var jst = time.FixedZone("JST", 9*60*60)

// testNow is the wall clock every test engine reads.
var testNow = time.Date(2024, 3, 5, 10, 20, 30, 0, jst)

func newTestEngine(opts ...Option) *Engine {
	return New(append([]Option{
		WithClock(FixedClock(testNow)),
		WithLocation(jst),
	}, opts...)...)
}

func loadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("failed to load location %s: %v", name, err)
	}
	return loc
}

func TestNow(t *testing.T) {
	e := newTestEngine()
	got := e.Now()
	if !got.Equal(testNow) {
		t.Fatalf("expected %s but got %s", testNow, got)
	}
	if got.Location() != jst {
		t.Fatalf("expected location %s but got %s", jst, got.Location())
	}
}

func TestNewDefaults(t *testing.T) {
	e := New(WithClock(nil), WithLocation(nil), WithLogger(nil))
	if e.Location() != time.Local {
		t.Fatalf("expected local location but got %s", e.Location())
	}
	if _, ok := e.clock.(SystemClock); !ok {
		t.Fatalf("expected system clock but got %T", e.clock)
	}
	if e.logger == nil {
		t.Fatal("expected nop logger")
	}
}
