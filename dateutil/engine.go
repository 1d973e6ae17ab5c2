// Package dateutil converts between timestamps and text with a small
// pattern language and does calendar arithmetic on the results.
//
// A pattern is a sequence of token runs and literal text. A run is a
// maximal repetition of one token character and its length selects
// padding width or name length:
//
//	y year           M month        d day of month    D day of year
//	h 12-hour        H 24-hour      m minute          s second
//	S millisecond    E weekday      q quarter         a/A am or pm
//	z offset         Z UTC marker   '...' or "..." quoted text
//
// The same pattern drives Format and ParseFormat.
package dateutil

import (
	"time"

	"go.uber.org/zap"
)

// DefaultPattern is the ISO 8601 layout with a numeric offset.
const DefaultPattern = "yyyy-MM-ddTHH:mm:sszzz"

// Engine formats, parses and computes with timestamps read in one
// location against one clock. It is safe for concurrent use.
type Engine struct {
	clock             Clock
	loc               *time.Location
	logger            *zap.Logger
	legacyOffsetBound bool
}

type Option func(*Engine)

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLocation sets the location that local fields are read and built in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLegacyOffsetBound disables the ±11 hour limit on parsed z offsets.
func WithLegacyOffsetBound(enabled bool) Option {
	return func(e *Engine) {
		e.legacyOffsetBound = enabled
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  SystemClock{},
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now reads the engine clock in the engine location.
func (e *Engine) Now() time.Time {
	return e.clock.Now().In(e.loc)
}

var defaultEngine = New()

func Now() time.Time {
	return defaultEngine.Now()
}

func Parse(v Value) (time.Time, error) {
	return defaultEngine.Parse(v)
}

func ParseFormat(v Value, pattern string) (time.Time, error) {
	return defaultEngine.ParseFormat(v, pattern)
}

func Format(v Value, pattern string) (string, error) {
	return defaultEngine.Format(v, pattern)
}

func Add(v Value, amount int64, unit Unit) (time.Time, error) {
	return defaultEngine.Add(v, amount, unit)
}

func Distance(a, b Value, unit Unit) (int64, error) {
	return defaultEngine.Distance(a, b, unit)
}

func DayOfYear(t time.Time) int {
	return defaultEngine.DayOfYear(t)
}

func DaysOfMonth(t time.Time) int {
	return defaultEngine.DaysOfMonth(t)
}
