package dateutil

import "time"

// Clock supplies the wall-clock reading used by Now and by parses that
// leave the date unspecified.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts an ordinary function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
