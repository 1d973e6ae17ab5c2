package dateutil

import (
	"fmt"
	"time"
)

// Add moves v by amount units. Years and months keep the wall-clock time
// and clamp the day to the end of the target month; the other units add a
// fixed number of milliseconds.
//
// An empty unit means Day. The zero time.Time stands for an invalid instant
// and is returned unchanged.
func (e *Engine) Add(v Value, amount int64, unit Unit) (time.Time, error) {
	if v.kind == kindTime && v.time.IsZero() {
		return v.time, nil
	}
	t, err := e.Parse(v)
	if err != nil {
		return time.Time{}, err
	}
	if unit == "" {
		unit = Day
	}
	switch unit {
	case Year:
		return e.addMonths(t, amount*12), nil
	case Month:
		return e.addMonths(t, amount), nil
	}
	d, ok := unit.duration()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %w %q", ErrNoValue, ErrUnknownUnit, unit)
	}
	return addMillis(t, amount, d.Milliseconds())
}

// addMillis moves t by amount steps of step milliseconds without going
// through time.Duration, which only spans about 292 years.
func addMillis(t time.Time, amount, step int64) (time.Time, error) {
	delta := amount * step
	if amount != 0 && delta/amount != step {
		return time.Time{}, fmt.Errorf("%w: %d units of %dms overflow", ErrNoValue, amount, step)
	}
	ms := t.UnixMilli()
	sum := ms + delta
	if (delta > 0 && sum < ms) || (delta < 0 && sum > ms) {
		return time.Time{}, fmt.Errorf("%w: %d units of %dms overflow", ErrNoValue, amount, step)
	}
	sub := time.Duration(t.Nanosecond() % int(time.Millisecond))
	return time.UnixMilli(sum).Add(sub).In(t.Location()), nil
}

func (e *Engine) addMonths(t time.Time, months int64) time.Time {
	t = t.In(e.loc)
	total := int64(t.Year())*12 + int64(t.Month()-1) + months
	year := floorDiv(total, 12)
	month := time.Month(total-year*12) + 1
	day := t.Day()
	if last := daysOfMonth(time.Date(int(year), month, 1, 0, 0, 0, 0, e.loc)); day > last {
		day = last
	}
	return time.Date(int(year), month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), e.loc)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Distance returns b - a in whole units, rounding toward zero. An empty
// unit means Day.
func (e *Engine) Distance(a, b Value, unit Unit) (int64, error) {
	if unit == "" {
		unit = Day
	}
	from, err := e.Parse(a)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNaN, err)
	}
	to, err := e.Parse(b)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNaN, err)
	}
	n, ok := distanceMillis(to.UnixMilli()-from.UnixMilli(), unit)
	if !ok {
		return 0, fmt.Errorf("%w: %w %q", ErrNaN, ErrUnknownUnit, unit)
	}
	return n, nil
}

func distanceMillis(diff int64, unit Unit) (int64, bool) {
	d, ok := unit.duration()
	if !ok {
		return 0, false
	}
	sign := int64(1)
	if diff < 0 {
		sign, diff = -1, -diff
	}
	return diff / d.Milliseconds() * sign, true
}
