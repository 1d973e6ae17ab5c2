package dateutil

import (
	"fmt"
	"time"
)

type field struct {
	value int
	set   bool
}

func (f *field) store(v int) {
	f.value, f.set = v, true
}

func (f field) or(def int) int {
	if f.set {
		return f.value
	}
	return def
}

// fields collects what a parse matched before it is assembled into a time.
type fields struct {
	year        field
	month       field // 1-12
	date        field
	hour        field
	hour12      field
	minute      field
	second      field
	millisecond field
	offset      field  // minutes behind UTC
	meridiem    string // "am", "pm" or empty
	utc         bool
}

func (f *fields) empty() bool {
	for _, v := range []field{
		f.year, f.month, f.date,
		f.hour, f.hour12,
		f.minute, f.second, f.millisecond,
		f.offset,
	} {
		if v.set {
			return false
		}
	}
	return f.meridiem == ""
}

// resolveHour prefers a 24-hour field and otherwise converts a 12-hour
// field with the meridiem, which defaults to am.
func (f *fields) resolveHour() (int, error) {
	if f.hour.set {
		return f.hour.value, nil
	}
	if !f.hour12.set {
		return 0, nil
	}
	h := f.hour12.value
	if h < 1 || h > 12 {
		return 0, fmt.Errorf("12-hour value [%d] is out of range", h)
	}
	pm := f.meridiem == "pm"
	switch {
	case h == 12 && pm:
		return 12, nil
	case h == 12:
		return 0, nil
	case pm:
		return h + 12, nil
	}
	return h, nil
}

// assemble builds the instant. Year, month and day default to now read in
// UTC when a Z marker was matched and in loc otherwise.
func (f *fields) assemble(now time.Time, loc *time.Location) (time.Time, error) {
	if f.utc {
		now = now.UTC()
	} else {
		now = now.In(loc)
	}
	hour, err := f.resolveHour()
	if err != nil {
		return time.Time{}, err
	}
	var (
		year  = f.year.or(now.Year())
		month = time.Month(f.month.or(int(now.Month())))
		day   = f.date.or(now.Day())
		min   = f.minute.or(0)
		sec   = f.second.or(0)
		nsec  = f.millisecond.or(0) * int(time.Millisecond)
	)
	switch {
	case f.utc:
		return time.Date(year, month, day, hour, min, sec, nsec, time.UTC), nil
	case f.offset.set:
		t := time.Date(year, month, day, hour, min, sec, nsec, time.UTC)
		return t.Add(time.Duration(f.offset.value) * time.Minute).In(loc), nil
	}
	return time.Date(year, month, day, hour, min, sec, nsec, loc), nil
}
