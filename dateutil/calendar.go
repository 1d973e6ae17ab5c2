package dateutil

import "time"

// DayOfYear returns the number of days from January 1 to t in the engine
// location, so January 1 is 0.
func (e *Engine) DayOfYear(t time.Time) int {
	return dayOfYear(t.In(e.loc))
}

// DaysOfMonth returns the length of the month of t in the engine location.
func (e *Engine) DaysOfMonth(t time.Time) int {
	return daysOfMonth(t.In(e.loc))
}

// dayOfYear and daysOfMonth compare wall-clock dates so that a daylight
// saving shift inside the range does not lose a day.
func dayOfYear(t time.Time) int {
	return daysBetween(civilDate(t.Year(), time.January, 1), civilDate(t.Year(), t.Month(), t.Day()))
}

func daysOfMonth(t time.Time) int {
	first := civilDate(t.Year(), t.Month(), 1)
	return daysBetween(first, first.AddDate(0, 1, 0))
}

func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	n, _ := distanceMillis(to.UnixMilli()-from.UnixMilli(), Day)
	return int(n)
}
