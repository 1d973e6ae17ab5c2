package dateutil

import (
	"fmt"
	"time"
)

// Unit is a calendar unit accepted by Add, Distance and Moment.
type Unit string

const (
	Year        Unit = "y"
	Month       Unit = "M"
	Day         Unit = "d"
	Hour        Unit = "h"
	Minute      Unit = "m"
	Second      Unit = "s"
	Millisecond Unit = "ms"
)

var units = []Unit{Year, Month, Day, Hour, Minute, Second, Millisecond}

// ParseUnit validates s as one of y, M, d, h, m, s and ms.
func ParseUnit(s string) (Unit, error) {
	for _, u := range units {
		if string(u) == s {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownUnit, s)
}

func (u Unit) String() string {
	return string(u)
}

// duration reports the fixed length of u. Year and Month have none.
func (u Unit) duration() (time.Duration, bool) {
	switch u {
	case Day:
		return 24 * time.Hour, true
	case Hour:
		return time.Hour, true
	case Minute:
		return time.Minute, true
	case Second:
		return time.Second, true
	case Millisecond:
		return time.Millisecond, true
	}
	return 0, false
}
