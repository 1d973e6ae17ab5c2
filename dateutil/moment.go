package dateutil

import (
	"fmt"
	"strings"
)

// MomentOptions selects the units Moment may use. Zero values mean
// Second and Day.
type MomentOptions struct {
	MinUnit Unit
	MaxUnit Unit

	// Full lists every unit from the largest nonzero one down to the
	// smallest nonzero one, zeros included, instead of two clauses.
	Full bool
}

var momentUnits = []struct {
	unit    Unit
	seconds int64
	name    string
}{
	{Day, 86400, "day"},
	{Hour, 3600, "hour"},
	{Minute, 60, "minute"},
	{Second, 1, "second"},
}

// momentRank orders the moment units from Second (0) to Day (3).
func momentRank(u Unit) (int, error) {
	for i, mu := range momentUnits {
		if mu.unit == u {
			return len(momentUnits) - 1 - i, nil
		}
	}
	return 0, fmt.Errorf("%w %q for moment", ErrUnknownUnit, u)
}

// Moment describes a duration in seconds, such as "1 day 1 hour". Units
// above MaxUnit are folded into MaxUnit and units below MinUnit are
// dropped. The description names the largest nonzero unit and the next
// nonzero unit below it. It is empty when nothing remains.
func Moment(seconds int64, opts MomentOptions) (string, error) {
	if opts.MinUnit == "" {
		opts.MinUnit = Second
	}
	if opts.MaxUnit == "" {
		opts.MaxUnit = Day
	}
	minRank, err := momentRank(opts.MinUnit)
	if err != nil {
		return "", err
	}
	maxRank, err := momentRank(opts.MaxUnit)
	if err != nil {
		return "", err
	}
	if seconds <= 0 {
		return "", nil
	}
	values := make([]int64, len(momentUnits))
	rest := seconds
	for i, mu := range momentUnits {
		rank := len(momentUnits) - 1 - i
		if rank > maxRank || rank < minRank {
			continue
		}
		values[i] = rest / mu.seconds
		rest %= mu.seconds
	}

	first := -1
	for i, v := range values {
		if v > 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return "", nil
	}
	last := first
	for i := len(values) - 1; i > first; i-- {
		if values[i] > 0 {
			last = i
			break
		}
	}

	clauses := []string{describeMoment(first, values[first])}
	if opts.Full {
		for i := first + 1; i <= last; i++ {
			clauses = append(clauses, describeMoment(i, values[i]))
		}
	} else {
		for i := first + 1; i <= last; i++ {
			if values[i] > 0 {
				clauses = append(clauses, describeMoment(i, values[i]))
				break
			}
		}
	}
	return strings.Join(clauses, " "), nil
}

func describeMoment(idx int, v int64) string {
	name := momentUnits[idx].name
	if v > 1 {
		name += "s"
	}
	return fmt.Sprintf("%d %s", v, name)
}
