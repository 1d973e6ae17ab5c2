package dateutil

import (
	"strconv"
	"strings"
)

// padNumber renders v with at least min digits, prefixing zeros as needed.
// If max is positive and the digits are longer than max, they are cut to
// max keeping the leftmost digits when alignLeft is set and the rightmost
// digits otherwise. A negative v keeps its sign in front of the digits.
func padNumber(v, min, max int, alignLeft bool) string {
	negative := v < 0
	if negative {
		v = -v
	}
	digits := strconv.Itoa(v)
	if n := min - len(digits); n > 0 {
		digits = strings.Repeat("0", n) + digits
	}
	if max > 0 && len(digits) > max {
		if alignLeft {
			digits = digits[:max]
		} else {
			digits = digits[len(digits)-max:]
		}
	}
	if negative {
		return "-" + digits
	}
	return digits
}
