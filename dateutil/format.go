package dateutil

import (
	"strings"
	"time"
)

// calendar holds the fields of one time read in one representation.
type calendar struct {
	year        int
	month       int // 1-12
	day         int
	hour        int
	minute      int
	second      int
	millisecond int
	weekday     int // 0 is Sunday
	yearDay     int // 1-based
	offset      int // minutes behind UTC
}

func newCalendar(t time.Time) *calendar {
	_, offset := t.Zone()
	return &calendar{
		year:        t.Year(),
		month:       int(t.Month()),
		day:         t.Day(),
		hour:        t.Hour(),
		minute:      t.Minute(),
		second:      t.Second(),
		millisecond: t.Nanosecond() / int(time.Millisecond),
		weekday:     int(t.Weekday()),
		yearDay:     dayOfYear(t) + 1,
		offset:      -offset / 60,
	}
}

// Format renders v with pattern, or with DefaultPattern when pattern is
// empty. Fields are read in UTC when the pattern contains a Z, quoted or
// not, and in the engine location otherwise.
func (e *Engine) Format(v Value, pattern string) (string, error) {
	t, err := e.Parse(v)
	if err != nil {
		return "", err
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	tokens, err := scanPattern([]rune(pattern), formatMode)
	if err != nil {
		return "", err
	}
	if hasUTCMarker(tokens) {
		t = t.UTC()
	} else {
		t = t.In(e.loc)
	}
	c := newCalendar(t)
	var ret []rune
	for _, tok := range tokens {
		ret = append(ret, tok.rule.format(c, tok.run)...)
	}
	return string(ret), nil
}

func hasUTCMarker(tokens []token) bool {
	for _, tok := range tokens {
		switch tok.kind() {
		case tokenLiteral, tokenQuoted:
			if strings.ContainsRune(string(tok.run), 'Z') {
				return true
			}
		}
	}
	return false
}

func formatNumber(v int, run []rune) []rune {
	return []rune(padNumber(v, len(run), 0, false))
}

func formatName(v int, run []rune, short, long []string) []rune {
	switch {
	case len(run) < 3:
		return formatNumber(v, run)
	case len(run) == 3:
		return []rune(short[v])
	}
	return []rune(long[v])
}

func formatYear(c *calendar, run []rune) []rune {
	return []rune(padNumber(c.year, len(run), len(run), false))
}

func formatMonth(c *calendar, run []rune) []rune {
	if len(run) < 3 {
		return formatNumber(c.month, run)
	}
	return formatName(c.month-1, run, shortMonths, months)
}

func formatDate(c *calendar, run []rune) []rune {
	return formatNumber(c.day, run)
}

func formatDayOfYear(c *calendar, run []rune) []rune {
	return formatNumber(c.yearDay, run)
}

func formatHour12(c *calendar, run []rune) []rune {
	h := c.hour % 12
	if h == 0 {
		h = 12
	}
	return formatNumber(h, run)
}

func formatHour24(c *calendar, run []rune) []rune {
	return formatNumber(c.hour, run)
}

func formatMinute(c *calendar, run []rune) []rune {
	return formatNumber(c.minute, run)
}

func formatSecond(c *calendar, run []rune) []rune {
	return formatNumber(c.second, run)
}

func formatQuarter(c *calendar, run []rune) []rune {
	return formatNumber((c.month+2)/3, run)
}

// formatMillisecond treats the run as fraction digits: 45ms is "045" at
// width 3 and "0" at width 1.
func formatMillisecond(c *calendar, run []rune) []rune {
	width := len(run)
	if width < 3 {
		width = 3
	}
	return []rune(padNumber(c.millisecond, width, len(run), true))
}

func formatWeekday(c *calendar, run []rune) []rune {
	return formatName(c.weekday, run, shortWeekdays, weekdays)
}

func formatMeridiem(c *calendar, run []rune) []rune {
	meridiem := "am"
	if c.hour >= 12 {
		meridiem = "pm"
	}
	if run[0] == 'A' {
		meridiem = strings.ToUpper(meridiem)
	}
	return []rune(meridiem)
}

// formatOffset writes the offset as [-+]H, [-+]HH, [-+]HHMM or [-+]HH:MM
// by run length. The sign follows the minutes-behind-UTC value: "-" when
// it is zero or positive.
func formatOffset(c *calendar, run []rune) []rune {
	sign := "-"
	offset := c.offset
	if offset < 0 {
		sign = "+"
		offset = -offset
	}
	hours, minutes := offset/60, offset%60
	var b strings.Builder
	b.WriteString(sign)
	if len(run) < 2 {
		b.WriteString(padNumber(hours, 1, 0, false))
	} else {
		b.WriteString(padNumber(hours, 2, 0, false))
	}
	switch {
	case len(run) == 3:
		b.WriteString(padNumber(minutes, 2, 0, false))
	case len(run) > 3:
		b.WriteString(":")
		b.WriteString(padNumber(minutes, 2, 0, false))
	}
	return []rune(b.String())
}

func formatLiteral(_ *calendar, run []rune) []rune {
	return run
}
