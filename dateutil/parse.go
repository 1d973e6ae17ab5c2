package dateutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"
)

// autodetectPatterns are tried in order by Parse.
var autodetectPatterns = []string{
	"yyyy-MM-dd HH:mm:ss.SSS",
	"yyyy-MM-ddTHH:mm:sszzz",
	"yyyy-MM-dd",
	"yyyy-MM-dd HH:mm:ss",
	"MMM dd, yyyy HH:mm:ss",
	"MMM dd, yyyy",
	"dd MMM yyyy HH:mm:ss",
	"dd MMM yyyy",
	"HH:mm:ss",
}

const maxOffsetHours = 11

// Parse normalizes v to a time. A time.Time is returned unchanged and
// milliseconds are taken as Unix time. Text is tried against each
// autodetect pattern and then handed to a free-text date parser.
func (e *Engine) Parse(v Value) (time.Time, error) {
	if v.kind != kindText {
		return e.normalize(v)
	}
	if v.text == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrNoValue)
	}
	for _, pattern := range autodetectPatterns {
		t, err := e.parseText(v.text, pattern)
		if err == nil {
			return t, nil
		}
		e.logger.Debug("autodetect pattern mismatch", zap.String("pattern", pattern), zap.Error(err))
	}
	t, err := dateparse.ParseIn(v.text, e.loc)
	if err != nil {
		e.logger.Debug("free-text date parse failed", zap.String("input", v.text), zap.Error(err))
		return time.Time{}, fmt.Errorf("%w: %q is not a recognized date: %s", ErrNoValue, v.text, err)
	}
	return t, nil
}

// ParseFormat is Parse with an explicit pattern in place of autodetection.
func (e *Engine) ParseFormat(v Value, pattern string) (time.Time, error) {
	if v.kind != kindText {
		return e.normalize(v)
	}
	return e.parseText(v.text, pattern)
}

func (e *Engine) normalize(v Value) (time.Time, error) {
	switch v.kind {
	case kindTime:
		return v.time, nil
	case kindMillis:
		return time.UnixMilli(v.millis).In(e.loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: empty input", ErrNoValue)
}

type parseState struct {
	fields
	legacyOffsetBound bool
}

func (e *Engine) parseText(text, pattern string) (time.Time, error) {
	if text == "" || pattern == "" {
		return time.Time{}, fmt.Errorf("%w: empty input or pattern", ErrNoValue)
	}
	parseErr := func(pos int, msg string) error {
		return &ParseError{Pattern: pattern, Input: text, Pos: pos, Msg: msg}
	}
	tokens, err := scanPattern([]rune(pattern), parseMode)
	if err != nil {
		return time.Time{}, parseErr(0, err.Error())
	}
	input := []rune(text)
	state := &parseState{legacyOffsetBound: e.legacyOffsetBound}
	var pos int
	for _, tok := range tokens {
		n, err := tok.rule.parse(state, tok.run, input[pos:])
		if err != nil {
			return time.Time{}, parseErr(pos, err.Error())
		}
		pos += n
	}
	if pos < len(input) {
		return time.Time{}, parseErr(pos, fmt.Sprintf("unexpected trailing text %q", string(input[pos:])))
	}
	if state.empty() {
		return time.Time{}, parseErr(pos, "no date or time field matched")
	}
	t, err := state.assemble(e.clock.Now(), e.loc)
	if err != nil {
		return time.Time{}, parseErr(pos, err.Error())
	}
	return t, nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// matchNumber reads 1 to width digits from the start of text.
func matchNumber(text []rune, width, min, max int) (int, int, error) {
	var n int
	for n < width && n < len(text) && isDigit(text[n]) {
		n++
	}
	if n == 0 {
		return 0, 0, fmt.Errorf("leading character is not a digit")
	}
	v, err := strconv.Atoi(string(text[:n]))
	if err != nil {
		return 0, 0, err
	}
	if v < min {
		return 0, 0, fmt.Errorf("part [%d] is less than minimum value [%d]", v, min)
	}
	if v > max {
		return 0, 0, fmt.Errorf("part [%d] is greater than maximum value [%d]", v, max)
	}
	return n, v, nil
}

// matchName finds the first name that text starts with, ignoring case.
func matchName(text []rune, names []string) (int, int, error) {
	for i, name := range names {
		length := len([]rune(name))
		if len(text) < length {
			continue
		}
		if strings.EqualFold(string(text[:length]), name) {
			return length, i, nil
		}
	}
	return 0, 0, fmt.Errorf("unexpected name")
}

func numberParser(min, max int, store func(*parseState) *field) parseFunc {
	return func(s *parseState, run []rune, text []rune) (int, error) {
		n, v, err := matchNumber(text, len(run), min, max)
		if err != nil {
			return 0, err
		}
		if store != nil {
			store(s).store(v)
		}
		return n, nil
	}
}

var (
	parseDate        = numberParser(1, 31, func(s *parseState) *field { return &s.date })
	parseDayOfYear   = numberParser(math.MinInt, math.MaxInt, nil)
	parseHour12      = numberParser(1, 12, func(s *parseState) *field { return &s.hour12 })
	parseHour24      = numberParser(0, 24, func(s *parseState) *field { return &s.hour })
	parseMinute      = numberParser(0, 59, func(s *parseState) *field { return &s.minute })
	parseSecond      = numberParser(0, 59, func(s *parseState) *field { return &s.second })
	parseQuarter     = numberParser(1, 4, nil)
	parseMillisecond = numberParser(0, 999, func(s *parseState) *field { return &s.millisecond })
)

// parseYear reads years below 100 as 19xx.
func parseYear(s *parseState, run []rune, text []rune) (int, error) {
	n, v, err := matchNumber(text, len(run), math.MinInt, math.MaxInt)
	if err != nil {
		return 0, err
	}
	if v < 100 {
		v += 1900
	}
	s.year.store(v)
	return n, nil
}

func parseMonth(s *parseState, run []rune, text []rune) (int, error) {
	if len(run) < 3 {
		n, v, err := matchNumber(text, len(run), 1, 12)
		if err != nil {
			return 0, err
		}
		s.month.store(v)
		return n, nil
	}
	names := months
	if len(run) == 3 {
		names = shortMonths
	}
	n, idx, err := matchName(text, names)
	if err != nil {
		return 0, fmt.Errorf("unexpected month name")
	}
	s.month.store(idx + 1)
	return n, nil
}

// parseWeekday consumes a weekday without storing it.
func parseWeekday(s *parseState, run []rune, text []rune) (int, error) {
	if len(run) < 3 {
		n, _, err := matchNumber(text, len(run), 0, 6)
		return n, err
	}
	names := weekdays
	if len(run) == 3 {
		names = shortWeekdays
	}
	n, _, err := matchName(text, names)
	if err != nil {
		return 0, fmt.Errorf("unexpected day of week")
	}
	return n, nil
}

func parseMeridiem(s *parseState, _ []rune, text []rune) (int, error) {
	if len(text) < 2 {
		return 0, fmt.Errorf("am or pm not found")
	}
	meridiem := strings.ToLower(string(text[:2]))
	if meridiem != "am" && meridiem != "pm" {
		return 0, fmt.Errorf("am or pm not found")
	}
	s.meridiem = meridiem
	return 2, nil
}

// parseOffset reads [-+]HH, [-+]HHMM or [-+]HH:MM by run length and stores
// the offset as minutes behind UTC.
func parseOffset(s *parseState, run []rune, text []rune) (int, error) {
	if len(text) < 3 || (text[0] != '+' && text[0] != '-') || !isDigit(text[1]) || !isDigit(text[2]) {
		return 0, fmt.Errorf("invalid timezone offset")
	}
	hours, _ := strconv.Atoi(string(text[1:3]))
	var minutes int
	n := 3
	switch {
	case len(run) == 3:
		if len(text) < 5 || !isDigit(text[3]) || !isDigit(text[4]) {
			return 0, fmt.Errorf("invalid timezone offset minutes")
		}
		minutes, _ = strconv.Atoi(string(text[3:5]))
		n = 5
	case len(run) > 3:
		if len(text) < 6 || text[3] != ':' || !isDigit(text[4]) || !isDigit(text[5]) {
			return 0, fmt.Errorf("invalid timezone offset minutes")
		}
		minutes, _ = strconv.Atoi(string(text[4:6]))
		n = 6
	}
	if !s.legacyOffsetBound {
		if hours > maxOffsetHours {
			return 0, fmt.Errorf("timezone hour [%d] is greater than maximum value [%d]", hours, maxOffsetHours)
		}
		if minutes > 59 {
			return 0, fmt.Errorf("timezone minute [%d] is greater than maximum value [59]", minutes)
		}
	}
	total := hours*60 + minutes
	if text[0] == '+' {
		total = -total
	}
	s.offset.store(total)
	return n, nil
}

func parseUTC(s *parseState, _ []rune, text []rune) (int, error) {
	if len(text) == 0 || text[0] != 'Z' {
		return 0, fmt.Errorf("[Z] not found")
	}
	s.utc = true
	return 1, nil
}

// parseQuoted matches the span case-insensitively. A Z inside the span
// marks the input as UTC, the same way Format reads it.
func parseQuoted(s *parseState, run []rune, text []rune) (int, error) {
	if len(text) < len(run) || !strings.EqualFold(string(text[:len(run)]), string(run)) {
		return 0, fmt.Errorf("[%s] not found", string(run))
	}
	if strings.ContainsRune(string(run), 'Z') {
		s.utc = true
	}
	return len(run), nil
}

func parseLiteral(_ *parseState, run []rune, text []rune) (int, error) {
	if len(text) < len(run) || string(text[:len(run)]) != string(run) {
		return 0, fmt.Errorf("[%s] not found", string(run))
	}
	return len(run), nil
}
