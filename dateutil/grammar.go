package dateutil

import (
	"fmt"
	"strings"
)

type mode int

const (
	formatMode mode = iota
	parseMode
)

type tokenKind int

const (
	tokenYear tokenKind = iota
	tokenMonth
	tokenDate
	tokenDayOfYear
	tokenHour12
	tokenHour24
	tokenMinute
	tokenSecond
	tokenQuarter
	tokenMillisecond
	tokenWeekday
	tokenMeridiem
	tokenOffset
	tokenUTC
	tokenQuoted
	tokenLiteral
)

type (
	// matchFunc returns the length of the run starting at pattern[0], or 0.
	matchFunc func(pattern []rune, m mode) int

	formatFunc func(c *calendar, run []rune) []rune

	// parseFunc consumes the start of text for one token run and returns
	// the number of runes consumed.
	parseFunc func(s *parseState, run []rune, text []rune) (int, error)
)

type tokenRule struct {
	kind   tokenKind
	match  matchFunc
	format formatFunc
	parse  parseFunc
}

// grammar is consulted in order; the first rule that matches wins.
var grammar = []*tokenRule{
	{kind: tokenYear, match: runOf("y", "y"), format: formatYear, parse: parseYear},
	{kind: tokenMonth, match: runOf("M", "M"), format: formatMonth, parse: parseMonth},
	{kind: tokenDate, match: runOf("d", "d"), format: formatDate, parse: parseDate},
	{kind: tokenDayOfYear, match: runOf("D", "D"), format: formatDayOfYear, parse: parseDayOfYear},
	{kind: tokenHour12, match: runOf("h", "h"), format: formatHour12, parse: parseHour12},
	{kind: tokenHour24, match: runOf("H", "H"), format: formatHour24, parse: parseHour24},
	{kind: tokenMinute, match: runOf("m", "m"), format: formatMinute, parse: parseMinute},
	{kind: tokenSecond, match: runOf("s", "s"), format: formatSecond, parse: parseSecond},
	{kind: tokenQuarter, match: runOf("q", "qQ"), format: formatQuarter, parse: parseQuarter},
	{kind: tokenMillisecond, match: runOf("S", "S"), format: formatMillisecond, parse: parseMillisecond},
	{kind: tokenWeekday, match: runOf("E", "E"), format: formatWeekday, parse: parseWeekday},
	{kind: tokenMeridiem, match: oneOf("aA"), format: formatMeridiem, parse: parseMeridiem},
	{kind: tokenOffset, match: runOf("z", "z"), format: formatOffset, parse: parseOffset},
	{kind: tokenUTC, match: matchUTC, parse: parseUTC},
	{kind: tokenQuoted, match: matchQuoted, format: formatLiteral, parse: parseQuoted},
	{kind: tokenLiteral, match: matchLiteral, format: formatLiteral, parse: parseLiteral},
}

const (
	formatTokenChars = `yMdDhHmsqSEaAz'"`
	parseTokenChars  = `yMdDhHmsqQSEaAzZ'"`
)

func runOf(formatChars, parseChars string) matchFunc {
	return func(pattern []rune, m mode) int {
		chars := formatChars
		if m == parseMode {
			chars = parseChars
		}
		n := 0
		for n < len(pattern) && strings.ContainsRune(chars, pattern[n]) {
			n++
		}
		return n
	}
}

func oneOf(chars string) matchFunc {
	return func(pattern []rune, _ mode) int {
		if len(pattern) > 0 && strings.ContainsRune(chars, pattern[0]) {
			return 1
		}
		return 0
	}
}

// matchUTC only applies while parsing. When formatting, Z is plain text
// that switches the whole pattern to UTC.
func matchUTC(pattern []rune, m mode) int {
	if m == parseMode && len(pattern) > 0 && pattern[0] == 'Z' {
		return 1
	}
	return 0
}

func matchQuoted(pattern []rune, _ mode) int {
	if len(pattern) == 0 || (pattern[0] != '\'' && pattern[0] != '"') {
		return 0
	}
	for i := 1; i < len(pattern); i++ {
		if pattern[i] == pattern[0] {
			return i + 1
		}
	}
	return 0
}

func matchLiteral(pattern []rune, m mode) int {
	chars := formatTokenChars
	if m == parseMode {
		chars = parseTokenChars
	}
	n := 0
	for n < len(pattern) && !strings.ContainsRune(chars, pattern[n]) {
		n++
	}
	if n == 0 && m == formatMode && len(pattern) > 0 {
		// unterminated quote
		return 1
	}
	return n
}

type token struct {
	rule *tokenRule
	run  []rune // text between the quotes for quoted spans
}

func (t token) kind() tokenKind {
	return t.rule.kind
}

// scanPattern splits pattern into token runs. It only fails in parse mode,
// on a quote that is never closed.
func scanPattern(pattern []rune, m mode) ([]token, error) {
	var tokens []token
	for pos := 0; pos < len(pattern); {
		rule, n := matchRule(pattern[pos:], m)
		if rule == nil {
			return nil, fmt.Errorf("unexpected character %q at pattern position %d", pattern[pos], pos)
		}
		run := pattern[pos : pos+n]
		if rule.kind == tokenQuoted {
			run = run[1 : len(run)-1]
		}
		tokens = append(tokens, token{rule: rule, run: run})
		pos += n
	}
	return tokens, nil
}

func matchRule(pattern []rune, m mode) (*tokenRule, int) {
	for _, rule := range grammar {
		if m == formatMode && rule.format == nil {
			continue
		}
		if n := rule.match(pattern, m); n > 0 {
			return rule, n
		}
	}
	return nil, 0
}
