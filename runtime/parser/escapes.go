package parser

import (
	"fmt"
	"strings"

	"github.com/opal-lang/pcomb/core/text"
)

// quoteState tracks quoting while scanning left to right.
type quoteState struct {
	single    bool
	double    bool
	backslash bool
}

// free reports whether the current character is neither escaped nor quoted.
func (q *quoteState) free() bool {
	return !q.backslash && !q.single && !q.double
}

// step updates the state after reading r. A doubled backslash cancels itself.
func (q *quoteState) step(r rune) {
	switch {
	case r == '\'' && !q.double && !q.backslash:
		q.single = !q.single
	case r == '"' && !q.single && !q.backslash:
		q.double = !q.double
	case r == '\\':
		q.backslash = !q.backslash
	default:
		q.backslash = false
	}
}

// EscapeOpt configures StringWithEscapesUpTo
type EscapeOpt func(*escapeConfig)

type escapeConfig struct {
	notToEnd     bool
	skipPastEnd  bool
	keepEscapes  bool
	invalidChars text.Set
}

// NotToEndOfInput makes a missing terminal a failure instead of a match to end of input
func NotToEndOfInput() EscapeOpt {
	return func(c *escapeConfig) {
		c.notToEnd = true
	}
}

// SkipPastEnd consumes the terminal character when found
func SkipPastEnd() EscapeOpt {
	return func(c *escapeConfig) {
		c.skipPastEnd = true
	}
}

// KeepEscapes returns the captured text with escape sequences as written
func KeepEscapes() EscapeOpt {
	return func(c *escapeConfig) {
		c.keepEscapes = true
	}
}

// InvalidChars fails the scan on an unquoted, unescaped character of set
func InvalidChars(set text.Set) EscapeOpt {
	return func(c *escapeConfig) {
		c.invalidChars = set
	}
}

// StringWithEscapesUpTo captures text up to the first terminal character that is
// neither escaped nor inside single or double quotes.
func StringWithEscapesUpTo(terminal rune, opts ...EscapeOpt) *Parser[string] {
	return stringWithEscapes(fmt.Sprintf("stringWithEscapesUpTo(%q)", terminal),
		func(r rune) bool { return r == terminal }, opts)
}

// StringWithEscapesUpToAny is StringWithEscapesUpTo with a class of terminal characters.
func StringWithEscapesUpToAny(terminals text.Set, opts ...EscapeOpt) *Parser[string] {
	return stringWithEscapes("stringWithEscapesUpToAny", terminals, opts)
}

// stringWithEscapes scans once for the terminal, then rewrites escapes in the
// captured text unless KeepEscapes is set. Empty input never matches.
func stringWithEscapes(name string, terminal text.Set, opts []EscapeOpt) *Parser[string] {
	config := escapeConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	return New(name, func(input text.View, ctx Context) Status[string] {
		if input.IsEmpty() {
			return NoMatch[string](input)
		}

		var q quoteState
		i := input.Start()
		found := false
		for i < input.End() {
			r, w := input.At(i)
			if q.free() {
				if config.invalidChars.Contains(r) {
					return NoMatch[string](input)
				}
				if terminal.Contains(r) {
					found = true
					break
				}
			}
			q.step(r)
			i += w
		}

		if !found && config.notToEnd {
			return NoMatch[string](input)
		}

		end := i
		if found && config.skipPastEnd {
			end = input.After(i)
		}
		if ctx.matchOnly {
			return MatchedEmpty[string](input, end)
		}

		captured := input.Text(input.Start(), i)
		if !config.keepEscapes {
			captured = Unescape(captured)
		}
		return Matched(input, end, captured)
	})
}

// Unescape collapses doubled backslashes and rewrites \n, \t, \' and \" in s.
// Any other escape is left as written.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if !pending {
			if r == '\\' {
				pending = true
			} else {
				b.WriteRune(r)
			}
			continue
		}

		pending = false
		switch r {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\'', '"':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	if pending {
		b.WriteByte('\\')
	}
	return b.String()
}
