package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/opal-lang/pcomb/core/invariant"
	"github.com/opal-lang/pcomb/core/text"
)

// TakeOpt configures the Take scanners
type TakeOpt func(*takeConfig)

type takeConfig struct {
	minCount        int
	andSkip         bool
	requireTerminal bool
}

// MinCount requires at least n characters in the value
func MinCount(n int) TakeOpt {
	invariant.NotNegative(n, "minCount")
	return func(c *takeConfig) {
		c.minCount = n
	}
}

// AndSkip consumes the terminator when one was found. It is not part of the value.
func AndSkip() TakeOpt {
	return func(c *takeConfig) {
		c.andSkip = true
	}
}

// RequireTerminal fails the scan when it reaches end of input without a terminator
func RequireTerminal() TakeOpt {
	return func(c *takeConfig) {
		c.requireTerminal = true
	}
}

func newTakeConfig(opts []TakeOpt) takeConfig {
	config := takeConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

// TakeUntilIn takes characters up to the first one in set.
func TakeUntilIn(set text.Set, opts ...TakeOpt) *Parser[string] {
	return takeWhile("takeUntilIn", nil, set.Not(), newTakeConfig(opts))
}

// TakeUntilChar takes characters up to the first c.
func TakeUntilChar(c rune, opts ...TakeOpt) *Parser[string] {
	return takeWhile(fmt.Sprintf("takeUntilChar(%q)", c), nil, func(r rune) bool { return r != c }, newTakeConfig(opts))
}

// TakeWhileIn takes characters while they are in set.
func TakeWhileIn(set text.Set, opts ...TakeOpt) *Parser[string] {
	return takeWhile("takeWhileIn", nil, set, newTakeConfig(opts))
}

// TakeWhileInInitial is TakeWhileIn where the first character must be in initial
// instead. A non-empty input whose first character is not in initial never matches.
func TakeWhileInInitial(initial, set text.Set, opts ...TakeOpt) *Parser[string] {
	return takeWhile("takeWhileInInitial", initial, set, newTakeConfig(opts))
}

func takeWhile(name string, initial, accept text.Set, config takeConfig) *Parser[string] {
	return New(name, func(input text.View, ctx Context) Status[string] {
		i := input.Start()
		count := 0
		if initial != nil && !input.IsEmpty() {
			r, w := input.At(i)
			if !initial.Contains(r) {
				return NoMatch[string](input)
			}
			i += w
			count++
		}
		for i < input.End() {
			r, w := input.At(i)
			if !accept.Contains(r) {
				break
			}
			i += w
			count++
		}

		terminated := i < input.End()
		if count < config.minCount || (config.requireTerminal && !terminated) {
			return NoMatch[string](input)
		}

		end := i
		if terminated && config.andSkip {
			end = input.After(i)
		}
		if ctx.matchOnly {
			return MatchedEmpty[string](input, end)
		}
		return Matched(input, end, input.Text(input.Start(), i))
	})
}

// TakeUntilString takes characters up to the first occurrence of terminator. When
// the terminator does not occur the whole input is taken, unless RequireTerminal
// is set.
func TakeUntilString(terminator string, opts ...TakeOpt) *Parser[string] {
	config := newTakeConfig(opts)
	return New(fmt.Sprintf("takeUntilString(%s)", terminator), func(input text.View, ctx Context) Status[string] {
		valueEnd, end := input.End(), input.End()
		if idx := strings.Index(input.String(), terminator); idx >= 0 {
			valueEnd = input.Start() + idx
			end = valueEnd
			if config.andSkip {
				end += len(terminator)
			}
		} else if config.requireTerminal {
			return NoMatch[string](input)
		}

		value := input.Text(input.Start(), valueEnd)
		if utf8.RuneCountInString(value) < config.minCount {
			return NoMatch[string](input)
		}
		if ctx.matchOnly {
			return MatchedEmpty[string](input, end)
		}
		return Matched(input, end, value)
	})
}
