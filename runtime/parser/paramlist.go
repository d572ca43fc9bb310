package parser

import (
	"fmt"
	"strings"

	"github.com/opal-lang/pcomb/core/invariant"
	"github.com/opal-lang/pcomb/core/text"
)

// ParamOpt configures ParamList
type ParamOpt func(*paramConfig)

type paramConfig struct {
	start        rune
	sep          rune
	end          rune
	invalidChars text.Set
}

// Delimiters sets the list start, separator and end characters. Defaults are ( , )
func Delimiters(start, sep, end rune) ParamOpt {
	return func(c *paramConfig) {
		c.start = start
		c.sep = sep
		c.end = end
	}
}

// ParamInvalidChars fails the scan on an unquoted, unescaped character of set
func ParamInvalidChars(set text.Set) ParamOpt {
	return func(c *paramConfig) {
		c.invalidChars = set
	}
}

// ParamList matches a delimited parameter list such as "(a, b, f(c, d))" and returns
// the trimmed top-level parameters. Nested lists are returned verbatim; parse them
// again with the same parser to descend. Quotes and backslash escapes hide
// delimiters. The input must begin with the start character.
//
// An empty list "()" yields a single empty parameter.
func ParamList(opts ...ParamOpt) *Parser[[]string] {
	config := paramConfig{start: '(', sep: ',', end: ')'}
	for _, opt := range opts {
		opt(&config)
	}
	invariant.Precondition(config.start != config.end && config.sep != config.start && config.sep != config.end,
		"param list delimiters must differ: %q %q %q", config.start, config.sep, config.end)

	name := fmt.Sprintf("paramList(%c%c%c)", config.start, config.sep, config.end)
	return New(name, func(input text.View, ctx Context) Status[[]string] {
		if r, ok := input.First(); !ok || r != config.start {
			return NoMatch[[]string](input)
		}

		var params []string
		var q quoteState
		depth := 0
		i := input.After(input.Start())
		paramStart := i
		for i < input.End() {
			r, w := input.At(i)
			if q.free() {
				switch {
				case config.invalidChars.Contains(r):
					return NoMatch[[]string](input)
				case r == config.start:
					depth++
				case depth == 0 && r == config.sep:
					if !ctx.matchOnly {
						params = append(params, strings.TrimSpace(input.Text(paramStart, i)))
					}
					paramStart = i + w
				case depth == 0 && r == config.end:
					if ctx.matchOnly {
						return MatchedEmpty[[]string](input, i+w)
					}
					params = append(params, strings.TrimSpace(input.Text(paramStart, i)))
					return Matched(input, i+w, params)
				case r == config.end:
					depth--
				}
			}
			q.step(r)
			i += w
		}
		return NoMatch[[]string](input)
	})
}
