package grammars

import (
	"github.com/opal-lang/pcomb/core/text"
	"github.com/opal-lang/pcomb/runtime/parser"
)

// Call is a function call such as deploy(prod, retry(3)).
type Call struct {
	Name string `json:"name" yaml:"name"`
	Args []Arg  `json:"args,omitempty" yaml:"args,omitempty"`
}

// Arg is one call argument: either a nested call or plain text, unquoted and with
// escapes rewritten.
type Arg struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	Call *Call  `json:"call,omitempty" yaml:"call,omitempty"`
}

var (
	identStart = text.Letters.Union(text.Runes("_"))
	identRest  = text.Alphanumerics.Union(text.Runes("_."))
)

// Identifier matches a letter or underscore followed by letters, digits,
// underscores and dots.
func Identifier() *parser.Parser[string] {
	return parser.TakeWhileInInitial(identStart, identRest, parser.MinCount(1)).Named("identifier")
}

// Calls parses a call whose arguments may themselves be calls. Arguments are split
// with ParamList, so quoted and escaped delimiters stay inside an argument.
func Calls() *parser.Parser[*Call] {
	call := parser.Declare[*Call]("call")

	arg := parser.Choice(
		parser.Map(call.Parser.BeforeEOI(), func(c *Call) Arg { return Arg{Call: c} }),
		parser.Map(parser.PassThrough(), func(s string) Arg { return Arg{Text: parser.Unescape(unquote(s))} }),
	)
	args := parser.ParseEach(parser.ParamList(), arg)

	call.Bind(parser.ThenWith(Identifier(), parser.KeepRight(parser.Spaces(0), args), func(name string, args []Arg) *Call {
		if len(args) == 1 && args[0] == (Arg{}) {
			args = nil
		}
		return &Call{Name: name, Args: args}
	}))

	return call.Parser
}
