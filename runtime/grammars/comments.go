package grammars

import (
	"strings"

	"github.com/opal-lang/pcomb/runtime/parser"
)

// BlockComment matches one /* ... */ comment and returns its trimmed text.
// An unterminated comment does not match.
func BlockComment() *parser.Parser[string] {
	body := parser.TakeUntilString("*/", parser.AndSkip(), parser.RequireTerminal())
	return parser.Map(parser.KeepRight(parser.String("/*"), body), strings.TrimSpace).Named("blockComment")
}

// BlockComments matches one or more block comments separated by whitespace.
func BlockComments() *parser.Parser[[]string] {
	return parser.Many(BlockComment().SkipSurroundingSpaces(), 1).Named("blockComments")
}

// LineComment matches marker followed by the rest of the line. The newline is
// consumed; the value is the trimmed text after the marker.
func LineComment(marker string) *parser.Parser[string] {
	rest := parser.TakeUntilChar('\n', parser.AndSkip())
	return parser.Map(parser.KeepRight(parser.String(marker, parser.CaseSensitive()), rest), strings.TrimSpace).Named("lineComment")
}
