package grammars

import (
	"strings"

	"github.com/opal-lang/pcomb/core/text"
	"github.com/opal-lang/pcomb/runtime/parser"
)

// KeyValue is one key=value entry.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

var entrySeparators = text.Runes(";\n")

// KeyValues parses entries like `name=web; cmd="echo a;b"` separated by semicolons
// or newlines. Values may be quoted or escaped to contain separators; one pair of
// enclosing quotes is removed.
func KeyValues() *parser.Parser[[]KeyValue] {
	key := parser.TakeWhileInInitial(identStart, identRest.Union(text.Runes("-")), parser.MinCount(1)).SkipSurroundingSpaces()
	value := parser.Map(parser.StringWithEscapesUpToAny(entrySeparators), func(s string) string {
		return unquote(strings.TrimSpace(s))
	}).OptionalDefault("")

	entry := parser.ThenWith(key, parser.KeepRight(parser.Char('='), value), func(k, v string) KeyValue {
		return KeyValue{Key: k, Value: v}
	})

	return parser.SepBy(entry, parser.CharIn(entrySeparators), 0).Named("keyValues")
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
