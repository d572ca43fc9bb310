package grammars

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/pcomb/runtime/parser"
)

// ErrUnknownGrammar is returned by Lookup for names that are not registered.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Grammar is a named, type-erased parser.
type Grammar struct {
	Name        string
	Description string
	Parser      *parser.Parser[any]
}

// Registry holds grammars by name
type Registry struct {
	mu       sync.RWMutex
	grammars map[string]Grammar
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		grammars: make(map[string]Grammar),
	}
}

// Register adds a grammar. Names are unique.
func (r *Registry) Register(g Grammar) error {
	if g.Name == "" || g.Parser == nil {
		return fmt.Errorf("grammar needs a name and a parser")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.grammars[g.Name]; exists {
		return fmt.Errorf("grammar %q already registered", g.Name)
	}
	r.grammars[g.Name] = g
	return nil
}

// Lookup returns the named grammar. The error for an unknown name suggests the
// closest registered one.
func (r *Registry) Lookup(name string) (Grammar, error) {
	r.mu.RLock()
	g, exists := r.grammars[name]
	r.mu.RUnlock()
	if exists {
		return g, nil
	}

	if suggestion := r.Suggest(name); suggestion != "" {
		return Grammar{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownGrammar, name, suggestion)
	}
	return Grammar{}, fmt.Errorf("%w %q", ErrUnknownGrammar, name)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.grammars))
	for name := range r.grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the registered name closest to name, or "" when nothing is close.
func (r *Registry) Suggest(name string) string {
	return findClosestMatch(name, r.Names())
}

// findClosestMatch prefers candidates containing target as a subsequence and falls
// back to edit distance for typos that change characters.
func findClosestMatch(target string, candidates []string) string {
	if len(candidates) == 0 || target == "" {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", len(target)/2+1
	lower := strings.ToLower(target)
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(lower, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in grammars.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, g := range builtins() {
			if err := defaultRegistry.Register(g); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}

func builtins() []Grammar {
	return []Grammar{
		{
			Name:        "expression",
			Description: "arithmetic over decimal numbers with + - * / and parentheses",
			Parser:      parser.Erase(Expression()),
		},
		{
			Name:        "block-comments",
			Description: "one or more /* ... */ comments",
			Parser:      parser.Erase(BlockComments()),
		},
		{
			Name:        "line-comment",
			Description: "a // comment up to the end of the line",
			Parser:      parser.Erase(LineComment("//")),
		},
		{
			Name:        "call",
			Description: "a function call with nested calls as arguments",
			Parser:      parser.Erase(Calls()),
		},
		{
			Name:        "key-values",
			Description: "key=value entries separated by ; or newlines",
			Parser:      parser.Erase(KeyValues()),
		},
		{
			Name:        "param-list",
			Description: "a parenthesized, comma separated parameter list",
			Parser:      parser.Erase(parser.ParamList()),
		},
		{
			Name:        "number-list",
			Description: "comma separated decimal numbers",
			Parser:      parser.Erase(parser.SepBy(parser.Digits(1).SkipSurroundingSpaces(), parser.Char(','), 0)),
		},
	}
}
