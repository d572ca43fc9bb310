// Package grammars holds ready-made grammars built from the parser package, and a
// registry that looks them up by name.
package grammars

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/opal-lang/pcomb/core/text"
	"github.com/opal-lang/pcomb/runtime/parser"
)

// ErrDivisionByZero is returned by Expr.Eval.
var ErrDivisionByZero = errors.New("division by zero")

// Expr is an arithmetic expression tree. A leaf has Op "num" and a Number.
type Expr struct {
	Op     string   `json:"op" yaml:"op"`
	Number *float64 `json:"number,omitempty" yaml:"number,omitempty"`
	Args   []*Expr  `json:"args,omitempty" yaml:"args,omitempty"`
}

// Num returns a leaf expression.
func Num(v float64) *Expr {
	return &Expr{Op: "num", Number: &v}
}

func (e *Expr) String() string {
	switch {
	case e.Op == "num":
		return strconv.FormatFloat(*e.Number, 'g', -1, 64)
	case len(e.Args) == 1:
		return fmt.Sprintf("(%s%s)", e.Op, e.Args[0])
	default:
		return fmt.Sprintf("(%s %s %s)", e.Args[0], e.Op, e.Args[1])
	}
}

// Eval computes the value of the expression.
func (e *Expr) Eval() (float64, error) {
	if e.Op == "num" {
		return *e.Number, nil
	}

	args := make([]float64, len(e.Args))
	for i, a := range e.Args {
		v, err := a.Eval()
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	switch e.Op {
	case "-":
		if len(args) == 1 {
			return -args[0], nil
		}
		return args[0] - args[1], nil
	case "+":
		return args[0] + args[1], nil
	case "*":
		return args[0] * args[1], nil
	case "/":
		if args[1] == 0 {
			return 0, fmt.Errorf("%s: %w", e, ErrDivisionByZero)
		}
		return args[0] / args[1], nil
	}
	return 0, fmt.Errorf("unknown operator %q", e.Op)
}

// Expression parses arithmetic over decimal numbers with + - * /, unary minus and
// parentheses. Operators of equal precedence associate to the left. Whitespace
// between tokens is skipped.
func Expression() *parser.Parser[*Expr] {
	expr := parser.Declare[*Expr]("expression")
	factor := parser.Declare[*Expr]("factor")

	fraction := parser.Concat(parser.Sequential(parser.Char('.'), parser.Digits(1)), "")
	literal := parser.Concat(parser.Sequential(parser.Digits(1), fraction.Optional()), "")
	number := parser.MapOK(literal, func(s string) (*Expr, bool) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return Num(v), true
	}).SkipSurroundingSpaces().Named("number")

	negated := parser.Map(parser.KeepRight(parser.CharSpaced('-'), factor.Parser), func(e *Expr) *Expr {
		return &Expr{Op: "-", Args: []*Expr{e}}
	})

	factor.Bind(parser.Choice(
		number,
		parser.Between(expr.Parser, parser.CharSpaced('('), parser.CharSpaced(')')),
		negated,
	))

	term := binaryLevel(factor.Parser, text.Runes("*/")).Named("term")
	expr.Bind(binaryLevel(term, text.Runes("+-")))

	return expr.Parser
}

// binaryLevel parses operand (op operand)* and folds it to the left.
func binaryLevel(operand *parser.Parser[*Expr], ops text.Set) *parser.Parser[*Expr] {
	tail := parser.Many(parser.Then(parser.CharIn(ops).SkipSurroundingSpaces(), operand), 0)
	return parser.Map(parser.Then(operand, tail), func(t parser.Tuple2[*Expr, []parser.Tuple2[string, *Expr]]) *Expr {
		acc := t.V1
		for _, step := range t.V2 {
			acc = &Expr{Op: step.V1, Args: []*Expr{acc, step.V2}}
		}
		return acc
	})
}
