// Package parser implements the rule language: condition expressions that
// gate actions, and the directive lines that actions apply.
//
// Condition grammar:
//
//	condition := unary ( " & " unary )*
//	           | unary ( " | " unary )*
//	unary     := "!" condition | property
//	property  := [A-Za-z0-9]+
//
// Operators are the literal three-byte tokens " & " and " | ". A chain groups
// left to right and may use only one operator; the only grouping construct is
// "!", which applies to the whole remaining condition. "a & b | c" is an
// error, "a | !b & c" is Or(a, Not(And(b, c))).
package parser

import (
	"fmt"
	"strings"

	"github.com/nathoo/roomscript/types"
)

const (
	andToken = " & "
	orToken  = " | "
)

// ParseError describes malformed condition or directive text.
type ParseError struct {
	Kind   string // "condition" or "directive"
	Input  string
	Offset int // byte offset of the problem within Input
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q at offset %d: %s", e.Kind, e.Input, e.Offset, e.Msg)
}

// ParseCondition parses condition text into an expression tree.
// The whole input must be consumed.
func ParseCondition(text string) (types.Condition, error) {
	p := &condParser{input: text}
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, p.trailing()
	}
	return cond, nil
}

// MustParseCondition is like ParseCondition but panics on error.
// Intended for tests and fixed literals.
func MustParseCondition(text string) types.Condition {
	c, err := ParseCondition(text)
	if err != nil {
		panic(err)
	}
	return c
}

type condParser struct {
	input string
	pos   int
}

func (p *condParser) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Kind:   "condition",
		Input:  p.input,
		Offset: p.pos,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// condition parses a single-operator chain of unary terms.
func (p *condParser) condition() (types.Condition, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	op := ""
	for {
		next := p.peekOperator()
		if next == "" {
			return left, nil
		}
		if op != "" && next != op {
			return nil, p.errorf("cannot mix %q and %q in one expression; group with \"!\"",
				strings.TrimSpace(op), strings.TrimSpace(next))
		}
		op = next
		p.pos += len(op)

		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == andToken {
			left = types.And{Left: left, Right: right}
		} else {
			left = types.Or{Left: left, Right: right}
		}
	}
}

func (p *condParser) unary() (types.Condition, error) {
	if p.pos < len(p.input) && p.input[p.pos] == '!' {
		p.pos++
		inner, err := p.condition()
		if err != nil {
			return nil, err
		}
		return types.Not{Inner: inner}, nil
	}
	return p.property()
}

func (p *condParser) property() (types.Condition, error) {
	start := p.pos
	for p.pos < len(p.input) && isAlnum(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		if p.pos == len(p.input) {
			return nil, p.errorf("unexpected end of input, expected a property name")
		}
		return nil, p.errorf("unexpected %q, expected a property name", p.input[p.pos])
	}
	return types.IsPropertyTrue{Property: types.PropertyID(p.input[start:p.pos])}, nil
}

// peekOperator returns the operator token at the cursor, or "".
func (p *condParser) peekOperator() string {
	rest := p.input[p.pos:]
	switch {
	case strings.HasPrefix(rest, andToken):
		return andToken
	case strings.HasPrefix(rest, orToken):
		return orToken
	}
	return ""
}

// trailing builds the error for input left over after a complete condition.
func (p *condParser) trailing() *ParseError {
	switch p.input[p.pos] {
	case ' ', '\t', '&', '|':
		return p.errorf("operators must be written as %q or %q", andToken, orToken)
	}
	return p.errorf("unexpected %q after condition", p.input[p.pos:])
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// IsPropertyName reports whether s is usable as a property name in a condition.
func IsPropertyName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}
	return true
}

// token is a whitespace-delimited word and its byte offset in the line.
type token struct {
	text   string
	offset int
}

func tokenize(line string) []token {
	var toks []token
	pos := 0
	for _, f := range strings.Fields(line) {
		i := strings.Index(line[pos:], f)
		toks = append(toks, token{text: f, offset: pos + i})
		pos += i + len(f)
	}
	return toks
}

// ParseDirective parses one directive line:
//
//	set <property> true|false
//	goto <location>
//
// Missing, extra, or unrecognised tokens are errors.
func ParseDirective(line string) (types.Directive, error) {
	toks := tokenize(line)
	fail := func(offset int, format string, args ...any) (types.Directive, error) {
		return nil, &ParseError{
			Kind:   "directive",
			Input:  line,
			Offset: offset,
			Msg:    fmt.Sprintf(format, args...),
		}
	}

	if len(toks) == 0 {
		return fail(0, "empty directive")
	}

	switch toks[0].text {
	case "set":
		if len(toks) < 2 {
			return fail(len(line), "set needs a property name")
		}
		if !IsPropertyName(toks[1].text) {
			return fail(toks[1].offset, "property name %q must be alphanumeric", toks[1].text)
		}
		if len(toks) < 3 {
			return fail(len(line), "set needs a value (true or false)")
		}
		var value bool
		switch toks[2].text {
		case "true":
			value = true
		case "false":
			value = false
		default:
			return fail(toks[2].offset, "value %q must be true or false", toks[2].text)
		}
		if len(toks) > 3 {
			return fail(toks[3].offset, "unexpected %q after value", toks[3].text)
		}
		return types.SetProperty{Property: types.PropertyID(toks[1].text), Value: value}, nil

	case "goto":
		if len(toks) < 2 {
			return fail(len(line), "goto needs a location")
		}
		if len(toks) > 2 {
			return fail(toks[2].offset, "unexpected %q after location", toks[2].text)
		}
		return types.GoTo{Location: types.LocationID(toks[1].text)}, nil

	default:
		return fail(toks[0].offset, "unknown directive %q (want set or goto)", toks[0].text)
	}
}
