// Package types defines the shared data structures for the roomscript engine.
// This package contains only type definitions and their text forms.
package types

import "fmt"

// PropertyID names a boolean world flag.
type PropertyID string

// LocationID names a location.
type LocationID string

// ItemID identifies an item. Reserved; nothing reads it yet.
type ItemID uint32

// Condition is a boolean expression over world properties.
// The set of variants is closed: IsPropertyTrue, Not, And, Or.
//
// String renders the condition language without grouping. For any tree
// produced by parser.ParseCondition the text parses back to the same tree.
// Other shapes, such as a Not or a mixed operator on the left of And/Or,
// have no form in the language and print ambiguously.
type Condition interface {
	fmt.Stringer
	isCondition()
}

// IsPropertyTrue holds iff the named property is currently true.
type IsPropertyTrue struct {
	Property PropertyID
}

// Not negates its inner condition.
type Not struct {
	Inner Condition
}

// And holds when both operands hold. Left is evaluated first.
type And struct {
	Left  Condition
	Right Condition
}

// Or holds when either operand holds. Left is evaluated first.
type Or struct {
	Left  Condition
	Right Condition
}

func (IsPropertyTrue) isCondition() {}
func (Not) isCondition()            {}
func (And) isCondition()            {}
func (Or) isCondition()             {}

func (c IsPropertyTrue) String() string { return string(c.Property) }
func (c Not) String() string            { return "!" + c.Inner.String() }
func (c And) String() string            { return c.Left.String() + " & " + c.Right.String() }
func (c Or) String() string             { return c.Left.String() + " | " + c.Right.String() }

// Directive is a single state mutation triggered by an action.
// The set of variants is closed: SetProperty, GoTo.
type Directive interface {
	fmt.Stringer
	isDirective()
}

// SetProperty sets a property to Value, creating it if absent.
type SetProperty struct {
	Property PropertyID
	Value    bool
}

// GoTo moves the player to Location.
type GoTo struct {
	Location LocationID
}

func (SetProperty) isDirective() {}
func (GoTo) isDirective()        {}

func (d SetProperty) String() string { return fmt.Sprintf("set %s %t", d.Property, d.Value) }
func (d GoTo) String() string        { return "goto " + string(d.Location) }

// Action is one player-selectable choice in a location.
type Action struct {
	Title      string
	Condition  Condition
	Directives []Directive
}

// Location is a single place in the world, loaded from one definition file.
type Location struct {
	Title       string
	Description string
	Actions     []Action
	Source      string // definition file path, for diagnostics
}

// ID returns the location's identifier, which is its title.
func (l Location) ID() LocationID {
	return LocationID(l.Title)
}

// GameState is the complete mutable game state.
type GameState struct {
	Location   LocationID
	Properties map[PropertyID]bool
	TurnCount  int
}

// Event is emitted after a directive is applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single player choice.
type Result struct {
	Action     string
	Directives []Directive
	Events     []Event
	Output     []string
}
