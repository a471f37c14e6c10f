// Package rules evaluates conditions against the game state and filters the
// actions a player may currently choose.
package rules

import (
	"github.com/nathoo/roomscript/engine/state"
	"github.com/nathoo/roomscript/types"
)

// EvalCondition evaluates a condition against the current state.
// Unset properties are false. And/Or evaluate the left operand first and
// skip the right when the left decides the result. A nil condition is true.
func EvalCondition(c types.Condition, s *types.GameState) bool {
	switch c := c.(type) {
	case nil:
		return true

	case types.IsPropertyTrue:
		return state.GetProperty(s, c.Property)

	case types.Not:
		return !EvalCondition(c.Inner, s)

	case types.And:
		return EvalCondition(c.Left, s) && EvalCondition(c.Right, s)

	case types.Or:
		return EvalCondition(c.Left, s) || EvalCondition(c.Right, s)

	default:
		return false
	}
}

// Properties returns every property a condition reads, in left-to-right
// order without duplicates.
func Properties(c types.Condition) []types.PropertyID {
	var out []types.PropertyID
	seen := map[types.PropertyID]bool{}
	var walk func(types.Condition)
	walk = func(c types.Condition) {
		switch c := c.(type) {
		case types.IsPropertyTrue:
			if !seen[c.Property] {
				seen[c.Property] = true
				out = append(out, c.Property)
			}
		case types.Not:
			walk(c.Inner)
		case types.And:
			walk(c.Left)
			walk(c.Right)
		case types.Or:
			walk(c.Left)
			walk(c.Right)
		}
	}
	walk(c)
	return out
}
