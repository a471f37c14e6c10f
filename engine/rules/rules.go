package rules

import (
	"github.com/nathoo/roomscript/types"
)

// AvailableActions returns the actions of loc whose conditions currently
// hold, in definition order. This is the menu a player may choose from.
func AvailableActions(loc types.Location, s *types.GameState) []types.Action {
	var available []types.Action
	for _, action := range loc.Actions {
		if EvalCondition(action.Condition, s) {
			available = append(available, action)
		}
	}
	return available
}

// IsAvailable reports whether action may be triggered in the current state.
func IsAvailable(action types.Action, s *types.GameState) bool {
	return EvalCondition(action.Condition, s)
}
