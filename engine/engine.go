// Package engine provides the session facade that wires together action
// resolution, condition evaluation, and directive application.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nathoo/roomscript/engine/effects"
	"github.com/nathoo/roomscript/engine/resolve"
	"github.com/nathoo/roomscript/engine/rules"
	"github.com/nathoo/roomscript/engine/state"
	"github.com/nathoo/roomscript/types"
)

// ErrActionUnavailable is matched by every ActionUnavailableError.
var ErrActionUnavailable = errors.New("action not available")

// ActionUnavailableError reports that an action's condition was false when
// it was triggered. State is left untouched.
type ActionUnavailableError struct {
	Action    string
	Condition string
}

func (e *ActionUnavailableError) Error() string {
	return fmt.Sprintf("%q is not available right now (requires %s)", e.Action, e.Condition)
}

// Is makes errors.Is(err, ErrActionUnavailable) succeed.
func (e *ActionUnavailableError) Is(target error) bool {
	return target == ErrActionUnavailable
}

// TriggerAction evaluates the action's condition and, if it holds, applies
// every directive in order. If it does not hold, no directive is applied.
func TriggerAction(s *types.GameState, action types.Action) ([]types.Event, error) {
	if !rules.IsAvailable(action, s) {
		cond := "nothing"
		if action.Condition != nil {
			cond = action.Condition.String()
		}
		return nil, &ActionUnavailableError{Action: action.Title, Condition: cond}
	}
	return effects.ApplyAll(s, action.Directives), nil
}

// Engine holds the loaded world and the single live game state.
type Engine struct {
	World  *state.World
	State  *types.GameState
	Logger *slog.Logger
}

// New creates an engine positioned at start. The start location must exist.
func New(world *state.World, start types.LocationID) (*Engine, error) {
	if _, ok := world.Location(start); !ok {
		return nil, fmt.Errorf("start location %q not found in world", start)
	}
	return &Engine{
		World:  world,
		State:  state.NewState(start),
		Logger: slog.Default(),
	}, nil
}

// Location returns the current location definition. ok is false when a
// goto moved the player somewhere the world does not define.
func (e *Engine) Location() (types.Location, bool) {
	return e.World.Location(e.State.Location)
}

// Available returns the actions currently offered at the player's location.
func (e *Engine) Available() []types.Action {
	loc, ok := e.Location()
	if !ok {
		return nil
	}
	return rules.AvailableActions(loc, e.State)
}

// Step resolves the player's input against the offered actions and
// triggers the chosen one.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	offered := e.Available()
	action, err := resolve.Resolve(input, offered)
	if err != nil {
		result.Output = append(result.Output, capitalize(err.Error())+".")
		return result
	}

	before := e.State.Location
	evts, err := TriggerAction(e.State, action)
	if err != nil {
		// Resolve only offers available actions, so this means the menu
		// was stale.
		result.Output = append(result.Output, capitalize(err.Error())+".")
		return result
	}

	e.State.TurnCount++
	e.Logger.Debug("action triggered",
		"action", action.Title,
		"location", string(before),
		"directives", len(action.Directives),
		"turn", e.State.TurnCount)

	result.Action = action.Title
	result.Directives = action.Directives
	result.Events = evts

	if e.State.Location != before {
		result.Output = append(result.Output, e.Describe()...)
	} else {
		result.Output = append(result.Output, e.menu()...)
	}
	return result
}

// Describe produces the standard location output: title, description, and
// the numbered action menu.
func (e *Engine) Describe() []string {
	loc, ok := e.Location()
	if !ok {
		return []string{
			fmt.Sprintf("== %s ==", e.State.Location),
			"You are somewhere unknown.",
		}
	}

	output := []string{fmt.Sprintf("== %s ==", loc.Title)}
	if loc.Description != "" {
		output = append(output, loc.Description)
	}
	return append(output, e.menu()...)
}

// menu lists the offered actions, numbered from 1.
func (e *Engine) menu() []string {
	offered := e.Available()
	if len(offered) == 0 {
		return []string{"There is nothing to do here."}
	}
	lines := []string{"You can:"}
	for i, a := range offered {
		lines = append(lines, fmt.Sprintf("  %d) %s", i+1, a.Title))
	}
	return lines
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
