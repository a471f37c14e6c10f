// Package effects implements centralized state mutation via the Apply function.
// Every directive is one atomic operation. No logic in effects.
package effects

import (
	"github.com/nathoo/roomscript/types"
)

// Event types emitted by Apply.
const (
	EventPropertyChanged = "property_changed"
	EventLocationEntered = "location_entered"
)

// Apply applies a single directive to the game state, mutating it.
// Returns the events emitted.
func Apply(s *types.GameState, d types.Directive) []types.Event {
	switch d := d.(type) {
	case types.SetProperty:
		if s.Properties == nil {
			s.Properties = map[types.PropertyID]bool{}
		}
		s.Properties[d.Property] = d.Value
		return []types.Event{{
			Type: EventPropertyChanged,
			Data: map[string]any{"property": string(d.Property), "value": d.Value},
		}}

	case types.GoTo:
		from := s.Location
		s.Location = d.Location
		return []types.Event{{
			Type: EventLocationEntered,
			Data: map[string]any{"location": string(d.Location), "from": string(from)},
		}}

	default:
		// Unknown directive type: ignore.
		return nil
	}
}

// ApplyAll applies directives in order and returns every event emitted.
func ApplyAll(s *types.GameState, directives []types.Directive) []types.Event {
	var events []types.Event
	for _, d := range directives {
		events = append(events, Apply(s, d)...)
	}
	return events
}
