// Package state holds the loaded world and manages the mutable game state.
package state

import (
	"sort"

	"github.com/nathoo/roomscript/types"
)

// World holds the immutable location definitions loaded from disk.
type World struct {
	Locations map[types.LocationID]types.Location
}

// NewWorld indexes locations by identifier. Callers must ensure identifiers
// are unique; the loader rejects duplicates before calling this.
func NewWorld(locations []types.Location) *World {
	w := &World{Locations: make(map[types.LocationID]types.Location, len(locations))}
	for _, loc := range locations {
		w.Locations[loc.ID()] = loc
	}
	return w
}

// Location returns the location with the given identifier.
func (w *World) Location(id types.LocationID) (types.Location, bool) {
	loc, ok := w.Locations[id]
	return loc, ok
}

// IDs returns every location identifier in sorted order.
func (w *World) IDs() []types.LocationID {
	ids := make([]types.LocationID, 0, len(w.Locations))
	for id := range w.Locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NewState creates a fresh game state at the given location with no
// properties set.
func NewState(start types.LocationID) *types.GameState {
	return &types.GameState{
		Location:   start,
		Properties: map[types.PropertyID]bool{},
	}
}

// GetProperty returns the value of a property. Unset properties return false.
func GetProperty(s *types.GameState, id types.PropertyID) bool {
	return s.Properties[id]
}

// TrueProperties returns the names of all properties currently true, sorted.
func TrueProperties(s *types.GameState) []types.PropertyID {
	var ids []types.PropertyID
	for id, v := range s.Properties {
		if v {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy of the state.
func Clone(s *types.GameState) *types.GameState {
	c := &types.GameState{
		Location:   s.Location,
		Properties: make(map[types.PropertyID]bool, len(s.Properties)),
		TurnCount:  s.TurnCount,
	}
	for k, v := range s.Properties {
		c.Properties[k] = v
	}
	return c
}
