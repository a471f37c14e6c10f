package loader

import (
	"fmt"

	"github.com/nathoo/roomscript/engine/rules"
	"github.com/nathoo/roomscript/engine/state"
	"github.com/nathoo/roomscript/types"
)

// Warning is a suspicious but legal construct in a loaded world. Warnings
// never fail a load.
type Warning struct {
	File     string
	Location types.LocationID
	Msg      string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (%s): %s", w.Location, w.File, w.Msg)
}

// Warnings reports goto targets that name no location and properties that
// some condition reads but no directive ever sets. Results are ordered by
// location identifier, then by action.
func Warnings(world *state.World) []Warning {
	set := map[types.PropertyID]bool{}
	for _, loc := range world.Locations {
		for _, a := range loc.Actions {
			for _, d := range a.Directives {
				if sp, ok := d.(types.SetProperty); ok {
					set[sp.Property] = true
				}
			}
		}
	}

	var out []Warning
	for _, id := range world.IDs() {
		loc := world.Locations[id]
		warn := func(format string, args ...any) {
			out = append(out, Warning{File: loc.Source, Location: id, Msg: fmt.Sprintf(format, args...)})
		}
		for _, a := range loc.Actions {
			for _, p := range rules.Properties(a.Condition) {
				if !set[p] {
					warn("action %q reads property %q, which no directive sets", a.Title, p)
				}
			}
			for _, d := range a.Directives {
				if g, ok := d.(types.GoTo); ok {
					if _, defined := world.Location(g.Location); !defined {
						warn("action %q goes to undefined location %q", a.Title, g.Location)
					}
				}
			}
		}
	}
	return out
}
