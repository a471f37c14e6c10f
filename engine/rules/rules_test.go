package rules

import (
	"testing"

	"github.com/nathoo/roomscript/engine/parser"
	"github.com/nathoo/roomscript/engine/state"
	"github.com/nathoo/roomscript/types"
)

func menuLocation() types.Location {
	return types.Location{
		Title:       "hall",
		Description: "A grand hall.",
		Actions: []types.Action{
			{
				Title:      "unlock door",
				Condition:  parser.MustParseCondition("hasKey & !doorOpen"),
				Directives: []types.Directive{types.SetProperty{Property: "doorOpen", Value: true}},
			},
			{
				Title:      "search the floor",
				Condition:  parser.MustParseCondition("!hasKey"),
				Directives: []types.Directive{types.SetProperty{Property: "hasKey", Value: true}},
			},
			{
				Title:      "go through the door",
				Condition:  parser.MustParseCondition("doorOpen"),
				Directives: []types.Directive{types.GoTo{Location: "garden"}},
			},
		},
	}
}

func titles(actions []types.Action) []string {
	var out []string
	for _, a := range actions {
		out = append(out, a.Title)
	}
	return out
}

func TestAvailableActions(t *testing.T) {
	loc := menuLocation()

	tests := []struct {
		name  string
		props map[types.PropertyID]bool
		want  []string
	}{
		{
			name: "fresh state",
			want: []string{"search the floor"},
		},
		{
			name:  "holding the key",
			props: map[types.PropertyID]bool{"hasKey": true},
			want:  []string{"unlock door"},
		},
		{
			name:  "door open",
			props: map[types.PropertyID]bool{"hasKey": true, "doorOpen": true},
			want:  []string{"go through the door"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewState("hall")
			for k, v := range tt.props {
				s.Properties[k] = v
			}
			got := titles(AvailableActions(loc, s))
			if len(got) != len(tt.want) {
				t.Fatalf("AvailableActions() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("AvailableActions()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAvailableActions_KeepsDefinitionOrder(t *testing.T) {
	loc := types.Location{
		Title: "room",
		Actions: []types.Action{
			{Title: "third", Condition: parser.MustParseCondition("!x")},
			{Title: "first", Condition: parser.MustParseCondition("!x")},
			{Title: "second", Condition: parser.MustParseCondition("!x")},
		},
	}
	got := titles(AvailableActions(loc, state.NewState("room")))
	want := []string{"third", "first", "second"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableActions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAvailableActions_NoActions(t *testing.T) {
	loc := types.Location{Title: "void"}
	if got := AvailableActions(loc, state.NewState("void")); len(got) != 0 {
		t.Errorf("expected no actions, got %v", titles(got))
	}
}

func TestIsAvailable(t *testing.T) {
	action := menuLocation().Actions[0]
	s := state.NewState("hall")

	if IsAvailable(action, s) {
		t.Error("expected unlock door to be unavailable without key")
	}
	s.Properties["hasKey"] = true
	if !IsAvailable(action, s) {
		t.Error("expected unlock door to be available with key")
	}
}
