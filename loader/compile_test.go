package loader

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nathoo/roomscript/engine/parser"
	"github.com/nathoo/roomscript/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadLocation_Scenario(t *testing.T) {
	src := `
description: A grand hall.
actions:
  - unlock door:
      "hasKey & !isDoorOpen":
        - set isDoorOpen true
        - goto garden
`
	loc, err := LoadLocation([]byte(src), "hall")
	require.NoError(t, err)

	assert.Equal(t, "hall", loc.Title)
	assert.Equal(t, types.LocationID("hall"), loc.ID())
	assert.Equal(t, "A grand hall.", loc.Description)
	require.Len(t, loc.Actions, 1)
	assert.Equal(t, types.Action{
		Title: "unlock door",
		Condition: types.And{
			Left:  types.IsPropertyTrue{Property: "hasKey"},
			Right: types.Not{Inner: types.IsPropertyTrue{Property: "isDoorOpen"}},
		},
		Directives: []types.Directive{
			types.SetProperty{Property: "isDoorOpen", Value: true},
			types.GoTo{Location: "garden"},
		},
	}, loc.Actions[0])
}

func TestLoadLocation_ActionsOptional(t *testing.T) {
	for _, src := range []string{
		"description: Quiet.",
		"description: Quiet.\nactions:",
		"description: Quiet.\nactions: []",
	} {
		loc, err := LoadLocation([]byte(src), "room")
		require.NoError(t, err, src)
		assert.Empty(t, loc.Actions, src)
	}
}

func TestLoadLocation_PreservesActionOrder(t *testing.T) {
	src := `
description: Many doors.
actions:
  - c:
      x: []
  - a:
      x: []
  - b:
      x: []
`
	loc, err := LoadLocation([]byte(src), "doors")
	require.NoError(t, err)
	require.Len(t, loc.Actions, 3)
	assert.Equal(t, "c", loc.Actions[0].Title)
	assert.Equal(t, "a", loc.Actions[1].Title)
	assert.Equal(t, "b", loc.Actions[2].Title)
}

func TestLoadLocation_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
		msg  string
	}{
		{
			name: "not yaml",
			src:  "description: [unclosed",
			msg:  "not valid YAML",
		},
		{
			name: "empty document",
			src:  "",
			msg:  "empty",
		},
		{
			name: "not a mapping",
			src:  "- just\n- a list\n",
			msg:  "must be a mapping",
		},
		{
			name: "missing description",
			src:  "actions: []",
			msg:  `missing required key "description"`,
		},
		{
			name: "description not a string",
			src:  "description:\n  nested: map\n",
			path: "description",
			msg:  "must be a string",
		},
		{
			name: "description a number",
			src:  "description: 42",
			path: "description",
			msg:  "must be a string",
		},
		{
			name: "unknown key",
			src:  "description: Hall.\nexits: []\n",
			path: "exits",
			msg:  "unknown key",
		},
		{
			name: "actions not a sequence",
			src:  "description: Hall.\nactions:\n  open: door\n",
			path: "actions",
			msg:  "must be a sequence",
		},
		{
			name: "action is a string",
			src:  "description: Hall.\nactions:\n  - open door\n",
			path: "actions[0]",
			msg:  "exactly one title",
		},
		{
			name: "action with zero keys",
			src:  "description: Hall.\nactions:\n  - {}\n",
			path: "actions[0]",
			msg:  "found 0 keys",
		},
		{
			name: "details with two conditions",
			src:  "description: Hall.\nactions:\n  - open:\n      a: []\n      b: []\n",
			path: `actions[0]["open"]`,
			msg:  "exactly one condition",
		},
		{
			name: "details not a mapping",
			src:  "description: Hall.\nactions:\n  - open: [goto x]\n",
			path: `actions[0]["open"]`,
			msg:  "exactly one condition",
		},
		{
			name: "bad condition",
			src:  "description: Hall.\nactions:\n  - open:\n      \"a  & b\": []\n",
			path: `actions[0]["open"]`,
			msg:  "invalid condition",
		},
		{
			name: "directives not a sequence",
			src:  "description: Hall.\nactions:\n  - open:\n      a: goto x\n",
			path: `actions[0]["open"]["a"]`,
			msg:  "must be a sequence",
		},
		{
			name: "directive not a string",
			src:  "description: Hall.\nactions:\n  - open:\n      a:\n        - [goto, x]\n",
			path: `actions[0]["open"]["a"][0]`,
			msg:  "must be a string",
		},
		{
			name: "bad directive",
			src:  "description: Hall.\nactions:\n  - open:\n      a:\n        - goto x\n        - jump x\n",
			path: `actions[0]["open"]["a"][1]`,
			msg:  "invalid directive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLocation([]byte(tt.src), "hall")
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "expected *LoadError, got %T", err)
			assert.Equal(t, tt.path, le.Path)
			assert.Contains(t, le.Error(), tt.msg)
		})
	}
}

func TestLoadLocation_ErrorCarriesValueAndLine(t *testing.T) {
	src := "description: Hall.\nactions:\n  - open:\n      a:\n        - set door maybe\n"

	_, err := LoadLocation([]byte(src), "hall")

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, `"set door maybe"`, le.Value)
	assert.Equal(t, 5, le.Line)

	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "directive", pe.Kind)
}

func TestLoadLocation_Aliases(t *testing.T) {
	src := `
description: A hall with two doors.
actions:
  - read sign:
      hasLamp:
        - &back goto hall
  - open door:
      &cond hasKey: &dirs
        - set doorOpen true
        - *back
  - open again:
      *cond : *dirs
  - &peek {peek: {"!hasKey": []}}
  - *peek
`
	loc, err := LoadLocation([]byte(src), "hall")
	require.NoError(t, err)
	require.Len(t, loc.Actions, 5)

	hasKey := types.IsPropertyTrue{Property: "hasKey"}
	dirs := []types.Directive{
		types.SetProperty{Property: "doorOpen", Value: true},
		types.GoTo{Location: "hall"},
	}
	assert.Equal(t, []types.Directive{types.GoTo{Location: "hall"}}, loc.Actions[0].Directives)
	assert.Equal(t, types.Action{Title: "open door", Condition: hasKey, Directives: dirs}, loc.Actions[1])
	assert.Equal(t, types.Action{Title: "open again", Condition: hasKey, Directives: dirs}, loc.Actions[2])
	for _, a := range loc.Actions[3:] {
		assert.Equal(t, "peek", a.Title)
		assert.Equal(t, types.Not{Inner: hasKey}, a.Condition)
		assert.Empty(t, a.Directives)
	}
}

func TestLoadLocation_AliasedDescription(t *testing.T) {
	src := `
actions:
  - &name Ring the bell:
      bell: []
description: *name
`
	loc, err := LoadLocation([]byte(src), "belfry")
	require.NoError(t, err)
	assert.Equal(t, "Ring the bell", loc.Description)
}

func TestLoadLocation_DescriptionTrimmed(t *testing.T) {
	src := "description: |\n  Line one.\n  Line two.\n"

	loc, err := LoadLocation([]byte(src), "hall")
	require.NoError(t, err)
	assert.Equal(t, "Line one.\nLine two.", loc.Description)
}

func TestRawValue_TruncatesOnRuneBoundary(t *testing.T) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: "x" + strings.Repeat("é", 40)}

	got := rawValue(n)

	assert.True(t, utf8.ValidString(got), "truncated value %q is not valid UTF-8", got)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxValueLen)
}
