package loader

import (
	"errors"
	"testing"

	"github.com/nathoo/roomscript/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLuaLocation_Helpers(t *testing.T) {
	src := `
return {
  description = "A grand hall.",
  actions = {
    Action("unlock door", "hasKey", { Set("isDoorOpen", true), GoTo("garden") }),
    Action("wait", "!isDoorOpen"),
  },
}`
	loc, err := LoadLuaLocation([]byte(src), "hall")
	require.NoError(t, err)

	assert.Equal(t, "hall", loc.Title)
	assert.Equal(t, "A grand hall.", loc.Description)
	require.Len(t, loc.Actions, 2)
	assert.Equal(t, []types.Directive{
		types.SetProperty{Property: "isDoorOpen", Value: true},
		types.GoTo{Location: "garden"},
	}, loc.Actions[0].Directives)
	assert.Equal(t, types.Not{Inner: types.IsPropertyTrue{Property: "isDoorOpen"}}, loc.Actions[1].Condition)
	assert.Empty(t, loc.Actions[1].Directives)
}

func TestLoadLuaLocation_PlainTables(t *testing.T) {
	src := `
local rooms = { "cellar", "attic" }
local actions = {}
for i, r in ipairs(rooms) do
  actions[i] = { ["go to " .. r] = { ["lamp" .. i] = { "goto " .. r } } }
end
return { description = string.format("%d ways out.", #rooms), actions = actions }`

	loc, err := LoadLuaLocation([]byte(src), "landing")
	require.NoError(t, err)

	assert.Equal(t, "2 ways out.", loc.Description)
	require.Len(t, loc.Actions, 2)
	assert.Equal(t, "go to cellar", loc.Actions[0].Title)
	assert.Equal(t, types.IsPropertyTrue{Property: "lamp1"}, loc.Actions[0].Condition)
	assert.Equal(t, []types.Directive{types.GoTo{Location: "attic"}}, loc.Actions[1].Directives)
}

func TestLoadLuaLocation_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
		msg  string
	}{
		{name: "syntax error", src: "return {", msg: "not valid Lua"},
		{name: "runtime error", src: `error("boom")`, msg: "running Lua document"},
		{name: "returns nothing", src: "local x = 1", msg: "must return a table"},
		{name: "returns string", src: `return "hall"`, msg: "must return a table"},
		{name: "empty table", src: "return {}", msg: "must be a mapping"},
		{name: "missing description", src: "return { actions = {} }", msg: `missing required key "description"`},
		{
			name: "description a number",
			src:  "return { description = 7 }",
			path: "description",
			msg:  "must be a string",
		},
		{
			name: "function value",
			src:  "return { description = function() end }",
			path: "description",
			msg:  "unsupported Lua value",
		},
		{
			name: "mixed table",
			src:  `return { description = "x", actions = { "a", b = 1 } }`,
			path: "actions",
			msg:  "mixes list entries",
		},
		{
			name: "two titles",
			src:  `return { description = "x", actions = { { a = { c = {} }, b = { c = {} } } } }`,
			path: "actions[0]",
			msg:  "found 2 keys",
		},
		{
			name: "bad helper directive",
			src:  `return { description = "x", actions = { Action("a", "c", { "set door maybe" }) } }`,
			path: `actions[0]["a"]["c"][0]`,
			msg:  "invalid directive",
		},
		{
			name: "bad helper argument",
			src:  `return { description = "x", actions = { Action("a", "c", { Set("door", "yes") }) } }`,
			msg:  "running Lua document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLuaLocation([]byte(tt.src), "hall")
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "expected *LoadError, got %T", err)
			assert.Equal(t, tt.path, le.Path)
			assert.Contains(t, le.Error(), tt.msg)
		})
	}
}

func TestLoadLuaLocation_Sandbox(t *testing.T) {
	for _, global := range []string{"dofile", "loadfile", "load", "loadstring", "print", "io", "os", "require"} {
		src := `return { description = type(` + global + `) }`

		loc, err := LoadLuaLocation([]byte(src), "box")
		require.NoError(t, err, global)
		assert.Equal(t, "nil", loc.Description, "%s should not be reachable", global)
	}

	loc, err := LoadLuaLocation([]byte(`return { description = type(math.random) .. type(math.floor) }`), "box")
	require.NoError(t, err)
	assert.Equal(t, "nilfunction", loc.Description)
}

func TestLoadLuaLocation_Timeout(t *testing.T) {
	if testing.Short() {
		t.Skip("runs until the document deadline")
	}
	_, err := LoadLuaLocation([]byte("while true do end"), "spin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running Lua document")
}
