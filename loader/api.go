package loader

import (
	"github.com/nathoo/roomscript/types"
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the authoring helpers available to Lua documents.
// Every helper builds plain tables and strings, so a document written
// without them is equally valid.
func registerAPI(L *lua.LState) {
	// Action("title", "condition", { directives... }) returns the
	// single-entry table { title = { condition = directives } }.
	L.SetGlobal("Action", L.NewFunction(func(L *lua.LState) int {
		title := L.CheckString(1)
		cond := L.CheckString(2)
		directives := L.OptTable(3, L.NewTable())

		details := L.NewTable()
		details.RawSetString(cond, directives)
		tbl := L.NewTable()
		tbl.RawSetString(title, details)
		L.Push(tbl)
		return 1
	}))

	// Set("prop", value) returns the directive line "set prop value".
	L.SetGlobal("Set", L.NewFunction(func(L *lua.LState) int {
		prop := L.CheckString(1)
		value := L.CheckBool(2)
		d := types.SetProperty{Property: types.PropertyID(prop), Value: value}
		L.Push(lua.LString(d.String()))
		return 1
	}))

	// GoTo("location") returns the directive line "goto location".
	L.SetGlobal("GoTo", L.NewFunction(func(L *lua.LState) int {
		loc := L.CheckString(1)
		d := types.GoTo{Location: types.LocationID(loc)}
		L.Push(lua.LString(d.String()))
		return 1
	}))
}
