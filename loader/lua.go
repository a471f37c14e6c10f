package loader

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/nathoo/roomscript/types"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

// luaTimeout bounds how long a single Lua document may run.
const luaTimeout = 2 * time.Second

// LoadLuaLocation compiles one Lua location document. The chunk runs in a
// sandboxed VM and must return a table with the same shape as a YAML
// document:
//
//	return {
//	  description = "A grand hall.",
//	  actions = {
//	    Action("unlock door", "hasKey", { Set("isDoorOpen", true), GoTo("garden") }),
//	  },
//	}
func LoadLuaLocation(source []byte, title string) (types.Location, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), luaTimeout)
	defer cancel()
	L.SetContext(ctx)

	openSafeLibs(L)
	sandbox(L)
	registerAPI(L)

	fn, err := L.Load(bytes.NewReader(source), title)
	if err != nil {
		return types.Location{}, &LoadError{Msg: "document is not valid Lua", Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return types.Location{}, &LoadError{Msg: "running Lua document", Err: err}
	}
	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return types.Location{}, &LoadError{
			Msg:   "Lua document must return a table",
			Value: ret.Type().String(),
		}
	}
	root, err := luaToNode(tbl, "")
	if err != nil {
		return types.Location{}, err
	}
	return compileDocument(root, title)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the document.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring", "require", "module",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Documents must load the same way every time.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}

// luaToNode converts a Lua value into the document tree the YAML path
// produces. Tables with keys 1..n become sequences, tables with string keys
// become mappings with sorted keys. Anything else is rejected.
func luaToNode(v lua.LValue, path string) (*yaml.Node, error) {
	switch val := v.(type) {
	case lua.LString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(val)}, nil
	case lua.LBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(val))}, nil
	case lua.LNumber:
		f := float64(val)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(f), 10)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	case *lua.LNilType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *lua.LTable:
		return tableToNode(val, path)
	default:
		return nil, &LoadError{
			Path:  path,
			Msg:   "unsupported Lua value",
			Value: v.Type().String(),
		}
	}
}

func tableToNode(tbl *lua.LTable, path string) (*yaml.Node, error) {
	var (
		n       int
		strKeys []string
		other   lua.LValue
	)
	tbl.ForEach(func(k, _ lua.LValue) {
		n++
		switch key := k.(type) {
		case lua.LString:
			strKeys = append(strKeys, string(key))
		case lua.LNumber:
		default:
			other = k
		}
	})
	if other != nil {
		return nil, &LoadError{Path: path, Msg: "table keys must be strings", Value: other.Type().String()}
	}

	// Sequence: only integer keys 1..n.
	if len(strKeys) == 0 {
		if tbl.MaxN() != n {
			return nil, &LoadError{Path: path, Msg: "list has holes or non-integer keys"}
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 1; i <= n; i++ {
			child, err := luaToNode(tbl.RawGetInt(i), fmt.Sprintf("%s[%d]", path, i-1))
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	}

	if len(strKeys) != n {
		return nil, &LoadError{Path: path, Msg: "table mixes list entries and named keys"}
	}
	sort.Strings(strKeys)
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range strKeys {
		childPath := k
		if path != "" {
			childPath = fmt.Sprintf("%s[%q]", path, k)
		}
		child, err := luaToNode(tbl.RawGetString(k), childPath)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			child)
	}
	return m, nil
}
