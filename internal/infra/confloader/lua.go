package confloader

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// LuaTimeout bounds the execution time of a Lua configuration chunk.
const LuaTimeout = 5 * time.Second

// LuaDriver parses .lua files. The file is a Lua chunk whose return value
// is the root table:
//
//	return {
//	  config_base = { db = { driver = "pdo_mysql" } },
//	}
//
// Chunks run in a fresh state with only the base, table, string and math
// libraries. A chunk that returns nothing yields an empty tree.
func LuaDriver() *FileDriver {
	return NewFileDriver("lua", "Lua", []string{".lua"}, decodeLua)
}

var luaLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

var luaBlockedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require"}

func decodeLua(data []byte) (map[string]any, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), LuaTimeout)
	defer cancel()
	L.SetContext(ctx)

	for _, lib := range luaLibs {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, fmt.Errorf("open %s library: %w", lib.name, err)
		}
	}
	for _, name := range luaBlockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	fn, err := L.Load(bytes.NewReader(data), "config")
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)

	switch v := ret.(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		m, ok := luaToGo(v, make(map[*lua.LTable]bool)).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("chunk must return a table of keys, got a sequence")
		}
		return m, nil
	default:
		return nil, fmt.Errorf("chunk must return a table, got %s", ret.Type())
	}
}

func luaToGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		// Cycles are cut rather than followed.
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return luaTableToGo(v, visited)
	default:
		return nil
	}
}

// luaTableToGo converts tables with contiguous 1..n integer keys to
// sequences and everything else to mappings. The empty table is a mapping.
func luaTableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isSeq, maxN, count := true, 0, 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) < 1 {
			isSeq = false
			return
		}
		maxN = max(maxN, int(kn))
	})
	if isSeq && maxN > 0 && count == maxN {
		seq := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			seq[i-1] = luaToGo(t.RawGetInt(i), visited)
		}
		return seq
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = strconv.FormatFloat(float64(kv), 'f', -1, 64)
		default:
			key = k.String()
		}
		m[key] = luaToGo(v, visited)
	})
	return m
}
