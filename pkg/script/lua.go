package script

import (
	"bytes"
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

// ConfigFunction is the global a Lua script may define to return its
// configuration table explicitly.
const ConfigFunction = "config"

// LuaRunner evaluates Lua configuration scripts in an embedded interpreter.
//
// If the script defines a global function named [ConfigFunction], the table
// it returns is the result. Otherwise every global the script created is
// returned, functions excepted.
type LuaRunner struct{}

// NewLuaRunner returns a LuaRunner.
func NewLuaRunner() *LuaRunner {
	return &LuaRunner{}
}

// Run executes the script at path.
func (r *LuaRunner) Run(ctx context.Context, path string) (map[string]any, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)
	openSafeLibraries(L)

	before := globalNames(L)

	fn, err := L.Load(bytes.NewReader(data), path)
	if err != nil {
		return nil, scriptError(path, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, scriptError(path, err)
	}

	if cfg, ok := L.GetGlobal(ConfigFunction).(*lua.LFunction); ok {
		if err := L.CallByParam(lua.P{Fn: cfg, NRet: 1, Protect: true}); err != nil {
			return nil, scriptError(path, err)
		}
		ret := L.Get(-1)
		L.Pop(1)

		tbl, ok := ret.(*lua.LTable)
		if !ok {
			return nil, scriptError(path, errors.Newf("%s() returned %s, want a table", ConfigFunction, ret.Type()))
		}
		values, ok := tableToGo(tbl, make(map[*lua.LTable]bool)).(map[string]any)
		if !ok {
			return nil, scriptError(path, errors.Newf("%s() returned a list, want a table", ConfigFunction))
		}
		return values, nil
	}

	values := make(map[string]any)
	L.G.Global.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok || before[string(name)] {
			return
		}
		if _, isFn := v.(*lua.LFunction); isFn {
			return
		}
		values[string(name)] = toGo(v, make(map[*lua.LTable]bool))
	})
	return values, nil
}

// openSafeLibraries opens the libraries a configuration script needs and
// nothing that reaches the filesystem or the process.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func globalNames(L *lua.LState) map[string]bool {
	names := make(map[string]bool)
	L.G.Global.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			names[string(s)] = true
		}
	})
	return names
}

func toGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
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
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

// tableToGo returns a slice for tables with contiguous integer keys from 1,
// a map otherwise.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	maxN, count := 0, 0
	isArray := true
	t.ForEach(func(k, _ lua.LValue) {
		count++
		if kn, ok := k.(lua.LNumber); ok {
			if n := int(kn); float64(n) == float64(kn) && n > 0 {
				maxN = max(maxN, n)
				return
			}
		}
		isArray = false
	})

	if isArray && maxN > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = toGo(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprint(float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGo(v, visited)
	})
	return m
}
