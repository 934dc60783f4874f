package language

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scriptedit/internal/library"
	"github.com/dshills/scriptedit/internal/naming"
	"github.com/dshills/scriptedit/internal/syntax"
)

// LuaTimeout bounds the run time of a library script.
var LuaTimeout = 5 * time.Second

// RunLuaLibrary runs the Lua script at path against tree.
func RunLuaLibrary(tree *library.Tree, def *syntax.Definition, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading library %s: %w", path, err)
	}
	return RunLuaString(tree, def, path, string(code))
}

// RunLuaString runs Lua source against tree. source names the script in
// errors.
func RunLuaString(tree *library.Tree, def *syntax.Definition, source, code string) error {
	L := newSandbox()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), LuaTimeout)
	defer cancel()
	L.SetContext(ctx)

	installLibraryModule(L, tree, def)

	if err := doWithRecovery(func() error { return L.DoString(code) }); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &ParseError{Path: source, Message: "script timed out", Err: ctx.Err()}
		}
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return nil
}

// newSandbox creates a state with only the base, table, string and math
// libraries, and without the functions that load code from disk.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// installLibraryModule exposes the "library" global table.
func installLibraryModule(L *lua.LState, tree *library.Tree, def *syntax.Definition) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"root": func(L *lua.LState) int {
			L.Push(lua.LNumber(library.Root))
			return 1
		},

		"add": func(L *lua.LState) int {
			parent := library.NodeID(L.CheckInt(1))
			name := L.CheckString(2)
			tooltip := L.OptString(3, "")
			closer := L.OptString(4, "")

			if !tree.Valid(parent) {
				L.ArgError(1, "unknown parent node")
				return 0
			}
			id, err := tree.Add(parent, name, tooltip, closer)
			if err != nil {
				L.RaiseError("library.add(%q): %s", name, err.Error())
				return 0
			}
			L.Push(lua.LNumber(id))
			return 1
		},

		"find": func(L *lua.LState) int {
			id := tree.GetItem(splitQualified(def, L.CheckString(1)))
			if id == library.NotFound {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LNumber(id))
			return 1
		},

		"unique": func(L *lua.LState) int {
			parent := library.NodeID(L.CheckInt(1))
			base := L.CheckString(2)
			if !tree.Valid(parent) {
				L.ArgError(1, "unknown parent node")
				return 0
			}
			L.Push(lua.LString(naming.UniqueDefaultName(base, tree.Names(parent))))
			return 1
		},

		"name": func(L *lua.LState) int {
			L.Push(lua.LString(naming.FunctionName(L.CheckString(1))))
			return 1
		},
	})
	L.SetGlobal("library", mod)
}

// splitQualified splits "Mesh.vertex" into its segments using the
// language joiner.
func splitQualified(def *syntax.Definition, path string) []string {
	joiner := syntax.DefaultJoiner
	if def != nil {
		joiner = def.Joiner()
		path = def.ReplaceOpen(def.StripParenGroups(path), joiner)
	}
	var out []string
	for _, p := range strings.Split(path, joiner) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
