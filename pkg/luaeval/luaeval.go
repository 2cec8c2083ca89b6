// Package luaeval implements an evaluator scripted in Lua.
//
// The script must define a global function eval, which is called with each
// submitted line and returns the text to show:
//
//	function eval(line)
//	  if line == "exit" then exit(0) end
//	  return "Line: " .. line
//	end
//
// Besides the base, table, string and math libraries, the script can call
// exit(code) to end the process.
package luaeval

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/synterm/synterm/pkg/logutil"
)

var logger = logutil.GetLogger("[luaeval] ")

const evalFn = "eval"

// ScriptError is returned when a script cannot be loaded.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Evaluator evaluates lines by calling the eval function of a Lua script. It
// is not safe for concurrent use.
type Evaluator struct {
	L  *lua.LState
	fn lua.LValue
	// Called by the exit builtin.
	exit func(int)
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithExit replaces os.Exit as the implementation of the exit builtin.
func WithExit(f func(int)) Option {
	return func(e *Evaluator) { e.exit = f }
}

// Load loads the script at path.
func Load(path string, opts ...Option) (*Evaluator, error) {
	return load(path, func(L *lua.LState) error { return L.DoFile(path) }, opts)
}

// LoadString loads a script from a string. The name is only used in error
// messages.
func LoadString(name, code string, opts ...Option) (*Evaluator, error) {
	return load(name, func(L *lua.LState) error { return L.DoString(code) }, opts)
}

func load(name string, do func(*lua.LState) error, opts []Option) (*Evaluator, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	e := &Evaluator{L: L, exit: os.Exit}
	for _, opt := range opts {
		opt(e)
	}
	L.SetGlobal("exit", L.NewFunction(e.luaExit))

	if err := do(L); err != nil {
		L.Close()
		return nil, &ScriptError{name, err}
	}
	fn := L.GetGlobal(evalFn)
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, &ScriptError{name,
			fmt.Errorf("%s is not a function (got %s)", evalFn, fn.Type())}
	}
	e.fn = fn
	logger.Printf("loaded %s", name)
	return e, nil
}

func (e *Evaluator) luaExit(L *lua.LState) int {
	e.exit(L.OptInt(1, 0))
	return 0
}

// Eval calls the eval function with line. Errors raised by the script are
// returned as the text to show.
func (e *Evaluator) Eval(line string) string {
	err := e.L.CallByParam(lua.P{Fn: e.fn, NRet: 1, Protect: true}, lua.LString(line))
	if err != nil {
		logger.Printf("eval %q: %v", line, err)
		return "error: " + err.Error()
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)
	if ret == lua.LNil {
		return ""
	}
	return ret.String()
}

// Close releases the Lua state.
func (e *Evaluator) Close() {
	e.L.Close()
}
