// Package script runs user-supplied Lua transforms against buffer lines.
//
// A transform script defines a function:
//
//	function transform(lines)
//	  -- lines is a 1-based array of strings
//	  return lines
//	end
//
// Each run executes on a fresh, sandboxed Lua state: only the base, string,
// table, and math libraries are available, source loading is disabled, and
// execution is bounded by a timeout.
package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single transform execution.
const DefaultTimeout = 5 * time.Second

// Runner holds named transform scripts.
type Runner struct {
	mu      sync.RWMutex
	scripts map[string]string
	timeout time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout sets the per-run execution timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRunner creates an empty runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		scripts: make(map[string]string),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a script under the given name.
func (r *Runner) Register(name, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[name] = source
}

// LoadDir registers every .lua file in dir under its basename without
// extension. A missing directory is not an error.
func (r *Runner) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading script dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading script %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".lua")
		r.Register(name, string(data))
	}
	return nil
}

// Names returns the registered script names, sorted.
func (r *Runner) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transform runs the named script's transform function over lines and
// returns the resulting lines. The input slice is not modified.
func (r *Runner) Transform(ctx context.Context, name string, lines []string) ([]string, error) {
	r.mu.RLock()
	source, ok := r.scripts[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if err := openSafeLibs(L); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	L.SetContext(runCtx)

	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	fn := L.GetGlobal("transform")
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("script %s: %w", name, ErrNoTransform)
	}

	input := L.NewTable()
	for _, line := range lines {
		input.Append(lua.LString(line))
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, input); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	return tableToLines(name, ret)
}

// openSafeLibs loads the libraries a transform may use. Source-loading
// functions are removed so scripts cannot pull in code from disk.
func openSafeLibs(L *lua.LState) error {
	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return err
		}
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

func tableToLines(name string, v lua.LValue) ([]string, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script %s: %w (got %s)", name, ErrBadResult, v.Type())
	}

	n := tbl.Len()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		item := tbl.RawGetInt(i)
		str, ok := item.(lua.LString)
		if !ok {
			return nil, fmt.Errorf("script %s: %w (element %d is %s)", name, ErrBadResult, i, item.Type())
		}
		out = append(out, string(str))
	}
	return out, nil
}
