// Package script runs garden button actions written in Lua.
//
// Each action is a global Lua function taking the label of the button that
// was clicked. Scripts reach the scene through a small API:
//
//	spawn(model, x, y, z, scale)          -- place a model
//	spawn_random(kind, x, y, z, scale)    -- place a random model of a kind, returns its id
//	remove_button(label)                  -- take a button out of the scene
//	fly_to(x, y, z)                       -- move the camera focus
//	models(kind)                          -- list catalog ids
//	log(message)
package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/phanxgames/arbor"
)

// ErrNoAction is returned by Run when no Lua function has the given name.
var ErrNoAction = errors.New("script: no such action")

// Host is the scene surface exposed to scripts.
type Host interface {
	Spawn(model string, pos arbor.Vec3, scale float64) error
	SpawnRandom(kind string, pos arbor.Vec3, scale float64) (string, error)
	RemoveButton(label string) bool
	FlyTo(target arbor.Vec3)
	Models(kind string) []string
}

// Engine wraps a single gopher-lua VM. Single-goroutine access only (the
// World loop).
type Engine struct {
	vm   *lua.LState
	host Host
	log  *zap.Logger
}

// NewEngine creates a Lua engine with the scene API registered.
func NewEngine(host Host, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, host: host, log: log}
	vm.SetGlobal("spawn", vm.NewFunction(e.luaSpawn))
	vm.SetGlobal("spawn_random", vm.NewFunction(e.luaSpawnRandom))
	vm.SetGlobal("remove_button", vm.NewFunction(e.luaRemoveButton))
	vm.SetGlobal("fly_to", vm.NewFunction(e.luaFlyTo))
	vm.SetGlobal("models", vm.NewFunction(e.luaModels))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))
	return e
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// LoadDir loads all .lua files in dir. A missing directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs Lua source, typically to define actions.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

// HasAction reports whether a global Lua function named action exists.
func (e *Engine) HasAction(action string) bool {
	_, ok := e.vm.GetGlobal(action).(*lua.LFunction)
	return ok
}

// Run calls the action function with the button label.
func (e *Engine) Run(action, label string) error {
	fn, ok := e.vm.GetGlobal(action).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoAction, action)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(label)); err != nil {
		e.log.Error("lua action error", zap.String("action", action), zap.Error(err))
		return fmt.Errorf("run %s: %w", action, err)
	}
	return nil
}

// --- Scene API ---

func checkVec(L *lua.LState, first int) arbor.Vec3 {
	return arbor.Vec3{
		X: float64(L.CheckNumber(first)),
		Y: float64(L.CheckNumber(first + 1)),
		Z: float64(L.CheckNumber(first + 2)),
	}
}

func (e *Engine) luaSpawn(L *lua.LState) int {
	model := L.CheckString(1)
	pos := checkVec(L, 2)
	scale := float64(L.OptNumber(5, 1))
	if err := e.host.Spawn(model, pos, scale); err != nil {
		L.RaiseError("spawn %s: %s", model, err.Error())
	}
	return 0
}

func (e *Engine) luaSpawnRandom(L *lua.LState) int {
	kind := L.CheckString(1)
	pos := checkVec(L, 2)
	scale := float64(L.OptNumber(5, 1))
	id, err := e.host.SpawnRandom(kind, pos, scale)
	if err != nil {
		L.RaiseError("spawn_random %s: %s", kind, err.Error())
	}
	L.Push(lua.LString(id))
	return 1
}

func (e *Engine) luaRemoveButton(L *lua.LState) int {
	L.Push(lua.LBool(e.host.RemoveButton(L.CheckString(1))))
	return 1
}

func (e *Engine) luaFlyTo(L *lua.LState) int {
	e.host.FlyTo(checkVec(L, 1))
	return 0
}

func (e *Engine) luaModels(L *lua.LState) int {
	t := L.NewTable()
	for _, id := range e.host.Models(L.OptString(1, "")) {
		t.Append(lua.LString(id))
	}
	L.Push(t)
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info(L.CheckString(1), zap.String("source", "lua"))
	return 0
}
