package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/prefabs"
	"github.com/milk9111/fighter/spatial"
)

// scriptRuntime is one entity's compiled copy of its script. Globals are
// reset and read back every tick.
type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	failed   bool
}

// ScriptSystem drives Input from tengo scripts. A script sees the globals dx,
// dy (opponent offset), grounded and tick, and sets move, jump and attack.
type ScriptSystem struct {
	logger *zap.Logger
	load   func(path string) ([]byte, error)

	base     map[string]*tengo.Compiled
	runtimes map[ecs.Entity]*scriptRuntime
	tick     int
}

// NewScriptSystem returns a script system reading sources through load,
// which defaults to the embedded prefab scripts.
func NewScriptSystem(logger *zap.Logger, load func(path string) ([]byte, error)) *ScriptSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ScriptSystem{
		logger:   logger.Named("script"),
		load:     load,
		base:     map[string]*tengo.Compiled{},
		runtimes: map[ecs.Entity]*scriptRuntime{},
	}
}

// Invalidate drops every compiled script so the next tick reloads them.
func (s *ScriptSystem) Invalidate() {
	clear(s.base)
	clear(s.runtimes)
}

func (s *ScriptSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	s.tick++

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach3(w, component.ScriptComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.Script, input *component.Input, self *spatial.Object) {
		rt, err := s.runtime(e, sc.Path)
		if err != nil {
			if rt != nil && !rt.failed {
				rt.failed = true
				s.logger.Error("load script", zap.Stringer("entity", e), zap.String("path", sc.Path), zap.Error(err))
			}
			*input = component.Input{}
			return
		}

		dx, dy := 0.0, 0.0
		if opp, ok := opponent(w, e); ok {
			dx = opp.X() - self.X()
			dy = opp.Y() - self.Y()
		}
		grounded := ecs.Has(w, e, component.GroundedComponent.Kind())

		if err := s.run(rt, dx, dy, grounded); err != nil {
			s.logger.Warn("script run", zap.Stringer("entity", e), zap.String("path", sc.Path), zap.Error(err))
			*input = component.Input{}
			return
		}

		attack := rt.compiled.Get("attack").Bool()
		jump := rt.compiled.Get("jump").Bool()
		input.MoveX = clampUnit(rt.compiled.Get("move").Float())
		input.JumpPressed = jump && !input.Jump
		input.Jump = jump
		input.AttackPressed = attack
	})
}

func (s *ScriptSystem) run(rt *scriptRuntime, dx, dy float64, grounded bool) error {
	c := rt.compiled
	for name, v := range map[string]any{
		"dx":       dx,
		"dy":       dy,
		"grounded": grounded,
		"tick":     s.tick,
		"move":     0.0,
		"jump":     false,
		"attack":   false,
	} {
		if err := c.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return c.Run()
}

// runtime returns e's compiled script. A failed load is remembered so the
// error is logged once rather than every tick.
func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.path == path {
		if rt.failed {
			return rt, fmt.Errorf("script %s failed to load", path)
		}
		return rt, nil
	}

	rt := &scriptRuntime{path: path}
	s.runtimes[e] = rt

	base, ok := s.base[path]
	if !ok {
		var err error
		base, err = s.compile(path)
		if err != nil {
			return rt, err
		}
		s.base[path] = base
	}
	rt.compiled = base.Clone()
	return rt, nil
}

func (s *ScriptSystem) compile(path string) (*tengo.Compiled, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("dx", 0.0)
	_ = script.Add("dy", 0.0)
	_ = script.Add("grounded", false)
	_ = script.Add("tick", 0)
	_ = script.Add("move", 0.0)
	_ = script.Add("jump", false)
	_ = script.Add("attack", false)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return compiled, nil
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
