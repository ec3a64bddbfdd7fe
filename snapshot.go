package main

import (
	"fmt"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/ecs/system"
	"github.com/milk9111/fighter/spatial"
)

type fighterSnapshot struct {
	Name    string  `yaml:"name"`
	Team    int     `yaml:"team"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	VX      float64 `yaml:"vx"`
	VY      float64 `yaml:"vy"`
	Facing  float64 `yaml:"facing"`
	Health  int     `yaml:"health"`
	Attacks int     `yaml:"attacks"`
}

// snapshot is what the copy key puts on the clipboard: enough to paste into
// a bug report or a test fixture.
type snapshot struct {
	Tick     uint64            `yaml:"tick"`
	Hash     string            `yaml:"hash"`
	Round    int               `yaml:"round"`
	Fighters []fighterSnapshot `yaml:"fighters"`
}

func takeSnapshot(w *ecs.World, tick uint64, round int) snapshot {
	s := snapshot{
		Tick:  tick,
		Hash:  fmt.Sprintf("%016x", system.StateHash(w)),
		Round: round,
	}
	ecs.ForEach2(w, component.FighterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, f *component.Fighter, obj *spatial.Object) {
		fs := fighterSnapshot{
			Name:   f.Name,
			Team:   int(f.Team),
			X:      obj.X(),
			Y:      obj.Y(),
			Facing: f.Facing,
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			fs.VX, fs.VY = v.X, v.Y
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			fs.Health = h.Current
		}
		if set, ok := ecs.Get(w, e, component.HitboxSetComponent.Kind()); ok {
			fs.Attacks = len(set.Attacks)
		}
		s.Fighters = append(s.Fighters, fs)
	})
	return s
}

func (s snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// clipboardWriter initialises the system clipboard on first use. Headless
// sessions have none, so failure is remembered and reported once.
type clipboardWriter struct {
	ready bool
	err   error
}

func (c *clipboardWriter) Write(data []byte) error {
	if !c.ready && c.err == nil {
		if err := clipboard.Init(); err != nil {
			c.err = fmt.Errorf("clipboard: %w", err)
		} else {
			c.ready = true
		}
	}
	if c.err != nil {
		return c.err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
