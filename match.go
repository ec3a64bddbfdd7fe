package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/fighter/arena"
	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
	"github.com/milk9111/fighter/prefabs"
	"github.com/milk9111/fighter/spatial"
)

// buildWorld spawns the arena and every fighter slot of a loaded match.
func buildWorld(m *prefabs.Match, logger *zap.Logger) (*ecs.World, *arena.Arena, error) {
	a, err := arena.FromSpec(m.Arena)
	if err != nil {
		return nil, nil, err
	}

	w := ecs.NewWorld()
	if _, err := a.Spawn(w, logger); err != nil {
		return nil, nil, err
	}

	for i, slot := range m.Spec.Fighters {
		spec, ok := m.Fighter(slot)
		if !ok {
			return nil, nil, fmt.Errorf("fighter %d: prefab %s not loaded", i, slot.Prefab)
		}
		if _, err := spawnFighter(w, a, slot, spec); err != nil {
			return nil, nil, fmt.Errorf("fighter %d (%s): %w", i, slot.Name, err)
		}
	}
	return w, a, nil
}

func spawnFighter(w *ecs.World, a *arena.Arena, slot prefabs.SlotSpec, spec prefabs.FighterSpec) (ecs.Entity, error) {
	body, err := spec.Body.Rect()
	if err != nil {
		return 0, err
	}
	if err := a.CheckSpawn(slot.X, slot.Y, body); err != nil {
		return 0, err
	}
	move, err := spec.Attack.Move()
	if err != nil {
		return 0, err
	}

	name := slot.Name
	if name == "" {
		name = spec.Name
	}
	gravity := 1.0
	if spec.GravityScale != nil {
		gravity = *spec.GravityScale
	}

	obj := spatial.NewObjectAt(slot.X, slot.Y)
	obj.SetScale(slot.Facing, 1, 1)

	e := ecs.CreateEntity(w)
	adds := []func() error{
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), obj) },
		func() error {
			return ecs.Add(w, e, component.HitboxSetComponent.Kind(), &component.HitboxSet{
				Body: hitbox.New(obj, body, hitbox.KindBody),
			})
		},
		func() error { return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}) },
		func() error {
			return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: gravity})
		},
		func() error {
			return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Initial: spec.Health, Current: spec.Health})
		},
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.FighterComponent.Kind(), &component.Fighter{
				Name:         name,
				Team:         component.Team(slot.Team),
				MoveSpeed:    spec.MoveSpeed,
				JumpSpeed:    spec.JumpSpeed,
				Facing:       slot.Facing,
				Move:         move,
				InvulnFrames: spec.InvulnFrames,
				SpawnX:       slot.X,
				SpawnY:       slot.Y,
				SpawnFacing:  slot.Facing,
			})
		},
	}
	if slot.Controls != nil {
		controls, err := slot.Controls.Controls()
		if err != nil {
			return 0, err
		}
		adds = append(adds, func() error { return ecs.Add(w, e, component.ControlsComponent.Kind(), &controls) })
	} else {
		adds = append(adds, func() error {
			return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: slot.Script})
		})
	}

	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}
	return e, nil
}
