package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
	"github.com/milk9111/fighter/spatial"
)

// FighterSystem turns Input into velocity, facing and attack hitboxes.
type FighterSystem struct {
	logger *zap.Logger
}

func NewFighterSystem(logger *zap.Logger) *FighterSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FighterSystem{logger: logger.Named("fighter")}
}

func (s *FighterSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CooldownComponent.Kind(), func(e ecs.Entity, cd *component.Cooldown) {
		cd.Frames--
		if cd.Frames <= 0 {
			ecs.Remove(w, e, component.CooldownComponent.Kind())
		}
	})

	ecs.ForEach4(w, component.FighterComponent.Kind(), component.InputComponent.Kind(), component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, f *component.Fighter, input *component.Input, vel *component.Velocity, obj *spatial.Object) {
		// A struck fighter keeps its knockback until the immunity runs out.
		if ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
			return
		}
		vel.X = input.MoveX * f.MoveSpeed
		if input.MoveX > 0 {
			f.Facing = 1
		} else if input.MoveX < 0 {
			f.Facing = -1
		}
		if f.Facing == 0 {
			f.Facing = 1
		}
		obj.SetScale(f.Facing, 1, 1)

		if input.JumpPressed && ecs.Has(w, e, component.GroundedComponent.Kind()) {
			vel.Y = f.JumpSpeed
		}

		if !input.AttackPressed || ecs.Has(w, e, component.CooldownComponent.Kind()) {
			return
		}
		set, ok := ecs.Get(w, e, component.HitboxSetComponent.Kind())
		if !ok {
			return
		}
		atk := hitbox.NewAttack(obj, f.Move.Bounds, f.Move.Attack)
		set.Attacks = append(set.Attacks, atk)
		if f.Move.CooldownFrames > 0 {
			if err := ecs.Add(w, e, component.CooldownComponent.Kind(), &component.Cooldown{Frames: f.Move.CooldownFrames}); err != nil {
				s.logger.Error("add cooldown", zap.Stringer("entity", e), zap.Error(err))
			}
		}
		s.logger.Debug("attack",
			zap.String("fighter", f.Name),
			zap.Stringer("id", atk.ID),
			zap.Float64("facing", f.Facing),
		)
	})
}

// opponent returns the transform of the nearest fighter that e may strike.
func opponent(w *ecs.World, e ecs.Entity) (*spatial.Object, bool) {
	self, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	team := component.TeamNeutral
	if f, ok := ecs.Get(w, e, component.FighterComponent.Kind()); ok {
		team = f.Team
	}

	var best *spatial.Object
	bestDist := 0.0
	ecs.ForEach2(w, component.FighterComponent.Kind(), component.TransformComponent.Kind(), func(other ecs.Entity, f *component.Fighter, obj *spatial.Object) {
		if other == e || !component.CanHit(team, f.Team) {
			return
		}
		dx := obj.X() - self.X()
		dy := obj.Y() - self.Y()
		d := dx*dx + dy*dy
		if best == nil || d < bestDist {
			best, bestDist = obj, d
		}
	})
	return best, best != nil
}
