package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
)

// CombatSystem applies strikes reported by collision this tick.
type CombatSystem struct {
	logger *zap.Logger
}

func NewCombatSystem(logger *zap.Logger) *CombatSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatSystem{logger: logger.Named("combat")}
}

func (s *CombatSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames == 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})

	for _, c := range ecs.Events[ecs.ContactEvent](w) {
		if c.Outcome.Kind != hitbox.OutcomeStruck {
			continue
		}
		s.strike(w, c)
	}
}

func (s *CombatSystem) strike(w *ecs.World, c ecs.ContactEvent) {
	attacker, target := c.Subject, c.Other
	if attacker == target {
		return
	}
	if af, ok := ecs.Get(w, attacker, component.FighterComponent.Kind()); ok {
		if tf, ok := ecs.Get(w, target, component.FighterComponent.Kind()); ok && !component.CanHit(af.Team, tf.Team) {
			return
		}
	}
	if ecs.Has(w, target, component.InvulnerableComponent.Kind()) {
		return
	}
	health, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok || health.Dead() {
		return
	}

	health.Current -= c.Outcome.Damage
	if health.Current < 0 {
		health.Current = 0
	}

	if vel, ok := ecs.Get(w, target, component.VelocityComponent.Kind()); ok {
		vel.X = c.Outcome.KnockbackX
		vel.Y = c.Outcome.KnockbackY
	}
	if tf, ok := ecs.Get(w, target, component.FighterComponent.Kind()); ok && tf.InvulnFrames > 0 {
		if err := ecs.Add(w, target, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: tf.InvulnFrames}); err != nil {
			s.logger.Error("add invulnerable", zap.Stringer("entity", target), zap.Error(err))
		}
	}

	if af, ok := ecs.Get(w, attacker, component.FighterComponent.Kind()); ok && af.Move.FreezeFrames > 0 {
		if err := ecs.Add(w, target, component.HitFreezeRequestComponent.Kind(), &component.HitFreezeRequest{Frames: af.Move.FreezeFrames}); err != nil {
			s.logger.Error("add hit freeze", zap.Stringer("entity", target), zap.Error(err))
		}
	}

	w.Events().Push(ecs.HitEvent{
		Attacker:  attacker,
		Target:    target,
		AttackID:  c.AttackID,
		Damage:    c.Outcome.Damage,
		Remaining: health.Current,
	})
	s.logger.Debug("hit",
		zap.Stringer("attacker", attacker),
		zap.Stringer("target", target),
		zap.Int("damage", c.Outcome.Damage),
		zap.Int("remaining", health.Current),
	)

	if health.Dead() {
		w.Events().Push(ecs.DeathEvent{Entity: target, Killer: attacker})
		s.logger.Info("defeated", zap.Stringer("entity", target), zap.Stringer("by", attacker))
	}
}
