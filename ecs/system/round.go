package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/spatial"
)

// RoundSystem scores knockouts and resets the round after a short pause.
type RoundSystem struct {
	logger *zap.Logger
	// ResetFrames is the pause between a knockout and the reset.
	ResetFrames int

	pending int
	round   int
	scores  map[component.Team]int
}

func NewRoundSystem(logger *zap.Logger, resetFrames int) *RoundSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoundSystem{
		logger:      logger.Named("round"),
		ResetFrames: resetFrames,
		round:       1,
		scores:      map[component.Team]int{},
	}
}

// Round is the current round number, starting at 1.
func (s *RoundSystem) Round() int { return s.round }

// Score returns the knockouts credited to team.
func (s *RoundSystem) Score(team component.Team) int { return s.scores[team] }

func (s *RoundSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	for _, d := range ecs.Events[ecs.DeathEvent](w) {
		if f, ok := ecs.Get(w, d.Killer, component.FighterComponent.Kind()); ok {
			s.scores[f.Team]++
		}
		if s.pending == 0 {
			s.pending = max(s.ResetFrames, 1)
		}
	}
	if s.pending == 0 {
		return
	}
	s.pending--
	if s.pending == 0 {
		s.Reset(w)
	}
}

// Reset puts every fighter back on its spawn with full health and no
// attacks in flight.
func (s *RoundSystem) Reset(w *ecs.World) {
	s.pending = 0
	s.round++
	ecs.ForEach2(w, component.FighterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, f *component.Fighter, obj *spatial.Object) {
		obj.SetPosition(f.SpawnX, f.SpawnY, 0)
		if f.SpawnFacing != 0 {
			f.Facing = f.SpawnFacing
			obj.SetScale(f.Facing, 1, 1)
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			h.Current = h.Initial
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			*v = component.Velocity{}
		}
		if set, ok := ecs.Get(w, e, component.HitboxSetComponent.Kind()); ok {
			clear(set.Attacks)
			set.Attacks = set.Attacks[:0]
		}
		ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		ecs.Remove(w, e, component.CooldownComponent.Kind())
		ecs.Remove(w, e, component.HitFreezeRequestComponent.Kind())
	})
	s.logger.Info("round start", zap.Int("round", s.round))
}
