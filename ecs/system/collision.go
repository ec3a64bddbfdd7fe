package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/fighter/collision"
	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
	"github.com/milk9111/fighter/spatial"
)

// CollisionStats summarises the last tick for the debug overlay.
type CollisionStats struct {
	Tick     uint64
	Dynamic  int
	Static   int
	Pairs    int
	Contacts int
	Expired  int
}

// CollisionSystem gathers every hitbox in the world, runs one scheduler step
// and feeds the outcomes back into entity state.
type CollisionSystem struct {
	logger    *zap.Logger
	scheduler *collision.Scheduler[ecs.Entity]

	dynamic []collision.Entry[ecs.Entity]
	static  []collision.Entry[ecs.Entity]
	stats   CollisionStats
}

func NewCollisionSystem(logger *zap.Logger, strict bool) *CollisionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	sched := collision.NewScheduler[ecs.Entity](logger)
	sched.Strict = strict
	return &CollisionSystem{logger: logger.Named("collision"), scheduler: sched}
}

// Stats returns what the last Update did.
func (s *CollisionSystem) Stats() CollisionStats {
	return s.stats
}

func (s *CollisionSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	s.dynamic = s.dynamic[:0]
	s.static = s.static[:0]
	ecs.ForEach(w, component.HitboxSetComponent.Kind(), func(e ecs.Entity, set *component.HitboxSet) {
		for _, h := range set.All() {
			s.dynamic = append(s.dynamic, collision.Entry[ecs.Entity]{Owner: e, Box: h})
		}
	})
	ecs.ForEach(w, component.StaticTileComponent.Kind(), func(e ecs.Entity, tile *component.StaticTile) {
		if tile.Box != nil {
			s.static = append(s.static, collision.Entry[ecs.Entity]{Owner: e, Box: tile.Box})
		}
	})

	report := s.scheduler.Step(s.dynamic, s.static, dt)

	for _, c := range report.Contacts {
		if c.Outcome.Kind == hitbox.OutcomePushed {
			s.applyPush(w, c.Subject.Owner, c.Outcome.Push)
		}
		evt := ecs.ContactEvent{
			Subject:     c.Subject.Owner,
			Other:       c.Other.Owner,
			SubjectKind: c.Subject.Box.Kind,
			OtherKind:   c.Other.Box.Kind,
			Static:      c.Static,
			Outcome:     c.Outcome,
		}
		if c.Outcome.Kind == hitbox.OutcomeStruck {
			evt.AttackID = c.Subject.Box.ID
		}
		w.Events().Push(evt)
	}

	pruned := make(map[ecs.Entity]struct{}, len(report.Expired))
	for _, exp := range report.Expired {
		if _, done := pruned[exp.Owner]; done {
			continue
		}
		pruned[exp.Owner] = struct{}{}
		if set, ok := ecs.Get(w, exp.Owner, component.HitboxSetComponent.Kind()); ok {
			set.Prune()
		}
	}

	clear(s.dynamic)
	clear(s.static)
	s.stats = CollisionStats{
		Tick:     report.Tick,
		Dynamic:  len(s.dynamic),
		Static:   len(s.static),
		Pairs:    report.Pairs,
		Contacts: len(report.Contacts),
		Expired:  len(report.Expired),
	}
}

// applyPush stops motion into whatever the entity was pushed out of. An
// upward push means it landed.
func (s *CollisionSystem) applyPush(w *ecs.World, e ecs.Entity, p hitbox.Push) {
	vel, hasVel := ecs.Get(w, e, component.VelocityComponent.Kind())
	switch p.Axis {
	case spatial.AxisX:
		if hasVel && vel.X*p.DX < 0 {
			vel.X = 0
		}
	case spatial.AxisY:
		if hasVel && vel.Y*p.DY < 0 {
			vel.Y = 0
		}
		if p.DY > 0 {
			if err := ecs.Add(w, e, component.GroundedComponent.Kind(), &component.Grounded{}); err != nil {
				s.logger.Error("mark grounded", zap.Stringer("entity", e), zap.Error(err))
			}
		}
	}
}
