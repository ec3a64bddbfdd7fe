package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
)

// HitFreezeSystem turns per-entity freeze requests into one pending global
// freeze. Overlapping requests do not stack: the longest wins.
type HitFreezeSystem struct {
	logger  *zap.Logger
	pending int
}

func NewHitFreezeSystem(logger *zap.Logger) *HitFreezeSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HitFreezeSystem{logger: logger}
}

func (s *HitFreezeSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	var requested []ecs.Entity
	ecs.ForEach(w, component.HitFreezeRequestComponent.Kind(), func(e ecs.Entity, req *component.HitFreezeRequest) {
		s.pending = max(s.pending, req.Frames)
		requested = append(requested, e)
	})
	for _, e := range requested {
		ecs.Remove(w, e, component.HitFreezeRequestComponent.Kind())
	}
	if len(requested) > 0 {
		s.logger.Debug("hit freeze", zap.Int("frames", s.pending), zap.Int("requests", len(requested)))
	}
}

// Take returns the pending freeze in ticks and clears it.
func (s *HitFreezeSystem) Take() int {
	n := s.pending
	s.pending = 0
	return n
}
