package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
)

// Pick returns the first dynamic hitbox containing the world point. Boxes
// whose parent transform cannot be inverted are logged and skipped.
func Pick(w *ecs.World, x, y float64, logger *zap.Logger) (ecs.Entity, *hitbox.Hitbox, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := mgl64.Vec3{x, y, 0}

	var (
		found   ecs.Entity
		match   *hitbox.Hitbox
		matched bool
	)
	ecs.ForEach(w, component.HitboxSetComponent.Kind(), func(e ecs.Entity, set *component.HitboxSet) {
		if matched {
			return
		}
		for _, h := range set.All() {
			in, err := h.ContainsPoint(p)
			if err != nil {
				logger.Error("degenerate transform", zap.Stringer("entity", e), zap.Stringer("hitbox", h.ID), zap.Error(err))
				continue
			}
			if in {
				found, match, matched = e, h, true
				return
			}
		}
	})
	return found, match, matched
}
