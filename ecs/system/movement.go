package system

import (
	"math"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
	"github.com/milk9111/fighter/spatial"
)

// MovementSystem applies gravity and integrates velocity into transforms.
// Bodies are swept one axis at a time against the arena tiles and stop
// flush with the first tile in their way.
type MovementSystem struct {
	Gravity float64
	// MaxFall caps downward speed. Zero means no cap.
	MaxFall float64

	tiles []hitbox.Extent
}

func NewMovementSystem(gravity, maxFall float64) *MovementSystem {
	return &MovementSystem{Gravity: gravity, MaxFall: maxFall}
}

func (s *MovementSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	s.tiles = s.tiles[:0]
	ecs.ForEach(w, component.StaticTileComponent.Kind(), func(_ ecs.Entity, st *component.StaticTile) {
		if st.Box != nil && st.Box.Live() {
			s.tiles = append(s.tiles, st.Box.World())
		}
	})

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, obj *spatial.Object) {
		if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			vel.Y -= s.Gravity * g.Scale * dt
			if s.MaxFall > 0 && vel.Y < -s.MaxFall {
				vel.Y = -s.MaxFall
			}
		}
		ecs.Remove(w, e, component.GroundedComponent.Kind())

		var body *hitbox.Hitbox
		if set, ok := ecs.Get(w, e, component.HitboxSetComponent.Kind()); ok && set.Body != nil && set.Body.Live() {
			body = set.Body
		}
		if body == nil {
			obj.Move(spatial.AxisX, vel.X*dt)
			obj.Move(spatial.AxisY, vel.Y*dt)
			return
		}

		if s.sweep(body, spatial.AxisX, vel.X*dt) {
			vel.X = 0
		}
		if s.sweep(body, spatial.AxisY, vel.Y*dt) {
			if vel.Y < 0 {
				_ = ecs.Add(w, e, component.GroundedComponent.Kind(), &component.Grounded{})
			}
			vel.Y = 0
		}
	})
}

// sweep moves body d along axis, stopping at the nearest tile the path
// enters. Tiles the body already overlaps are left to collision. It reports
// whether a tile stopped the move.
func (s *MovementSystem) sweep(body *hitbox.Hitbox, axis spatial.Axis, d float64) bool {
	if d == 0 {
		return false
	}
	from := body.World()
	path := extend(from, axis, d)

	limit, hit := d, -1
	for i, t := range s.tiles {
		if hitbox.Overlaps(from, t) || !hitbox.Overlaps(path, t) {
			continue
		}
		if g := gap(from, t, axis, d); math.Abs(g) < math.Abs(limit) {
			limit, hit = g, i
		}
	}

	body.Parent.Move(axis, limit)
	if hit < 0 {
		return false
	}
	hitbox.Clear(body, s.tiles[hit], axis, -math.Copysign(1, d))
	return true
}

func extend(e hitbox.Extent, axis spatial.Axis, d float64) hitbox.Extent {
	switch {
	case axis == spatial.AxisX && d > 0:
		e.MaxX += d
	case axis == spatial.AxisX:
		e.MinX += d
	case d > 0:
		e.MaxY += d
	default:
		e.MinY += d
	}
	return e
}

// gap is the signed travel from the body's leading edge to the tile's facing
// edge.
func gap(from, t hitbox.Extent, axis spatial.Axis, d float64) float64 {
	switch {
	case axis == spatial.AxisX && d > 0:
		return t.MinX - from.MaxX
	case axis == spatial.AxisX:
		return t.MaxX - from.MinX
	case d > 0:
		return t.MinY - from.MaxY
	default:
		return t.MaxY - from.MinY
	}
}
