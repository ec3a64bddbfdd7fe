package hitbox

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/milk9111/fighter/spatial"
)

// Extent is a hitbox resolved into world space. Start is the top-left corner
// (MinX, MaxY) and End the bottom-right (MaxX, MinY). A mirrored parent is
// already folded in, so Min is always <= Max.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (e Extent) Start() mgl64.Vec2  { return mgl64.Vec2{e.MinX, e.MaxY} }
func (e Extent) End() mgl64.Vec2    { return mgl64.Vec2{e.MaxX, e.MinY} }
func (e Extent) Width() float64     { return e.MaxX - e.MinX }
func (e Extent) Height() float64    { return e.MaxY - e.MinY }
func (e Extent) Center() mgl64.Vec2 { return mgl64.Vec2{(e.MinX + e.MaxX) / 2, (e.MinY + e.MaxY) / 2} }

func (e Extent) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", e.MinX, e.MaxX, e.MinY, e.MaxY)
}

// Hitbox is a rectangle in its parent's local space.
type Hitbox struct {
	ID uuid.UUID
	// Parent is a non-owning reference. A nil parent places Bounds directly
	// in world space, which is how arena tiles are built.
	Parent *spatial.Object
	Bounds Rect
	Kind   Kind

	// Enabled hitboxes take part in detection. Disabled ones still advance
	// their timers.
	Enabled bool
	// Expired hitboxes are excluded from every future test and may be dropped.
	Expired bool

	// Attack is set for KindAttack hitboxes.
	Attack *Attack
}

// New returns an enabled hitbox.
func New(parent *spatial.Object, bounds Rect, kind Kind) *Hitbox {
	return &Hitbox{
		ID:      uuid.New(),
		Parent:  parent,
		Bounds:  bounds,
		Kind:    kind,
		Enabled: true,
	}
}

// Live reports whether the hitbox may take part in detection.
func (h *Hitbox) Live() bool {
	return h != nil && h.Enabled && !h.Expired
}

// Transform returns the parent's transform, or identity without a parent.
func (h *Hitbox) Transform() spatial.Transform {
	if h.Parent == nil {
		return spatial.Identity()
	}
	return h.Parent.Transform()
}

// World transforms the local corners through the parent and returns the
// world-space extent.
func (h *Hitbox) World() Extent {
	t := h.Transform()
	s := h.Bounds.Start()
	e := h.Bounds.End()
	a := t.Apply(mgl64.Vec3{s.X(), s.Y(), 0})
	b := t.Apply(mgl64.Vec3{e.X(), e.Y(), 0})
	return Extent{
		MinX: math.Min(a.X(), b.X()),
		MaxX: math.Max(a.X(), b.X()),
		MinY: math.Min(a.Y(), b.Y()),
		MaxY: math.Max(a.Y(), b.Y()),
	}
}

// Intersects tests h against other with the axis-aligned separating axis
// test. It fails fast when either side is expired or disabled.
func (h *Hitbox) Intersects(other *Hitbox) (Overlap, bool) {
	if h == nil || h.Expired || !h.Enabled {
		return Overlap{}, false
	}
	if !other.Live() {
		return Overlap{}, false
	}
	se := h.World()
	oe := other.World()
	if !Overlaps(se, oe) {
		return Overlap{}, false
	}
	return Overlap{Subject: h, Other: other, SubjectExtent: se, OtherExtent: oe}, true
}

// ContainsPoint reports whether a world point lies strictly inside the box.
// It needs the parent's inverse and so fails on a degenerate transform.
func (h *Hitbox) ContainsPoint(world mgl64.Vec3) (bool, error) {
	local := world
	if h.Parent != nil {
		var err error
		local, err = h.Parent.LocalPoint(world)
		if err != nil {
			return false, fmt.Errorf("hitbox %s: %w", h.ID, err)
		}
	}
	s := h.Bounds.Start()
	e := h.Bounds.End()
	return local.X() > s.X() && local.X() < e.X() &&
		local.Y() < s.Y() && local.Y() > e.Y(), nil
}

// Update advances internal timers by dt seconds. Only attack hitboxes carry
// timers; everything else is untouched.
func (h *Hitbox) Update(dt float64) {
	if h.Expired || h.Attack == nil {
		return
	}
	h.Attack.advance(h, dt)
}
