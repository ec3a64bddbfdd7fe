package hitbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/fighter/spatial"
)

func jab() Attack {
	return Attack{ArmDelay: 0.1, Lifetime: 0.9, Damage: 8, KnockbackX: 4, KnockbackY: 2}
}

func TestAttackTiming(t *testing.T) {
	const dt = 1.0 / 60
	owner := spatial.NewObjectAt(0, 0)
	target := box(0.5, 0, 1, 1)
	atk := NewAttack(owner, MustRect(0, 0, 1, 1), jab())

	require.False(t, atk.Enabled, "attack with an arming delay starts disabled")

	armed, expired := -1, -1
	for tick := 0; tick < 120; tick++ {
		_, ok := atk.Intersects(target)
		elapsed := atk.Attack.Elapsed()
		if ok && elapsed < 0.1-1e-9 {
			t.Fatalf("tick %d: overlap before arming at %.4fs", tick, elapsed)
		}
		if ok && armed < 0 {
			armed = tick
		}
		if atk.Expired && expired < 0 {
			expired = tick
		}
		if elapsed >= 0.9-1e-9 && ok {
			t.Fatalf("tick %d: overlap after lifetime at %.4fs", tick, elapsed)
		}
		atk.Update(dt)
	}
	assert.Equal(t, 6, armed, "first overlapping tick")
	assert.Equal(t, 54, expired, "first tick seen expired")
}

func TestAttackExpiresWithoutHitting(t *testing.T) {
	atk := NewAttack(spatial.NewObject(), MustRect(0, 0, 1, 1), jab())
	for i := 0; i < 9; i++ {
		atk.Update(0.1)
	}
	assert.True(t, atk.Expired)
	assert.False(t, atk.Enabled)
	assert.Zero(t, atk.Attack.HitCount())
}

func TestStrikeOncePerTarget(t *testing.T) {
	owner := spatial.NewObject()
	spec := jab()
	spec.ArmDelay = 0
	atk := NewAttack(owner, MustRect(0, 0, 1, 1), spec)
	target := box(0.5, 0, 1, 1)

	o, ok := atk.Intersects(target)
	require.True(t, ok)

	first := atk.ResolveIntersection(o)
	assert.Equal(t, OutcomeStruck, first.Kind)
	assert.Equal(t, target.Parent, first.Target)
	assert.Equal(t, 8, first.Damage)
	assert.Equal(t, 4.0, first.KnockbackX)

	second := atk.ResolveIntersection(o)
	assert.Equal(t, OutcomeNone, second.Kind, "same target struck twice")

	// The body does not react to being struck.
	assert.Equal(t, OutcomeNone, target.ResolveIntersection(o.Mirror()).Kind)
	assert.Equal(t, 0.5, target.Parent.X())
}

func TestStrikeConsumeAndFacing(t *testing.T) {
	owner := spatial.NewObjectAt(1, 0)
	owner.SetScale(-1, 1, 1)
	spec := jab()
	spec.ArmDelay = 0
	spec.ConsumeOnHit = true
	atk := NewAttack(owner, MustRect(0, 0, 1, 1), spec)
	target := box(-0.5, 0, 1, 1)

	o, ok := atk.Intersects(target)
	require.True(t, ok)
	out := atk.ResolveIntersection(o)
	assert.Equal(t, OutcomeStruck, out.Kind)
	assert.True(t, out.Consumed)
	assert.Equal(t, -4.0, out.KnockbackX, "knockback follows facing")
	assert.True(t, atk.Expired)

	other := box(0, 0, 1, 1)
	_, ok = atk.Intersects(other)
	assert.False(t, ok, "consumed attack is out of detection")
}

func TestStrikeIgnoresOwnerAndTiles(t *testing.T) {
	owner := spatial.NewObject()
	spec := jab()
	spec.ArmDelay = 0
	atk := NewAttack(owner, MustRect(0, 0, 1, 1), spec)

	self := New(owner, MustRect(0, 0, 1, 1), KindBody)
	o, ok := atk.Intersects(self)
	require.True(t, ok)
	assert.Equal(t, OutcomeNone, atk.ResolveIntersection(o).Kind)

	tile := New(nil, MustRect(0, 0, 1, 1), KindTile)
	o, ok = atk.Intersects(tile)
	require.True(t, ok)
	assert.Equal(t, OutcomeNone, atk.ResolveIntersection(o).Kind)
}

func TestBodyBlocksOnTile(t *testing.T) {
	tile := New(nil, MustRect(0, 0, 4, 1), KindTile)
	body := New(spatial.NewObjectAt(0.9, 0.75), MustRect(0, 0, 1, 1), KindBody)

	o, ok := body.Intersects(tile)
	require.True(t, ok)

	out := body.ResolveIntersection(o)
	require.NoError(t, out.Err)
	assert.Equal(t, OutcomePushed, out.Kind)
	assert.Equal(t, DirUp, out.Push.Direction)
	assert.InDelta(t, 1.0, body.Parent.Y(), 1e-9)
	assert.Equal(t, 0.9, body.Parent.X())

	assert.Equal(t, OutcomeNone, tile.ResolveIntersection(o.Mirror()).Kind)
}

func TestBodiesPassThroughEachOther(t *testing.T) {
	a := box(0, 0, 1, 1)
	b := box(0.8, 0, 1, 1)
	o, ok := a.Intersects(b)
	require.True(t, ok)

	assert.Equal(t, OutcomeNone, a.ResolveIntersection(o).Kind)
	assert.Equal(t, OutcomeNone, b.ResolveIntersection(o.Mirror()).Kind)
	assert.Equal(t, 0.0, a.Parent.X())
	assert.Equal(t, 0.8, b.Parent.X())
}
