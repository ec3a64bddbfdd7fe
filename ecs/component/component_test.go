package component

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/fighter/hitbox"
	"github.com/milk9111/fighter/spatial"
)

func TestComponentKindsAreUnique(t *testing.T) {
	a := NewComponentKind[int]()
	b := NewComponentKind[int]()
	assert.True(t, a.Valid())
	assert.NotEqual(t, a.ID(), b.ID())

	var zero ComponentKind[int]
	assert.False(t, zero.Valid())
	assert.Equal(t, "unregistered", zero.String())
}

func TestComponentKindString(t *testing.T) {
	k := VelocityComponent.Kind()
	assert.Equal(t, fmt.Sprintf("Velocity#%d", k.ID()), k.String())
	assert.Regexp(t, `^int#\d+$`, NewComponentKind[int]().String())
}

func TestCanHit(t *testing.T) {
	tests := []struct {
		a, b Team
		want bool
	}{
		{TeamOne, TeamTwo, true},
		{TeamTwo, TeamOne, true},
		{TeamOne, TeamOne, false},
		{TeamNeutral, TeamOne, true},
		{TeamTwo, TeamNeutral, true},
		{TeamNeutral, TeamNeutral, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CanHit(tc.a, tc.b), "CanHit(%d, %d)", tc.a, tc.b)
	}
}

func TestHitboxSetPrune(t *testing.T) {
	owner := spatial.NewObject()
	live := hitbox.NewAttack(owner, hitbox.MustRect(0, 0, 1, 1), hitbox.Attack{Lifetime: 1})
	gone := hitbox.NewAttack(owner, hitbox.MustRect(0, 0, 1, 1), hitbox.Attack{Lifetime: 1})
	gone.Expired = true

	set := &HitboxSet{
		Body:    hitbox.New(owner, hitbox.MustRect(0, 0, 1, 1), hitbox.KindBody),
		Attacks: []*hitbox.Hitbox{gone, live, nil},
	}
	assert.Len(t, set.All(), 4)

	assert.Equal(t, 2, set.Prune())
	assert.Equal(t, []*hitbox.Hitbox{live}, set.Attacks)
	assert.Equal(t, []*hitbox.Hitbox{set.Body, live}, set.All())
	assert.Zero(t, set.Prune())
}

func TestHitboxSetAllWithoutBody(t *testing.T) {
	set := &HitboxSet{}
	assert.Empty(t, set.All())
}
