package component

import "github.com/milk9111/fighter/hitbox"

// Team groups fighters that cannot strike each other. TeamNeutral strikes and
// is struck by everyone.
type Team int

const (
	TeamNeutral Team = iota
	TeamOne
	TeamTwo
)

// CanHit reports whether an attacker on team a may damage a target on team b.
func CanHit(a, b Team) bool {
	if a == TeamNeutral || b == TeamNeutral {
		return true
	}
	return a != b
}

// AttackMove describes the hitbox a fighter spawns when attacking. Bounds are
// in the fighter's local space, facing right.
type AttackMove struct {
	Bounds         hitbox.Rect
	Attack         hitbox.Attack
	CooldownFrames int
	// FreezeFrames pauses the whole match briefly when the move lands.
	FreezeFrames int
}

type Fighter struct {
	Name      string
	Team      Team
	MoveSpeed float64
	JumpSpeed float64
	// Facing is 1 for right and -1 for left. It is written into the
	// transform's x scale.
	Facing float64
	Move   AttackMove
	// InvulnFrames is how long the fighter is immune after being struck.
	InvulnFrames int
	// Spawn is where a round reset puts the fighter back, and which way it
	// faces.
	SpawnX, SpawnY float64
	SpawnFacing    float64
}

var FighterComponent = NewComponent[Fighter]()
