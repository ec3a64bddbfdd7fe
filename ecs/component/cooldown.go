package component

// Cooldown blocks a fighter's next attack until Frames reaches zero, at which
// point the fighter system removes it.
type Cooldown struct {
	// Frames remaining for the cooldown (in update ticks)
	Frames int
}

var CooldownComponent = NewComponent[Cooldown]()
