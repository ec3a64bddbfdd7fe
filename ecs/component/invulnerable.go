package component

// Invulnerable marks an entity as temporarily immune to strikes.
// If Frames > 0 the combat system counts it down each tick and removes the
// component when it reaches zero. Frames == 0 means indefinite immunity
// until explicitly removed.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
