package component

// Velocity is in world units per second, y up.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Grounded is present while the entity stands on something. Movement clears
// it every tick and sets it again when a tile stops a fall. Collision also
// sets it on an upward push.
type Grounded struct{}

var GroundedComponent = NewComponent[Grounded]()
