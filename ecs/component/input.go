package component

// Input is what an entity wants to do this tick, whether it came from the
// keyboard or a script.
type Input struct {
	MoveX         float64
	Jump          bool
	JumpPressed   bool
	AttackPressed bool
}

var InputComponent = NewComponent[Input]()
