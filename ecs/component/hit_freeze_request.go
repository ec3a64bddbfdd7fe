package component

// HitFreezeRequest asks for a short global freeze measured in ticks. Combat
// adds it to the struck entity and the game loop applies it.
type HitFreezeRequest struct {
	Frames int
}

var HitFreezeRequestComponent = NewComponent[HitFreezeRequest]()
