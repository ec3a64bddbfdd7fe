package component

import "github.com/hajimehoshi/ebiten/v2"

// Controls binds an entity's Input to keyboard keys.
type Controls struct {
	Left   ebiten.Key
	Right  ebiten.Key
	Jump   ebiten.Key
	Attack ebiten.Key
}

var ControlsComponent = NewComponent[Controls]()
