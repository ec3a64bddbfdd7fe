package component

import "github.com/milk9111/fighter/hitbox"

// StaticTile is one solid arena cell. Its box is in world space and only
// ever receives detection.
type StaticTile struct {
	Box *hitbox.Hitbox
	Row int
	Col int
}

var StaticTileComponent = NewComponent[StaticTile]()
