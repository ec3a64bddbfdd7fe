package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
)

// Camera maps world units (y up) to screen pixels (y down). X and Top are the
// world coordinates of the screen's top-left corner.
type Camera struct {
	X    float64
	Top  float64
	Zoom float64
}

// ToScreen converts a world point to screen pixels.
func (c Camera) ToScreen(x, y float64) (float32, float32) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float32((x - c.X) * zoom), float32((c.Top - y) * zoom)
}

// ToWorld converts screen pixels back to a world point.
func (c Camera) ToWorld(sx, sy int) (float64, float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float64(sx)/zoom + c.X, c.Top - float64(sy)/zoom
}

func boxColor(h *hitbox.Hitbox) color.Color {
	switch {
	case h.Kind == hitbox.KindTile:
		return colornames.Slategray
	case h.Kind == hitbox.KindAttack && !h.Enabled:
		return colornames.Orange
	case h.Kind == hitbox.KindAttack:
		return colornames.Red
	default:
		return colornames.Limegreen
	}
}

// DrawTiles fills every static tile. A nil fill uses the default tile color.
func DrawTiles(w *ecs.World, screen *ebiten.Image, cam Camera, fill color.Color) {
	if w == nil || screen == nil {
		return
	}
	if fill == nil {
		fill = colornames.Darkslategray
	}
	ecs.ForEach(w, component.StaticTileComponent.Kind(), func(_ ecs.Entity, tile *component.StaticTile) {
		if tile.Box == nil {
			return
		}
		x, y, bw, bh := screenRect(tile.Box.World(), cam)
		vector.FillRect(screen, x, y, bw, bh, fill, false)
	})
}

// DrawHitboxes outlines every hitbox with its kind's color.
func DrawHitboxes(w *ecs.World, screen *ebiten.Image, cam Camera) {
	if w == nil || screen == nil {
		return
	}

	ecs.ForEach(w, component.StaticTileComponent.Kind(), func(_ ecs.Entity, tile *component.StaticTile) {
		if tile.Box == nil {
			return
		}
		x, y, bw, bh := screenRect(tile.Box.World(), cam)
		vector.StrokeRect(screen, x, y, bw, bh, 1, boxColor(tile.Box), false)
	})

	ecs.ForEach(w, component.HitboxSetComponent.Kind(), func(_ ecs.Entity, set *component.HitboxSet) {
		for _, h := range set.All() {
			if h.Expired {
				continue
			}
			x, y, bw, bh := screenRect(h.World(), cam)
			vector.StrokeRect(screen, x, y, bw, bh, 2, boxColor(h), false)
		}
	})
}

// DrawStats prints the collision counters in the top-left corner.
func DrawStats(screen *ebiten.Image, stats CollisionStats, hash uint64, rounds *RoundSystem) {
	if screen == nil {
		return
	}
	text := fmt.Sprintf("tick %d  pairs %d  contacts %d  expired %d\nboxes %d dynamic / %d static\nhash %016x",
		stats.Tick, stats.Pairs, stats.Contacts, stats.Expired, stats.Dynamic, stats.Static, hash)
	if rounds != nil {
		text += fmt.Sprintf("\nround %d  p1 %d  p2 %d", rounds.Round(), rounds.Score(component.TeamOne), rounds.Score(component.TeamTwo))
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func screenRect(e hitbox.Extent, cam Camera) (x, y, w, h float32) {
	x0, y0 := cam.ToScreen(e.MinX, e.MaxY)
	x1, y1 := cam.ToScreen(e.MaxX, e.MinY)
	return x0, y0, x1 - x0, y1 - y0
}
