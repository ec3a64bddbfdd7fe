package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
)

// Keys reports keyboard state. The default reads ebiten; tests swap in a
// fixed table.
type Keys interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

type InputSystem struct {
	keys Keys
}

// NewInputSystem maps keys to Input for every entity with Controls. A nil
// Keys reads the live keyboard.
func NewInputSystem(keys Keys) *InputSystem {
	if keys == nil {
		keys = ebitenKeys{}
	}
	return &InputSystem{keys: keys}
}

func (s *InputSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ControlsComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, c *component.Controls, input *component.Input) {
		moveX := 0.0
		if s.keys.Pressed(c.Left) {
			moveX -= 1
		}
		if s.keys.Pressed(c.Right) {
			moveX += 1
		}
		input.MoveX = moveX
		input.Jump = s.keys.Pressed(c.Jump)
		input.JumpPressed = s.keys.JustPressed(c.Jump)
		input.AttackPressed = s.keys.JustPressed(c.Attack)
	})
}
