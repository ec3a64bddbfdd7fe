package hitbox

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidSize is returned when a rect is given a non-positive extent.
var ErrInvalidSize = errors.New("hitbox: rect width and height must be positive")

// Rect is a rectangle in a parent's local space. Start is the top-left
// corner and y grows upward, so End = Start + (Width, -Height). End is
// recomputed after every mutation.
type Rect struct {
	start  mgl64.Vec2
	end    mgl64.Vec2
	width  float64
	height float64
}

// NewRect builds a rect with its top-left corner at (x, y).
func NewRect(x, y, width, height float64) (Rect, error) {
	if width <= 0 || height <= 0 {
		return Rect{}, fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	r := Rect{start: mgl64.Vec2{x, y}, width: width, height: height}
	r.sync()
	return r, nil
}

// MustRect is NewRect for literal sizes known to be valid.
func MustRect(x, y, width, height float64) Rect {
	r, err := NewRect(x, y, width, height)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rect) sync() {
	r.end = mgl64.Vec2{r.start.X() + r.width, r.start.Y() - r.height}
}

func (r Rect) Start() mgl64.Vec2 { return r.start }
func (r Rect) End() mgl64.Vec2   { return r.end }
func (r Rect) Width() float64    { return r.width }
func (r Rect) Height() float64   { return r.height }

// Center returns the midpoint in local space.
func (r Rect) Center() mgl64.Vec2 {
	return mgl64.Vec2{r.start.X() + r.width/2, r.start.Y() - r.height/2}
}

// SetStart moves the top-left corner, keeping the size.
func (r *Rect) SetStart(x, y float64) {
	r.start = mgl64.Vec2{x, y}
	r.sync()
}

// Translate shifts the rect by (dx, dy).
func (r *Rect) Translate(dx, dy float64) {
	r.SetStart(r.start.X()+dx, r.start.Y()+dy)
}

// SetSize changes the extent, keeping the top-left corner.
func (r *Rect) SetSize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	r.width = width
	r.height = height
	r.sync()
	return nil
}

func (r Rect) String() string {
	return fmt.Sprintf("rect(%g,%g %gx%g)", r.start.X(), r.start.Y(), r.width, r.height)
}
