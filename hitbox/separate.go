package hitbox

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/fighter/spatial"
)

// ErrNotOverlapping is returned by SeparateChecked when the pair it was given
// no longer overlaps. Reaching it means a caller skipped Intersects.
var ErrNotOverlapping = errors.New("hitbox: separate called on a non-overlapping pair")

// biasNudge replaces a zero bias component so the sign test always decides.
const biasNudge = 1e-6

// maxSnapSteps bounds the ulp steps taken when rounding leaves a sliver of
// overlap after the push.
const maxSnapSteps = 8

// Direction is the way the subject is pushed.
type Direction int8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Rule names which branch of the axis choice produced a push.
type Rule uint8

const (
	// RuleStraddle: the subject straddles the other's center on both axes.
	// The axis with the smaller bias wins.
	RuleStraddle Rule = iota
	// RuleCorner: the subject sits wholly to one side of the center on both
	// axes. The axis with the larger bias wins.
	RuleCorner
	// RuleEdge: the subject straddles on exactly one axis and sits to one
	// side on the other. It is pushed along the straddled axis, away from the
	// nearer corner.
	RuleEdge
)

func (r Rule) String() string {
	switch r {
	case RuleStraddle:
		return "straddle"
	case RuleCorner:
		return "corner"
	case RuleEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Push is the displacement that separates a subject from the other box. Only
// one of DX and DY is ever non-zero.
type Push struct {
	Axis      spatial.Axis
	Direction Direction
	Delta     float64
	DX, DY    float64
	Rule      Rule
	// BiasX and BiasY are the nudged corner-relative offsets the decision was
	// made from.
	BiasX, BiasY float64
}

func (p Push) String() string {
	return fmt.Sprintf("%s %s by %g (%s, bias %g,%g)", p.Axis, p.Direction, math.Abs(p.Delta), p.Rule, p.BiasX, p.BiasY)
}

func sign3(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// nearest returns whichever of start and end is closer to zero, preferring
// start on a tie. A zero result is replaced by a signed nudge: zeroStart when
// start was picked, zeroEnd when end was.
func nearest(start, end, zeroStart, zeroEnd float64) float64 {
	if math.Abs(start) <= math.Abs(end) {
		if start == 0 {
			return zeroStart
		}
		return start
	}
	if end == 0 {
		return zeroEnd
	}
	return end
}

// ComputePush decides how to move subject out of other without moving
// anything. It is pure and is what the bias table tool prints.
func ComputePush(subject, other Extent) Push {
	c := other.Center()

	// Start is the min x and top y; end is the max x and bottom y.
	startX := subject.MinX - c.X()
	endX := subject.MaxX - c.X()
	startY := subject.MaxY - c.Y()
	endY := subject.MinY - c.Y()

	straddleX := sign3(startX) != sign3(endX)
	straddleY := sign3(startY) != sign3(endY)

	// The nudges make exact ties resolve right on x and down on y.
	bx := nearest(startX, endX, -biasNudge, biasNudge)
	by := nearest(startY, endY, biasNudge, -biasNudge)

	p := Push{BiasX: bx, BiasY: by}
	var dir Direction
	switch {
	case straddleX && straddleY:
		p.Rule = RuleStraddle
		if math.Abs(bx) < math.Abs(by) {
			dir = xDirection(-bx)
		} else {
			dir = yDirection(-by)
		}
	case !straddleX && !straddleY:
		p.Rule = RuleCorner
		if math.Abs(bx) > math.Abs(by) {
			dir = xDirection(bx)
		} else {
			dir = yDirection(by)
		}
	case straddleX:
		p.Rule = RuleEdge
		dir = xDirection(-bx)
	default:
		p.Rule = RuleEdge
		dir = yDirection(-by)
	}

	p.Direction = dir
	switch dir {
	case DirRight:
		p.Axis, p.DX = spatial.AxisX, other.MaxX-subject.MinX
	case DirLeft:
		p.Axis, p.DX = spatial.AxisX, other.MinX-subject.MaxX
	case DirUp:
		p.Axis, p.DY = spatial.AxisY, other.MaxY-subject.MinY
	case DirDown:
		p.Axis, p.DY = spatial.AxisY, other.MinY-subject.MaxY
	}
	p.Delta = p.DX + p.DY
	return p
}

func xDirection(v float64) Direction {
	if v < 0 {
		return DirLeft
	}
	return DirRight
}

func yDirection(v float64) Direction {
	if v < 0 {
		return DirDown
	}
	return DirUp
}

// Separate moves the subject's parent out of the other box along one axis.
// The other box never moves. It must be given an Overlap just returned by
// Intersects; on any other input the displacement is meaningless.
func Separate(o Overlap) Push {
	p := ComputePush(o.SubjectExtent, o.OtherExtent)
	parent := o.Subject.Parent
	if parent == nil {
		return p
	}
	parent.Move(p.Axis, p.Delta)
	sign := 1.0
	if p.Delta < 0 {
		sign = -1
	}
	Clear(o.Subject, o.OtherExtent, p.Axis, sign)
	return p
}

// Clear steps h's parent along axis in the direction of sign until h only
// touches other. Floating point can leave a moved edge a few ulps inside the
// box it was moved out of. The step is one ulp at the larger of the position
// and the edge it is closing on, so it survives the rounding in the world
// transform.
func Clear(h *Hitbox, other Extent, axis spatial.Axis, sign float64) {
	if h == nil || h.Parent == nil {
		return
	}
	edge := edgeMagnitude(other, axis)
	for i := 0; i < maxSnapSteps && Overlaps(h.World(), other); i++ {
		v := h.Parent.Get(axis)
		ref := math.Max(math.Abs(v), edge)
		step := math.Nextafter(ref, math.Inf(1)) - ref
		h.Parent.Set(axis, v+sign*step)
	}
}

func edgeMagnitude(e Extent, axis spatial.Axis) float64 {
	if axis == spatial.AxisX {
		return math.Max(math.Abs(e.MinX), math.Abs(e.MaxX))
	}
	return math.Max(math.Abs(e.MinY), math.Abs(e.MaxY))
}

// SeparateChecked is Separate with the precondition checked first.
func SeparateChecked(o Overlap) (Push, error) {
	if o.Subject == nil || o.Other == nil || !Overlaps(o.SubjectExtent, o.OtherExtent) {
		return Push{}, ErrNotOverlapping
	}
	return Separate(o), nil
}
