package spatial

import "github.com/go-gl/mathgl/mgl64"

// Axis names a world axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Object is any entity that owns exactly one Transform. The transform starts
// as identity.
type Object struct {
	transform Transform
}

// NewObject returns an object at the origin.
func NewObject() *Object {
	return &Object{transform: Identity()}
}

// NewObjectAt returns an object translated to (x, y).
func NewObjectAt(x, y float64) *Object {
	o := NewObject()
	o.SetPosition(x, y, 0)
	return o
}

// Transform returns the object's transform.
func (o *Object) Transform() Transform {
	return o.transform
}

// SetTransform replaces the object's transform.
func (o *Object) SetTransform(t Transform) {
	o.transform = FromMat4(t.m)
}

// Get returns the world position on one axis.
func (o *Object) Get(axis Axis) float64 {
	return o.transform.m.At(int(axis), 3)
}

// Set writes the world position on one axis, leaving the others untouched.
func (o *Object) Set(axis Axis, v float64) {
	o.transform.m.Set(int(axis), 3, v)
}

// Move adds delta to the world position on one axis.
func (o *Object) Move(axis Axis, delta float64) {
	o.Set(axis, o.Get(axis)+delta)
}

func (o *Object) X() float64 { return o.Get(AxisX) }
func (o *Object) Y() float64 { return o.Get(AxisY) }
func (o *Object) Z() float64 { return o.Get(AxisZ) }

func (o *Object) SetX(v float64) { o.Set(AxisX, v) }
func (o *Object) SetY(v float64) { o.Set(AxisY, v) }
func (o *Object) SetZ(v float64) { o.Set(AxisZ, v) }

// Position returns the translation column.
func (o *Object) Position() mgl64.Vec3 {
	return o.transform.Offset()
}

// SetPosition writes all three translation terms.
func (o *Object) SetPosition(x, y, z float64) {
	o.Set(AxisX, x)
	o.Set(AxisY, y)
	o.Set(AxisZ, z)
}

// Scale returns the per-axis scale.
func (o *Object) Scale() mgl64.Vec3 {
	return o.transform.Scale()
}

// SetScale writes the diagonal scale terms. A negative x mirrors the
// object's local space, which is how fighters face left.
func (o *Object) SetScale(x, y, z float64) {
	o.transform.m.Set(0, 0, x)
	o.transform.m.Set(1, 1, y)
	o.transform.m.Set(2, 2, z)
}

// WorldPoint places a point owned by the object in world space.
func (o *Object) WorldPoint(local mgl64.Vec3) mgl64.Vec3 {
	return o.transform.Apply(local)
}

// LocalPoint maps a world point into the object's local space.
func (o *Object) LocalPoint(world mgl64.Vec3) (mgl64.Vec3, error) {
	inv, err := Inverse(o.transform)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return inv.Apply(world), nil
}
