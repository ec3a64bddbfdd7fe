package spatial

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrSingular is returned when a transform has a zero determinant and so no
// inverse. A degenerate transform is a defect; callers log it and drop the
// operation that needed it.
var ErrSingular = errors.New("spatial: transform has no inverse")

// Transform is a 4x4 homogeneous matrix placing an object in its parent
// space. The translation column holds the world x, y, z and the diagonal the
// per-axis scale. The bottom row is always [0 0 0 1].
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// IdentityN returns the n×n identity matrix.
func IdentityN(n int) *mgl64.MatMxN {
	return mgl64.IdentN(nil, n)
}

// Translation returns a transform that only moves by (x, y, z).
func Translation(x, y, z float64) Transform {
	return Transform{m: mgl64.Translate3D(x, y, z)}
}

// Scaling returns a transform that only scales each axis.
func Scaling(x, y, z float64) Transform {
	return Transform{m: mgl64.Scale3D(x, y, z)}
}

// FromMat4 wraps m, forcing the bottom row back to [0 0 0 1].
func FromMat4(m mgl64.Mat4) Transform {
	m.Set(3, 0, 0)
	m.Set(3, 1, 0)
	m.Set(3, 2, 0)
	m.Set(3, 3, 1)
	return Transform{m: m}
}

// Multiply returns the matrix product a·b.
func Multiply(a, b Transform) Transform {
	return Transform{m: a.m.Mul4(b.m)}
}

// Inverse returns the inverse of t. ErrSingular is returned only when the
// determinant is exactly zero, or so close to it that the cofactor expansion
// underflows to the zero matrix.
func Inverse(t Transform) (Transform, error) {
	if t.m.Det() == 0 {
		return Transform{}, ErrSingular
	}
	inv := t.m.Inv()
	if inv == (mgl64.Mat4{}) {
		return Transform{}, ErrSingular
	}
	return Transform{m: inv}, nil
}

// Mat4 returns a copy of the underlying matrix.
func (t Transform) Mat4() mgl64.Mat4 {
	return t.m
}

// At returns the element at row, col.
func (t Transform) At(row, col int) float64 {
	return t.m.At(row, col)
}

// Apply maps a point through the transform (w = 1).
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.m.Mul4x1(p.Vec4(1)).Vec3()
}

// Offset returns the translation column.
func (t Transform) Offset() mgl64.Vec3 {
	return mgl64.Vec3{t.m.At(0, 3), t.m.At(1, 3), t.m.At(2, 3)}
}

// Scale returns the diagonal scale terms.
func (t Transform) Scale() mgl64.Vec3 {
	return mgl64.Vec3{t.m.At(0, 0), t.m.At(1, 1), t.m.At(2, 2)}
}

// Det returns the determinant.
func (t Transform) Det() float64 {
	return t.m.Det()
}

// ApproxEqual reports whether every element of t and o is within 1e-9.
func (t Transform) ApproxEqual(o Transform) bool {
	return t.m.ApproxEqualThreshold(o.m, 1e-9)
}
