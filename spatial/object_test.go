package spatial

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStartsAtIdentity(t *testing.T) {
	o := NewObject()
	if !o.Transform().ApproxEqual(Identity()) {
		t.Fatalf("new object transform is not identity: %v", o.Transform().Mat4())
	}
}

func TestObjectAxisAccess(t *testing.T) {
	o := NewObject()
	o.SetX(2)
	o.SetY(-3)
	o.SetZ(1)
	if o.X() != 2 || o.Y() != -3 || o.Z() != 1 {
		t.Fatalf("position = %v", o.Position())
	}

	o.Move(AxisY, 0.5)
	if o.Get(AxisY) != -2.5 {
		t.Fatalf("Move(AxisY) left y = %v", o.Get(AxisY))
	}
	if o.X() != 2 {
		t.Fatalf("Move(AxisY) changed x to %v", o.X())
	}
}

func TestObjectWorldPoint(t *testing.T) {
	o := NewObjectAt(10, 5)
	o.SetScale(-1, 2, 1)

	got := o.WorldPoint(mgl64.Vec3{1, 1, 0})
	assert.True(t, got.ApproxEqual(mgl64.Vec3{9, 7, 0}), "got %v", got)

	back, err := o.LocalPoint(got)
	require.NoError(t, err)
	assert.True(t, back.ApproxEqual(mgl64.Vec3{1, 1, 0}), "got %v", back)
}

func TestObjectLocalPointDegenerate(t *testing.T) {
	o := NewObjectAt(1, 1)
	o.SetScale(0, 1, 1)
	if _, err := o.LocalPoint(mgl64.Vec3{1, 1, 0}); !errors.Is(err, ErrSingular) {
		t.Fatalf("expected ErrSingular, got %v", err)
	}
}

func TestSetTransformKeepsAffine(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3)
	m.Set(3, 1, 9)
	o := NewObject()
	o.SetTransform(Transform{m: m})
	if o.Transform().At(3, 1) != 0 {
		t.Fatalf("bottom row leaked into object transform")
	}
	if o.Y() != 2 {
		t.Fatalf("y = %v", o.Y())
	}
}
