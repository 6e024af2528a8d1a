package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransform_ObjectToWorldOrder(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 0, 0}
	tr.Rotation = mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})
	tr.Scale = mgl32.Vec3{2, 2, 2}

	// scale, then rotate, then translate
	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{1, 2, 0}, 1e-5), "got %v", p)
}

func TestTransform_WorldToObjectInverts(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{3, -2, 5}
	tr.Rotation = mgl32.AnglesToQuat(0.3, -1.1, 0.7, mgl32.XYZ)
	tr.Scale = mgl32.Vec3{0.5, 2, 4}

	m := tr.WorldToObject().Mul4(tr.ObjectToWorld())
	assert.True(t, m.ApproxEqualThreshold(mgl32.Ident4(), 1e-4), "got %v", m)
}
