// Package manipulator implements the interactive transform tools: handles
// that are hit tested against a selection.Test and components that turn
// pointer motion into translations, rotations and scales.
package manipulator

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/view"
)

// Component is one transform strategy bound to a handle. A gesture calls
// BeginTransformation once and Transform for every pointer move; emitted
// values are always relative to the state captured at the beginning.
type Component interface {
	BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2)
	Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint)
}

// Constraint carries modifier state from the host input layer.
type Constraint uint8

const (
	Unconstrained Constraint = 1 << iota
	Shift
	Grid
	Alt
)

func (c Constraint) Has(flag Constraint) bool { return c&flag != 0 }

type Translatable interface {
	Translate(translation mgl32.Vec3)
}

type Rotatable interface {
	Rotate(rotation mgl32.Quat)
}

type Scalable interface {
	Scale(scale mgl32.Vec3)
}

// TranslateFunc adapts a function to Translatable.
type TranslateFunc func(mgl32.Vec3)

func (f TranslateFunc) Translate(t mgl32.Vec3) { f(t) }

// RotateFunc adapts a function to Rotatable.
type RotateFunc func(mgl32.Quat)

func (f RotateFunc) Rotate(q mgl32.Quat) { f(q) }

// ScaleFunc adapts a function to Scalable.
type ScaleFunc func(mgl32.Vec3)

func (f ScaleFunc) Scale(s mgl32.Vec3) { f(s) }

const epsilon = 1e-6

func snap(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return math32.Round(v/step) * step
}

func snapVec(v mgl32.Vec3, step float32) mgl32.Vec3 {
	return mgl32.Vec3{snap(v[0], step), snap(v[1], step), snap(v[2], step)}
}

// dominant keeps only the largest component of v.
func dominant(v mgl32.Vec3) mgl32.Vec3 {
	k := 0
	for i := 1; i < 3; i++ {
		if math32.Abs(v[i]) > math32.Abs(v[k]) {
			k = i
		}
	}
	var out mgl32.Vec3
	out[k] = v[k]
	return out
}

// closestPoints returns the ray parameter t, the line parameter s and the
// distance between the closest points of a ray and a line.
func closestPoints(ro, rd, ao, ad mgl32.Vec3) (float32, float32, float32, bool) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < epsilon {
		return 0, 0, r.Len(), false
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len(), true
}

// rayPlane intersects a ray with the plane through p with normal n.
func rayPlane(ro, rd, p, n mgl32.Vec3) (mgl32.Vec3, bool) {
	denom := rd.Dot(n)
	if math32.Abs(denom) < 1e-4 {
		return mgl32.Vec3{}, false
	}
	t := p.Sub(ro).Dot(n) / denom
	return ro.Add(rd.Mul(t)), true
}

func origin(pivot2world mgl32.Mat4) mgl32.Vec3 {
	return pivot2world.Col(3).Vec3()
}
