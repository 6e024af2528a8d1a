package manipulator

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var unitAxes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// axisSegment is the part of axis between from and to.
func axisSegment(axis mgl32.Vec3, from, to float32) []mgl32.Vec3 {
	return []mgl32.Vec3{axis.Mul(from), axis.Mul(to)}
}

// arrowHead is a cone as a triangle list with its base at base along axis,
// pointing outwards. Triangles wind counter-clockwise seen from outside.
func arrowHead(axis mgl32.Vec3, base, height, radius float32, segments int) []mgl32.Vec3 {
	u, w := perpendiculars(axis)
	tip := axis.Mul(base + height)
	centre := axis.Mul(base)
	ring := make([]mgl32.Vec3, segments)
	for i := range ring {
		a := 2 * math.Pi * float32(i) / float32(segments)
		ring[i] = centre.Add(u.Mul(radius * math32.Cos(a))).Add(w.Mul(radius * math32.Sin(a)))
	}
	out := make([]mgl32.Vec3, 0, segments*6)
	for i := range ring {
		a, b := ring[i], ring[(i+1)%segments]
		out = append(out, a, b, tip)
		out = append(out, b, a, centre)
	}
	return out
}

// perpendiculars returns two unit vectors completing a right-handed frame
// with axis.
func perpendiculars(axis mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ref := mgl32.Vec3{0, 0, 1}
	if math32.Abs(axis.Z()) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := ref.Cross(axis).Normalize()
	return u, axis.Cross(u).Normalize()
}

// screenQuad is a counter-clockwise square of half extent h in the xy plane.
func screenQuad(h float32) []mgl32.Vec3 {
	return []mgl32.Vec3{{-h, -h, 0}, {h, -h, 0}, {h, h, 0}, {-h, h, 0}}
}

// circle is a counter-clockwise circle of radius r in the xy plane.
func circle(r float32, segments int) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, segments)
	for i := range out {
		a := 2 * math.Pi * float32(i) / float32(segments)
		out[i] = mgl32.Vec3{r * math32.Cos(a), r * math32.Sin(a), 0}
	}
	return out
}

// semicircle is the half of a circle of radius r spanned by u and w with
// non-negative w component.
func semicircle(u, w mgl32.Vec3, r float32, segments int) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, segments+1)
	for i := range out {
		a := math.Pi * float32(i) / float32(segments)
		out[i] = u.Mul(r * math32.Cos(a)).Add(w.Mul(r * math32.Sin(a)))
	}
	return out
}
