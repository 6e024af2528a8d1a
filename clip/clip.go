// Package clip clips points, lines and triangles against the canonical
// homogeneous view volume -w < x,y,z < w.
package clip

import "github.com/go-gl/mathgl/mgl32"

// Plane bits. A set bit means the vertex passed that plane.
const (
	LtX uint8 = 1 << iota // x < w
	GtX                   // x > -w
	LtY                   // y < w
	GtY                   // y > -w
	LtZ                   // z < w
	GtZ                   // z > -w

	Fail uint8 = 0
	Pass uint8 = LtX | GtX | LtY | GtY | LtZ | GtZ
)

// MaxVertices is the largest vertex count a clipped triangle can reach.
const MaxVertices = 9

var planeBits = [6]uint8{LtX, GtX, LtY, GtY, LtZ, GtZ}

// Mask reports which of the six planes the clip-space vertex passes.
func Mask(v mgl32.Vec4) uint8 {
	mask := Fail
	for i := range planeBits {
		if planeDistance(i, v) > 0 {
			mask |= planeBits[i]
		}
	}
	return mask
}

// planeDistance is positive on the inside of plane i.
func planeDistance(i int, v mgl32.Vec4) float32 {
	switch i {
	case 0:
		return v[3] - v[0]
	case 1:
		return v[3] + v[0]
	case 2:
		return v[3] - v[1]
	case 3:
		return v[3] + v[1]
	case 4:
		return v[3] - v[2]
	default:
		return v[3] + v[2]
	}
}

// crossing interpolates the point where the edge a-b meets the plane whose
// signed distances at a and b are da and db. ok is false when the edge runs
// parallel to the plane.
func crossing(a, b mgl32.Vec4, da, db float32) (mgl32.Vec4, bool) {
	denom := da - db
	if denom == 0 {
		return mgl32.Vec4{}, false
	}
	t := da / denom
	return a.Add(b.Sub(a).Mul(t)), true
}

// Point transforms p by m and returns the clip-space vertex with its plane mask.
func Point(m mgl32.Mat4, p mgl32.Vec3) (mgl32.Vec4, uint8) {
	v := m.Mul4x1(p.Vec4(1))
	return v, Mask(v)
}

// Line transforms and clips the segment p0-p1. It writes the surviving
// endpoints to out and returns 0 or 2.
func Line(m mgl32.Mat4, p0, p1 mgl32.Vec3, out *[MaxVertices]mgl32.Vec4) int {
	out[0] = m.Mul4x1(p0.Vec4(1))
	out[1] = m.Mul4x1(p1.Vec4(1))
	return clipLine(out)
}

func clipLine(out *[MaxVertices]mgl32.Vec4) int {
	mask0, mask1 := Mask(out[0]), Mask(out[1])
	if mask0&mask1 == Pass {
		return 2
	}
	if mask0|mask1 != Pass {
		// both endpoints fail the same plane
		return 0
	}

	for i := range planeBits {
		d0 := planeDistance(i, out[0])
		d1 := planeDistance(i, out[1])
		in0, in1 := d0 > 0, d1 > 0
		if in0 && in1 {
			continue
		}
		if !in0 && !in1 {
			return 0
		}
		v, ok := crossing(out[0], out[1], d0, d1)
		if !ok {
			continue
		}
		if in0 {
			out[1] = v
		} else {
			out[0] = v
		}
	}
	return 2
}

// Triangle transforms the triangle p0,p1,p2 and clips it against all six
// planes. It writes the clipped polygon to out and returns its vertex count,
// which is 0 or between 3 and MaxVertices.
func Triangle(m mgl32.Mat4, p0, p1, p2 mgl32.Vec3, out *[MaxVertices]mgl32.Vec4) int {
	out[0] = m.Mul4x1(p0.Vec4(1))
	out[1] = m.Mul4x1(p1.Vec4(1))
	out[2] = m.Mul4x1(p2.Vec4(1))
	return clipTriangle(out)
}

func clipTriangle(out *[MaxVertices]mgl32.Vec4) int {
	mask0, mask1, mask2 := Mask(out[0]), Mask(out[1]), Mask(out[2])
	if mask0&mask1&mask2 == Pass {
		return 3
	}
	if mask0|mask1|mask2 != Pass {
		return 0
	}

	var scratch [MaxVertices]mgl32.Vec4
	src, dst := out, &scratch
	count := 3
	for i := range planeBits {
		count = clipPolygonPlane(i, src[:count], dst)
		if count == 0 {
			return 0
		}
		src, dst = dst, src
	}
	if src != out {
		copy(out[:count], src[:count])
	}
	if count < 3 {
		return 0
	}
	return count
}

// clipPolygonPlane runs one Sutherland-Hodgman pass of in against plane i.
func clipPolygonPlane(plane int, in []mgl32.Vec4, out *[MaxVertices]mgl32.Vec4) int {
	n := 0
	emit := func(v mgl32.Vec4) {
		if n < MaxVertices {
			out[n] = v
			n++
		}
	}

	prev := in[len(in)-1]
	dPrev := planeDistance(plane, prev)
	for _, cur := range in {
		dCur := planeDistance(plane, cur)
		if dCur > 0 {
			if dPrev <= 0 {
				if v, ok := crossing(prev, cur, dPrev, dCur); ok {
					emit(v)
				}
			}
			emit(cur)
		} else if dPrev > 0 {
			if v, ok := crossing(prev, cur, dPrev, dCur); ok {
				emit(v)
			}
		}
		prev, dPrev = cur, dCur
	}
	return n
}
