package selection

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/clip"
)

// Cull selects which screen-space winding is discarded by BestPoint.
type Cull int

const (
	CullNone Cull = iota
	CullCW        // discard clockwise triangles
	CullCCW       // discard counter-clockwise triangles
)

// BestPoint reduces clipped geometry to the intersection closest to the
// pick ray (the z axis of the pick volume) and merges it into best.
// Two vertices are a line, three or more a filled convex polygon.
func BestPoint(clipped []mgl32.Vec4, best *Intersection, cull Cull) {
	count := len(clipped)
	if count < 2 {
		return
	}
	var normalised [clip.MaxVertices]mgl32.Vec3
	for i, v := range clipped {
		if i == clip.MaxVertices {
			count = i
			break
		}
		if v.W() == 0 {
			return
		}
		normalised[i] = v.Vec3().Mul(1 / v.W())
	}
	points := normalised[:count]

	if cull != CullNone && count > 2 {
		area := signedAreaXY(points[0], points[1], points[2])
		if (cull == CullCW && area < 0) || (cull == CullCCW && area > 0) {
			return
		}
	}

	if count == 2 {
		p := segmentClosestToAxis(points[0], points[1])
		AssignIfCloser(best, NewIntersection(p.Z(), 0))
		return
	}

	if pointInPolygonXY(points) {
		if depth, ok := planeDepthAtAxis(points[0], points[1], points[2]); ok {
			AssignIfCloser(best, NewIntersection(depth, 0))
			return
		}
	}

	prev := points[count-1]
	for _, cur := range points {
		p := segmentClosestToAxis(prev, cur)
		AssignIfCloser(best, NewIntersection(p.Z(), p.X()*p.X()+p.Y()*p.Y()))
		prev = cur
	}
}

// PointFromClipped returns the intersection of a single clip-space vertex.
func PointFromClipped(v mgl32.Vec4) Intersection {
	if v.W() == 0 {
		return Intersection{}
	}
	x, y, z := v.X()/v.W(), v.Y()/v.W(), v.Z()/v.W()
	return NewIntersection(z, x*x+y*y)
}

func signedAreaXY(a, b, c mgl32.Vec3) float32 {
	return ((b.X()-a.X())*(c.Y()-a.Y()) - (c.X()-a.X())*(b.Y()-a.Y())) * 0.5
}

// segmentClosestToAxis returns the point of a-b nearest to the z axis,
// measured in x/y only.
func segmentClosestToAxis(a, b mgl32.Vec3) mgl32.Vec3 {
	vx, vy := b.X()-a.X(), b.Y()-a.Y()
	c1 := -a.X()*vx - a.Y()*vy
	if c1 <= 0 {
		return a
	}
	c2 := vx*vx + vy*vy
	if c2 <= c1 {
		return b
	}
	return a.Add(b.Sub(a).Mul(c1 / c2))
}

// pointInPolygonXY is a crossing-number test of the origin.
func pointInPolygonXY(points []mgl32.Vec3) bool {
	inside := false
	j := len(points) - 1
	for i := range points {
		pi, pj := points[i], points[j]
		if (pi.Y() > 0) != (pj.Y() > 0) {
			x := pi.X() + (0-pi.Y())*(pj.X()-pi.X())/(pj.Y()-pi.Y())
			if x > 0 {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// planeDepthAtAxis intersects the z axis with the plane through a, b, c.
func planeDepthAtAxis(a, b, c mgl32.Vec3) (float32, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if math32.Abs(n.Z()) < 1e-12 {
		return 0, false
	}
	return n.Dot(a) / n.Z(), true
}

// The helpers below clip geometry given in local space through local2clip
// and fold every piece into best.

func PointBest(local2clip mgl32.Mat4, p mgl32.Vec3, best *Intersection) {
	if v, mask := clip.Point(local2clip, p); mask == clip.Pass {
		AssignIfCloser(best, PointFromClipped(v))
	}
}

func LineBest(local2clip mgl32.Mat4, a, b mgl32.Vec3, best *Intersection) {
	var clipped [clip.MaxVertices]mgl32.Vec4
	n := clip.Line(local2clip, a, b, &clipped)
	BestPoint(clipped[:n], best, CullNone)
}

func LineStripBest(local2clip mgl32.Mat4, vertices []mgl32.Vec3, best *Intersection) {
	for i := 0; i+1 < len(vertices); i++ {
		LineBest(local2clip, vertices[i], vertices[i+1], best)
	}
}

func LineLoopBest(local2clip mgl32.Mat4, vertices []mgl32.Vec3, best *Intersection) {
	if len(vertices) == 0 {
		return
	}
	prev := vertices[len(vertices)-1]
	for _, cur := range vertices {
		LineBest(local2clip, prev, cur, best)
		prev = cur
	}
}

// LinesBest treats vertices as independent pairs.
func LinesBest(local2clip mgl32.Mat4, vertices []mgl32.Vec3, best *Intersection) {
	for i := 0; i+1 < len(vertices); i += 2 {
		LineBest(local2clip, vertices[i], vertices[i+1], best)
	}
}

func TriangleBest(local2clip mgl32.Mat4, cull Cull, a, b, c mgl32.Vec3, best *Intersection) {
	var clipped [clip.MaxVertices]mgl32.Vec4
	n := clip.Triangle(local2clip, a, b, c, &clipped)
	BestPoint(clipped[:n], best, cull)
}

// PolygonBest fans a convex polygon from its first vertex.
func PolygonBest(local2clip mgl32.Mat4, cull Cull, vertices []mgl32.Vec3, best *Intersection) {
	for i := 0; i+2 < len(vertices); i++ {
		TriangleBest(local2clip, cull, vertices[0], vertices[i+1], vertices[i+2], best)
	}
}

// CircleBest fills a circle outline as a fan around its centre (the local origin).
func CircleBest(local2clip mgl32.Mat4, cull Cull, vertices []mgl32.Vec3, best *Intersection) {
	if len(vertices) == 0 {
		return
	}
	var centre mgl32.Vec3
	prev := vertices[len(vertices)-1]
	for _, cur := range vertices {
		TriangleBest(local2clip, cull, centre, prev, cur, best)
		prev = cur
	}
}

func QuadBest(local2clip mgl32.Mat4, cull Cull, quad [4]mgl32.Vec3, best *Intersection) {
	TriangleBest(local2clip, cull, quad[0], quad[1], quad[3], best)
	TriangleBest(local2clip, cull, quad[1], quad[2], quad[3], best)
}

// TrianglesBest walks an unindexed triangle list.
func TrianglesBest(local2clip mgl32.Mat4, cull Cull, vertices []mgl32.Vec3, best *Intersection) {
	for i := 0; i+2 < len(vertices); i += 3 {
		TriangleBest(local2clip, cull, vertices[i], vertices[i+1], vertices[i+2], best)
	}
}

// IndexedTrianglesBest walks an indexed triangle list.
func IndexedTrianglesBest(local2clip mgl32.Mat4, cull Cull, vertices []mgl32.Vec3, indices []uint32, best *Intersection) {
	for i := 0; i+2 < len(indices); i += 3 {
		TriangleBest(local2clip, cull, vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]], best)
	}
}

func QuadsBest(local2clip mgl32.Mat4, cull Cull, vertices []mgl32.Vec3, best *Intersection) {
	for i := 0; i+3 < len(vertices); i += 4 {
		QuadBest(local2clip, cull, [4]mgl32.Vec3{vertices[i], vertices[i+1], vertices[i+2], vertices[i+3]}, best)
	}
}

func QuadStripBest(local2clip mgl32.Mat4, cull Cull, vertices []mgl32.Vec3, best *Intersection) {
	for i := 0; i+3 < len(vertices); i += 2 {
		TriangleBest(local2clip, cull, vertices[i], vertices[i+1], vertices[i+2], best)
		TriangleBest(local2clip, cull, vertices[i+2], vertices[i+1], vertices[i+3], best)
	}
}
