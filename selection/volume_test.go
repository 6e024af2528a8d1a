package selection

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/manip/view"
)

// orthoTopDown looks down -Z from (0,0,10) onto a 10x10 world window.
func orthoTopDown() view.View {
	proj := mgl32.Ortho(-5, 5, -5, 5, 0.1, 100)
	mv := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return view.New(mv, proj, 100, 100)
}

var unitQuad = []mgl32.Vec3{
	{-0.5, -0.5, 0},
	{0.5, -0.5, 0},
	{0.5, 0.5, 0},
	{-0.5, 0.5, 0},
}

func quadPool(v view.View, device mgl32.Vec2, quad []mgl32.Vec3) (*SortedPool, *BasicSelectable) {
	test := NewVolume(v, device, v.DeviceEpsilon(2))
	pool := NewSortedPool()
	s := &BasicSelectable{}

	pool.PushSelectable(s)
	var best Intersection
	test.BeginMesh(mgl32.Ident4(), false)
	test.TestQuads(quad, &best)
	pool.AddIntersection(best)
	pool.PopSelectable()
	return pool, s
}

func TestVolume_QuadHitAtCentre(t *testing.T) {
	pool, s := quadPool(orthoTopDown(), mgl32.Vec2{0, 0}, unitQuad)

	require.False(t, pool.Empty())
	got, i, _ := pool.Best()
	assert.Same(t, s, got)
	assert.InDelta(t, 0, i.Distance(), 1e-6)
	assert.True(t, i.Depth() > -1 && i.Depth() < 1)
}

func TestVolume_QuadMissOutside(t *testing.T) {
	pool, _ := quadPool(orthoTopDown(), mgl32.Vec2{0.5, 0.5}, unitQuad)
	assert.True(t, pool.Empty())
}

func TestVolume_QuadEdgeDistance(t *testing.T) {
	// centre 0.1 world units right of the edge at x=0.5, pick half extent 0.2
	pool, _ := quadPool(orthoTopDown(), mgl32.Vec2{0.12, 0}, unitQuad)

	require.False(t, pool.Empty())
	_, i, _ := pool.Best()
	assert.InDelta(t, 0.25, i.Distance(), 1e-3)
}

func TestVolume_BackFacesCulled(t *testing.T) {
	reversed := []mgl32.Vec3{unitQuad[3], unitQuad[2], unitQuad[1], unitQuad[0]}

	pool, _ := quadPool(orthoTopDown(), mgl32.Vec2{0, 0}, reversed)
	assert.True(t, pool.Empty(), "clockwise quad is a back face")

	v := orthoTopDown()
	v.Fill = false
	test := NewVolume(v, mgl32.Vec2{0, 0}, v.DeviceEpsilon(2))
	test.BeginMesh(mgl32.Ident4(), true)
	var best Intersection
	test.TestQuads(reversed, &best)
	assert.True(t, best.Valid(), "two-sided wireframe meshes are not culled")
}

func TestVolume_NearestDepthWins(t *testing.T) {
	v := orthoTopDown()
	test := NewVolume(v, mgl32.Vec2{0, 0}, v.DeviceEpsilon(2))
	pool := NewSortedPool()
	low, high := &BasicSelectable{}, &BasicSelectable{}

	for _, c := range []struct {
		s Selectable
		z float32
	}{{low, -2}, {high, 3}} {
		pool.PushSelectable(c.s)
		var best Intersection
		test.BeginMesh(mgl32.Translate3D(0, 0, c.z), false)
		test.TestPolygon(unitQuad, &best)
		pool.AddIntersection(best)
		pool.PopSelectable()
	}

	require.Equal(t, 2, pool.Len())
	got, _, _ := pool.Best()
	assert.Same(t, high, got, "the quad closer to the camera at z=10 wins")
}

func TestVolume_LinesAndPoints(t *testing.T) {
	v := orthoTopDown()
	test := NewVolume(v, mgl32.Vec2{0, 0}, v.DeviceEpsilon(2))

	var line Intersection
	test.TestLineStrip([]mgl32.Vec3{{-1, 0.05, 0}, {1, 0.05, 0}}, &line)
	require.True(t, line.Valid())
	assert.Equal(t, float32(0), line.Distance(), "lines rank by depth only")

	var miss Intersection
	test.TestLineLoop([]mgl32.Vec3{{2, 2, 0}, {3, 2, 0}, {3, 3, 0}}, &miss)
	assert.False(t, miss.Valid())

	var point Intersection
	test.TestPoint(mgl32.Vec3{0.1, 0, 0}, &point)
	require.True(t, point.Valid())
	assert.InDelta(t, 0.25, point.Distance(), 1e-3)

	near, far := test.Near(), test.Far()
	assert.InDelta(t, 0, near.X(), 1e-4)
	assert.True(t, near.Z() > far.Z(), "pick ray runs from the camera into the scene")
}

func TestVolume_Triangles(t *testing.T) {
	v := orthoTopDown()
	test := NewVolume(v, mgl32.Vec2{0, 0}, v.DeviceEpsilon(2))

	verts := []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}, {5, 5, 0}}
	var indexed Intersection
	test.TestTriangles(verts, []uint32{0, 1, 2}, &indexed)
	assert.True(t, indexed.Valid())

	var strip Intersection
	test.TestQuadStrip([]mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}, {1, 1, 0}}, &strip)
	assert.True(t, strip.Valid())
}
