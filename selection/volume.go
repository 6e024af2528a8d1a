package selection

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/view"
)

// Test is the hit-test primitive a scene object or manipulator uses to
// measure its geometry against the pick volume. BeginMesh sets the
// local-to-world transform of the geometry that follows.
type Test interface {
	BeginMesh(local2world mgl32.Mat4, twoSided bool)
	// View is the view scissored to the pick rectangle.
	View() view.View
	// DevicePoint is the centre of the pick rectangle.
	DevicePoint() mgl32.Vec2
	// DeviceEpsilon is the half extent of the pick rectangle.
	DeviceEpsilon() mgl32.Vec2
	// Near and Far are the ends of the pick ray in the current mesh space.
	Near() mgl32.Vec3
	Far() mgl32.Vec3

	TestPoint(p mgl32.Vec3, best *Intersection)
	TestPolygon(vertices []mgl32.Vec3, best *Intersection)
	TestLineLoop(vertices []mgl32.Vec3, best *Intersection)
	TestLineStrip(vertices []mgl32.Vec3, best *Intersection)
	TestLines(vertices []mgl32.Vec3, best *Intersection)
	TestTriangles(vertices []mgl32.Vec3, indices []uint32, best *Intersection)
	TestQuads(vertices []mgl32.Vec3, best *Intersection)
	TestQuadStrip(vertices []mgl32.Vec3, best *Intersection)

	// VisibleAABB reports whether a world-space box reaches the pick volume.
	VisibleAABB(min, max mgl32.Vec3) bool
}

// Volume tests geometry against the clip volume of a view scissored around
// a device point.
type Volume struct {
	view       view.View
	device     mgl32.Vec2
	epsilon    mgl32.Vec2
	local2clip mgl32.Mat4
	cull       Cull
	near, far  mgl32.Vec3
	planes     [6]mgl32.Vec4
}

// NewVolume scissors v to device +- epsilon and starts an identity mesh.
func NewVolume(v view.View, device, epsilon mgl32.Vec2) *Volume {
	t := &Volume{
		view:    v.PickAt(device, epsilon),
		device:  device,
		epsilon: epsilon,
	}
	t.planes = view.ExtractFrustum(t.view.ViewProj())
	t.BeginMesh(mgl32.Ident4(), false)
	return t
}

func (t *Volume) View() view.View           { return t.view }
func (t *Volume) DevicePoint() mgl32.Vec2   { return t.device }
func (t *Volume) DeviceEpsilon() mgl32.Vec2 { return t.epsilon }
func (t *Volume) Near() mgl32.Vec3          { return t.near }
func (t *Volume) Far() mgl32.Vec3           { return t.far }

// BeginMesh culls back faces by the handedness of local2world unless the
// mesh is two-sided in a wireframe view.
func (t *Volume) BeginMesh(local2world mgl32.Mat4, twoSided bool) {
	t.local2clip = t.view.ViewProj().Mul4(local2world)
	switch {
	case twoSided && !t.view.Fill:
		t.cull = CullNone
	case local2world.Det() >= 0:
		t.cull = CullCW
	default:
		t.cull = CullCCW
	}

	clip2local := t.local2clip.Inv()
	t.near = view.Projected(clip2local.Mul4x1(mgl32.Vec4{0, 0, -1, 1}))
	t.far = view.Projected(clip2local.Mul4x1(mgl32.Vec4{0, 0, 1, 1}))
}

func (t *Volume) TestPoint(p mgl32.Vec3, best *Intersection) {
	PointBest(t.local2clip, p, best)
}

func (t *Volume) TestPolygon(vertices []mgl32.Vec3, best *Intersection) {
	PolygonBest(t.local2clip, t.cull, vertices, best)
}

func (t *Volume) TestLineLoop(vertices []mgl32.Vec3, best *Intersection) {
	LineLoopBest(t.local2clip, vertices, best)
}

func (t *Volume) TestLineStrip(vertices []mgl32.Vec3, best *Intersection) {
	LineStripBest(t.local2clip, vertices, best)
}

func (t *Volume) TestLines(vertices []mgl32.Vec3, best *Intersection) {
	LinesBest(t.local2clip, vertices, best)
}

func (t *Volume) TestTriangles(vertices []mgl32.Vec3, indices []uint32, best *Intersection) {
	if indices == nil {
		TrianglesBest(t.local2clip, t.cull, vertices, best)
		return
	}
	IndexedTrianglesBest(t.local2clip, t.cull, vertices, indices, best)
}

func (t *Volume) TestQuads(vertices []mgl32.Vec3, best *Intersection) {
	QuadsBest(t.local2clip, t.cull, vertices, best)
}

func (t *Volume) TestQuadStrip(vertices []mgl32.Vec3, best *Intersection) {
	QuadStripBest(t.local2clip, t.cull, vertices, best)
}

func (t *Volume) VisibleAABB(min, max mgl32.Vec3) bool {
	return view.AABBInFrustum(min, max, t.planes)
}
