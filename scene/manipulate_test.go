package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/manip/manipulator"
)

func device(x, y float32) mgl32.Vec2 { return mgl32.Vec2{x / 5, y / 5} }

func TestDrag_MovesSelectedNode(t *testing.T) {
	v := topDown()
	g := NewGraph()
	sel := g.Add(nil, box("selected", KindPrimitive, mgl32.Vec3{0, 0, 0}, 0.5))
	other := g.Add(nil, box("other", KindPrimitive, mgl32.Vec3{3, 3, 0}, 0.5))
	sel.SetSelected(true)
	m := manipulator.NewDrag(g, g, g.Resizer(), manipulator.DefaultConfig())

	m.TestSelect(pickAt(v, 0, 0), g.PivotMatrix())
	require.True(t, m.IsSelected())
	require.False(t, m.Resizing())

	g.Begin()
	c := m.ActiveComponent()
	c.BeginTransformation(g.PivotMatrix(), v, device(0, 0))
	c.Transform(g.PivotMatrix(), v, device(1, -2), manipulator.Unconstrained)
	assertVec3(t, mgl32.Vec3{1, -2, 0}, sel.Origin())
	assertVec3(t, mgl32.Vec3{3, 3, 0}, other.Origin())
	g.Commit()

	// the unselected node is not a drag handle
	m.TestSelect(pickAt(v, 3, 3), g.PivotMatrix())
	assert.True(t, m.Resizing(), "pointer beyond the selection offers its faces")
	assert.True(t, sel.Faces[FaceMaxX].IsSelected())
	assert.True(t, sel.Faces[FaceMaxY].IsSelected())
}

func TestDrag_ResizesFace(t *testing.T) {
	v := topDown()
	g := NewGraph()
	n := g.Add(nil, NewNode("slab", KindPrimitive, mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 1}))
	n.SetSelected(true)
	m := manipulator.NewDrag(g, g, g.Resizer(), manipulator.DefaultConfig())

	m.TestSelect(pickAt(v, 2, 0), g.PivotMatrix())
	require.True(t, m.Resizing())

	g.Begin()
	c := m.ActiveComponent()
	c.BeginTransformation(g.PivotMatrix(), v, device(2, 0))
	c.Transform(g.PivotMatrix(), v, device(3, 0), manipulator.Unconstrained)
	assert.InDelta(t, 2, n.Max.X(), 1e-4)
	assert.InDelta(t, 1, n.Max.Y(), 1e-4)
	assertVec3(t, mgl32.Vec3{0, 0, 0}, n.Origin())
}

func TestDrag_ResizeForgetsFacesOfEarlierGesture(t *testing.T) {
	v := topDown()
	g := NewGraph()
	n := g.Add(nil, box("cube", KindPrimitive, mgl32.Vec3{}, 0.5))
	n.SetSelected(true)
	m := manipulator.NewDrag(g, g, g.Resizer(), manipulator.DefaultConfig())

	m.TestSelect(pickAt(v, 2, 0), g.PivotMatrix())
	require.True(t, m.Resizing())
	g.Begin()
	c := m.ActiveComponent()
	c.BeginTransformation(g.PivotMatrix(), v, device(2, 0))
	c.Transform(g.PivotMatrix(), v, device(3, 0), manipulator.Unconstrained)
	g.Commit()
	m.SetSelected(false)
	assert.InDelta(t, 1.5, n.Max.X(), 1e-4)

	m.TestSelect(pickAt(v, 0, 2), g.PivotMatrix())
	require.True(t, m.Resizing())
	assert.False(t, n.Faces[FaceMaxX].IsSelected())
	assert.True(t, n.Faces[FaceMaxY].IsSelected())

	g.Begin()
	c = m.ActiveComponent()
	c.BeginTransformation(g.PivotMatrix(), v, device(0, 2))
	c.Transform(g.PivotMatrix(), v, device(1, 3), manipulator.Unconstrained)
	g.Commit()
	assert.InDelta(t, 1.5, n.Max.X(), 1e-4)
	assert.InDelta(t, 1.5, n.Max.Y(), 1e-4)
}

func TestModelScale_KeepsAnchorCornerFixed(t *testing.T) {
	v := topDown()
	g := NewGraph()
	n := g.Add(nil, NewNode("model", KindEntity, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 1, 1}))
	n.SetSelected(true)
	m := manipulator.NewModelScale(g, manipulator.DefaultConfig())

	m.TestSelect(pickAt(v, 1.9, 0.9), g.PivotMatrix())
	require.True(t, m.IsSelected())
	assertVec3(t, mgl32.Vec3{0, 0, 1}, m.Anchor())

	g.Begin()
	c := m.ActiveComponent()
	c.BeginTransformation(g.PivotMatrix(), v, device(2, 1))
	c.Transform(g.PivotMatrix(), v, device(4, 2), manipulator.Unconstrained)

	min, max := n.WorldBounds()
	assertVec3(t, mgl32.Vec3{0, 0, -1}, min)
	assertVec3(t, mgl32.Vec3{4, 2, 1}, max)

	g.Revert()
	min, max = n.WorldBounds()
	assertVec3(t, mgl32.Vec3{0, 0, 0}, min)
	assertVec3(t, mgl32.Vec3{2, 1, 1}, max)
}

func TestRotate_TurnsSelectionAboutPivot(t *testing.T) {
	v := topDown()
	g := NewGraph()
	n := g.Add(nil, box("cube", KindPrimitive, mgl32.Vec3{0, 0, 0}, 0.5))
	n.SetSelected(true)
	m := manipulator.NewRotate(g, g.PivotSink(), manipulator.DefaultConfig())

	// grab the screen ring on the right
	pivot := g.PivotMatrix()
	m.TestSelect(pickAt(v, 73.6/40, 0), pivot)
	require.True(t, m.IsSelected())

	g.Begin()
	c := m.ActiveComponent()
	c.BeginTransformation(pivot, v, device(73.6/40, 0))
	c.Transform(pivot, v, device(0, 73.6/40), manipulator.Unconstrained)
	assert.InDelta(t, mgl32.DegToRad(90), m.Angle(), 1e-3)
	axis := n.Transform.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	assertVec3(t, mgl32.Vec3{0, 1, 0}, axis)
}
