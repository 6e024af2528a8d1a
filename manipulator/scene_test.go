package manipulator

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/manip/selection"
)

// fakeObject is an axis aligned box in world space whose top face is its
// pickable surface.
type fakeObject struct {
	selection.BasicSelectable
	min, max mgl32.Vec3
	origin   mgl32.Vec3
	corners  [8]selection.BasicSelectable
	face     selection.BasicSelectable
	rec      recorder
}

func newFakeObject(min, max mgl32.Vec3, selected bool) *fakeObject {
	o := &fakeObject{min: min, max: max, origin: min}
	o.SetSelected(selected)
	return o
}

func (o *fakeObject) TestSelect(sel selection.Selector, test selection.Test) {
	sel.PushSelectable(o)
	test.BeginMesh(mgl32.Ident4(), false)
	top := o.max.Z()
	var best selection.Intersection
	test.TestQuads([]mgl32.Vec3{
		{o.min.X(), o.min.Y(), top},
		{o.max.X(), o.min.Y(), top},
		{o.max.X(), o.max.Y(), top},
		{o.min.X(), o.max.Y(), top},
	}, &best)
	sel.AddIntersection(best)
	sel.PopSelectable()
}

func (o *fakeObject) TestSelectComponents(sel selection.Selector, test selection.Test) {
	test.BeginMesh(mgl32.Ident4(), false)
	for i, c := range boxCorners(o.min, o.max) {
		sel.PushSelectable(&o.corners[i])
		var best selection.Intersection
		test.TestPoint(c, &best)
		sel.AddIntersection(best)
		sel.PopSelectable()
	}
}

// SelectPlanes offers the +x face when the pick ray passes beyond it.
func (o *fakeObject) SelectPlanes(sel selection.Selector, test selection.Test) {
	test.BeginMesh(mgl32.Ident4(), false)
	if test.Near().X() > o.max.X() {
		sel.PushSelectable(&o.face)
		sel.AddIntersection(selection.NewIntersection(0, 0))
		sel.PopSelectable()
	}
}

func (o *fakeObject) WorldBounds() (mgl32.Vec3, mgl32.Vec3) { return o.min, o.max }
func (o *fakeObject) Origin() mgl32.Vec3                     { return o.origin }
func (o *fakeObject) Translate(t mgl32.Vec3)                 { o.rec.Translate(t) }
func (o *fakeObject) Scale(s mgl32.Vec3)                     { o.rec.Scale(s) }

type fakeScene struct {
	objects []*fakeObject
	visited []Mode
}

func (s *fakeScene) ForEachVisible(test selection.Test, mode Mode, fn func(Object) bool) {
	s.visited = append(s.visited, mode)
	for _, o := range s.objects {
		if !fn(o) {
			return
		}
	}
}

func (s *fakeScene) ForEachSelected(fn func(Object) bool) {
	for _, o := range s.objects {
		if o.IsSelected() && !fn(o) {
			return
		}
	}
}

func (s *fakeScene) SetSelectedAllComponents(selected bool) {
	for _, o := range s.objects {
		for i := range o.corners {
			o.corners[i].SetSelected(selected)
		}
		o.face.SetSelected(selected)
	}
}

func TestDrag_SelectedObjectUnderPointer(t *testing.T) {
	v := topDown()
	scene := &fakeScene{objects: []*fakeObject{newFakeObject(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 1}, true)}}
	m := NewDrag(scene, &recorder{}, &recorder{}, DefaultConfig())

	m.TestSelect(pick(v, world2device(0.5, 0)), mgl32.Ident4())
	require.True(t, m.IsSelected())
	assert.False(t, m.Resizing())
	assert.Same(t, m.dragFree, m.ActiveComponent())
	assert.Equal(t, []Mode{ModeObject}, scene.visited)
}

func TestDrag_UnselectedObjectIsNotDragged(t *testing.T) {
	v := topDown()
	scene := &fakeScene{objects: []*fakeObject{newFakeObject(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 1}, false)}}
	m := NewDrag(scene, &recorder{}, &recorder{}, DefaultConfig())

	m.TestSelect(pick(v, world2device(0, 0)), mgl32.Ident4())
	assert.False(t, m.IsSelected())
	assert.Equal(t, []Mode{ModeObject, ModeGroupPart}, scene.visited)

	scene.visited = nil
	m.Mode = ModeEntity
	m.TestSelect(pick(v, world2device(0, 0)), mgl32.Ident4())
	assert.False(t, m.IsSelected())
	assert.Equal(t, []Mode{ModeEntity}, scene.visited)
}

func TestDrag_ResizeFacesOfSelection(t *testing.T) {
	v := topDown()
	box := newFakeObject(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 1}, true)
	scene := &fakeScene{objects: []*fakeObject{box}}
	m := NewDrag(scene, &recorder{}, &recorder{}, DefaultConfig())

	m.TestSelect(pick(v, world2device(2, 0)), mgl32.Ident4())
	require.True(t, m.IsSelected())
	assert.True(t, m.Resizing())
	assert.True(t, box.face.IsSelected())
	assert.Same(t, m.resizeFree, m.ActiveComponent())

	m.SetSelected(false)
	assert.False(t, m.IsSelected())
}

func TestDrag_ResizeReplacesComponentSelection(t *testing.T) {
	v := topDown()
	box := newFakeObject(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 1}, true)
	scene := &fakeScene{objects: []*fakeObject{box}}
	m := NewDrag(scene, &recorder{}, &recorder{}, DefaultConfig())

	box.corners[0].SetSelected(true)
	m.TestSelect(pick(v, world2device(2, 0)), mgl32.Ident4())
	require.True(t, m.Resizing())
	assert.True(t, box.face.IsSelected())
	assert.False(t, box.corners[0].IsSelected())
}

func TestDrag_EntityModeNeverResizes(t *testing.T) {
	v := topDown()
	box := newFakeObject(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 1}, true)
	scene := &fakeScene{objects: []*fakeObject{box}}
	m := NewDrag(scene, &recorder{}, &recorder{}, DefaultConfig())
	m.Mode = ModeEntity

	m.TestSelect(pick(v, world2device(2, 0)), mgl32.Ident4())
	assert.False(t, m.IsSelected())
	assert.False(t, m.Resizing())
	assert.False(t, box.face.IsSelected())
	assert.Equal(t, []Mode{ModeEntity}, scene.visited)
}

func TestDrag_ComponentMode(t *testing.T) {
	v := topDown()
	box := newFakeObject(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 1}, true)
	scene := &fakeScene{objects: []*fakeObject{box}}
	m := NewDrag(scene, &recorder{}, &recorder{}, DefaultConfig())
	m.Mode = ModeComponent

	// an unselected hit replaces the component selection
	box.corners[0].SetSelected(true)
	m.TestSelect(pick(v, world2device(1, 1)), mgl32.Ident4())
	require.True(t, m.IsSelected())
	assert.Same(t, m.resizeFree, m.ActiveComponent())
	assert.False(t, box.corners[0].IsSelected())
	// the top corner is nearer than the one below it
	assert.True(t, box.corners[7].IsSelected())
	assert.False(t, box.corners[3].IsSelected())

	// a hit inside the selection keeps it
	box.corners[0].SetSelected(true)
	m.TestSelect(pick(v, world2device(1, 1)), mgl32.Ident4())
	assert.True(t, box.corners[0].IsSelected())
	assert.True(t, box.corners[7].IsSelected())

	m.TestSelect(pick(v, world2device(3, 3)), mgl32.Ident4())
	assert.False(t, m.IsSelected())
}

func TestModelScale_AnchorsOppositeCorner(t *testing.T) {
	v := topDown()
	box := newFakeObject(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 1, 1}, true)
	scene := &fakeScene{objects: []*fakeObject{box}}
	m := NewModelScale(scene, DefaultConfig())

	m.TestSelect(pick(v, world2device(1.9, 0.9)), mgl32.Ident4())
	require.True(t, m.IsSelected())
	assertVec3(t, mgl32.Vec3{2, 1, 0}, m.Grabbed())
	assertVec3(t, mgl32.Vec3{0, 0, 1}, m.Anchor())

	c := m.ActiveComponent()
	c.BeginTransformation(mgl32.Ident4(), v, world2device(2, 1))
	c.Transform(mgl32.Ident4(), v, world2device(4, 2), Unconstrained)
	assertVec3(t, mgl32.Vec3{2, 2, 2}, box.rec.lastScale(t))
	// scaling about the origin at min moves the anchor to z=2; the
	// translation brings it back
	assertVec3(t, mgl32.Vec3{0, 0, -1}, box.rec.lastTranslation(t))

	var rc fakeRenderer
	m.Render(&rc, v, mgl32.Ident4())
	require.Len(t, rc.draws, 1)
	assert.Equal(t, ColorSelected, rc.draws[0].g.Color)
	assert.Len(t, rc.draws[0].g.Vertices, 4)
}

func TestModelScale_Miss(t *testing.T) {
	v := topDown()
	box := newFakeObject(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 1, 1}, true)
	unselected := newFakeObject(mgl32.Vec3{-3, -3, 0}, mgl32.Vec3{-2, -2, 1}, false)
	scene := &fakeScene{objects: []*fakeObject{box, unselected}}
	m := NewModelScale(scene, DefaultConfig())

	m.TestSelect(pick(v, world2device(-2.5, -2.5)), mgl32.Ident4())
	assert.False(t, m.IsSelected())

	// nothing active, so transforms do nothing
	c := m.ActiveComponent()
	c.BeginTransformation(mgl32.Ident4(), v, world2device(0, 0))
	c.Transform(mgl32.Ident4(), v, world2device(1, 1), Unconstrained)
	assert.Empty(t, box.rec.scales)
}
