package manipulator

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/selection"
	"github.com/gekko3d/manip/view"
)

// ModelScaleTarget is an object the model scale manipulator can resize.
type ModelScaleTarget interface {
	Object
	Bounded
	Translatable
	Scalable
}

type modelHandle struct {
	selection.BasicSelectable
	target  ModelScaleTarget
	corners [8]mgl32.Vec3
	quad    []mgl32.Vec3
}

// ModelScale puts a screen-parallel quad over every selected model. Dragging
// a quad scales its model uniformly about the box corner opposite the one
// grabbed.
type ModelScale struct {
	Logger logging.Logger

	cfg     Config
	scene   Scene
	handles []*modelHandle
	active  *modelHandle
	grabbed mgl32.Vec3
	anchor  mgl32.Vec3

	origin    mgl32.Vec3
	component *anchoredScale
}

func NewModelScale(scene Scene, cfg Config) *ModelScale {
	cfg = cfg.withDefaults()
	m := &ModelScale{cfg: cfg, scene: scene}
	m.component = &anchoredScale{m: m}
	m.component.free = NewScaleFree(ScaleFunc(m.apply), cfg.ScaleSnap)
	return m
}

// collect rebuilds one handle per selected model from its projected bounds.
func (m *ModelScale) collect(v view.View) {
	m.handles = m.handles[:0]
	m.scene.ForEachSelected(func(o Object) bool {
		t, ok := o.(ModelScaleTarget)
		if !ok {
			return true
		}
		if h, ok := newModelHandle(t, v); ok {
			m.handles = append(m.handles, h)
		}
		return true
	})
}

func newModelHandle(t ModelScaleTarget, v view.View) (*modelHandle, bool) {
	h := &modelHandle{target: t}
	min, max := t.WorldBounds()
	h.corners = boxCorners(min, max)

	lo := mgl32.Vec2{1e30, 1e30}
	hi := mgl32.Vec2{-1e30, -1e30}
	for _, c := range h.corners {
		p, ok := v.Project(c)
		if !ok {
			return nil, false
		}
		for k := 0; k < 2; k++ {
			lo[k] = math32.Min(lo[k], p[k])
			hi[k] = math32.Max(hi[k], p[k])
		}
	}
	centre := min.Add(max).Mul(0.5)
	h.quad = []mgl32.Vec3{
		v.DeviceAtDepth(mgl32.Vec2{lo.X(), lo.Y()}, centre),
		v.DeviceAtDepth(mgl32.Vec2{hi.X(), lo.Y()}, centre),
		v.DeviceAtDepth(mgl32.Vec2{hi.X(), hi.Y()}, centre),
		v.DeviceAtDepth(mgl32.Vec2{lo.X(), hi.Y()}, centre),
	}
	return h, true
}

func (m *ModelScale) TestSelect(test selection.Test, pivot2world mgl32.Mat4) {
	v := test.View()
	m.active = nil
	m.collect(v)

	pool := selection.NewSortedPool()
	test.BeginMesh(mgl32.Ident4(), false)
	for _, h := range m.handles {
		var best selection.Intersection
		test.TestQuads(h.quad, &best)
		pool.AddSelectable(best, h)
	}
	s, _, ok := pool.Best()
	if !ok {
		return
	}
	h := s.(*modelHandle)
	h.SetSelected(true)
	m.active = h

	nearest := float32(-1)
	for _, c := range h.corners {
		p, _ := v.Project(c)
		if d := v.DeviceDistancePixels(p.Vec2(), test.DevicePoint()); nearest < 0 || d < nearest {
			nearest = d
			m.grabbed = c
		}
	}
	min, max := h.target.WorldBounds()
	m.anchor = min.Add(max).Sub(m.grabbed)
	logging.OrNop(m.Logger).Debugf("model scale: grabbed %v anchor %v", m.grabbed, m.anchor)
}

// Anchor is the fixed corner of the active scale.
func (m *ModelScale) Anchor() mgl32.Vec3 { return m.anchor }

// Grabbed is the corner nearest the pointer when the handle was hit.
func (m *ModelScale) Grabbed() mgl32.Vec3 { return m.grabbed }

func (m *ModelScale) ActiveComponent() Component { return m.component }

func (m *ModelScale) SetSelected(selected bool) {
	if !selected {
		for _, h := range m.handles {
			h.SetSelected(false)
		}
		m.active = nil
		return
	}
	if m.active == nil && len(m.handles) > 0 {
		m.active = m.handles[0]
		m.active.SetSelected(true)
	}
}

func (m *ModelScale) IsSelected() bool {
	return m.active != nil && m.active.IsSelected()
}

// apply scales the active model and moves it so the anchor stays put.
func (m *ModelScale) apply(s mgl32.Vec3) {
	if m.active == nil {
		return
	}
	d := m.origin.Sub(m.anchor)
	m.active.target.Scale(s)
	m.active.target.Translate(mgl32.Vec3{d[0] * (s[0] - 1), d[1] * (s[1] - 1), d[2] * (s[2] - 1)})
}

func (m *ModelScale) Render(rc RenderContext, v view.View, pivot2world mgl32.Mat4) {
	m.collect(v)
	wire := rc.Shader(StyleWire)
	for _, h := range m.handles {
		color := ColorScreen
		if m.active != nil && h.target == m.active.target {
			color = ColorSelected
		}
		rc.Draw(wire, Geometry{Primitive: PrimitiveLineLoop, Local2World: mgl32.Ident4(), Vertices: h.quad, Color: color})
	}
}

// anchoredScale measures a uniform scale from the anchor corner instead of
// the pivot.
type anchoredScale struct {
	m    *ModelScale
	free *ScaleFree
}

func (c *anchoredScale) anchored(pivot2world mgl32.Mat4) mgl32.Mat4 {
	pivot2world[12], pivot2world[13], pivot2world[14] = c.m.anchor[0], c.m.anchor[1], c.m.anchor[2]
	return pivot2world
}

func (c *anchoredScale) BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2) {
	if c.m.active != nil {
		c.m.origin = c.m.active.target.Origin()
	}
	c.free.BeginTransformation(c.anchored(pivot2world), v, device)
}

func (c *anchoredScale) Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint) {
	c.free.Transform(c.anchored(pivot2world), v, device, flags)
}

func boxCorners(min, max mgl32.Vec3) [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				out[i][k] = max[k]
			} else {
				out[i][k] = min[k]
			}
		}
	}
	return out
}
