package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/pivot"
	"github.com/gekko3d/manip/selection"
	"github.com/gekko3d/manip/view"
)

// Rotate has a semicircle per axis facing the viewer, a screen circle, a
// trackball sphere and a pivot point that can be dragged to move the pivot.
type Rotate struct {
	Logger logging.Logger

	cfg     Config
	pivot   pivot.Pivot2World
	handles [6]selection.BasicSelectable
	visible [3]bool
	circles [3][]mgl32.Vec3
	scaled  mgl32.Mat4

	axes      [3]*RotateAxis
	screen    *RotateAxis
	sphere    *RotateFree
	pivotMove *TranslateFree
}

// NewRotate drives sink with rotations. When pivotSink is not nil the pivot
// point handle moves the pivot through it.
func NewRotate(sink Rotatable, pivotSink Translatable, cfg Config) *Rotate {
	cfg = cfg.withDefaults()
	m := &Rotate{cfg: cfg}
	for i, axis := range unitAxes {
		m.axes[i] = NewRotateAxis(axis, sink, cfg.RotateSnap, cfg.RotateFineSnap)
	}
	m.screen = NewRotateAxis(unitAxes[2], sink, cfg.RotateSnap, cfg.RotateFineSnap)
	m.sphere = NewRotateFree(sink, cfg.ArcballRadius, cfg.RotateSnap)
	if pivotSink != nil {
		m.pivotMove = NewTranslateFree(pivotSink, cfg.GridSize)
	}
	return m
}

// update recomputes frames and the viewer-facing semicircles.
func (m *Rotate) update(v view.View, pivot2world mgl32.Mat4) {
	m.pivot.Update(pivot2world, v.Modelview, v.Projection, v.Viewport)
	m.scaled = pivot.Frame(unitAxes[0], unitAxes[1], unitAxes[2], m.pivot.Origin(), m.pivot.Scale)
	m.screen.SetAxis(pivot.LocalDirection(pivot2world, m.pivot.AxisScreen))

	toViewer := m.pivot.AxisScreen
	for i := range unitAxes {
		axis := m.pivot.WorldAxis(i)
		m.visible[i] = m.pivot.AxisVisible(axis, m.cfg.AxisHideThreshold)
		if !m.visible[i] {
			m.circles[i] = nil
			continue
		}
		u := axis.Cross(toViewer).Normalize()
		w := u.Cross(axis).Normalize()
		m.circles[i] = semicircle(u, w, m.cfg.HandleSize, circleSegments/2)
	}
}

func (m *Rotate) TestSelect(test selection.Test, pivot2world mgl32.Mat4) {
	v := test.View()
	m.update(v, pivot2world)
	selection.Deselect(m.handles[:])
	log := logging.OrNop(m.Logger)

	if m.pivotMove != nil {
		if c, ok := v.Project(m.pivot.Origin()); ok &&
			v.DeviceDistancePixels(c.Vec2(), test.DevicePoint()) <= m.cfg.PivotPickRadius {
			m.handles[handlePivot].SetSelected(true)
			log.Debugf("rotate: pivot hit")
			return
		}
	}

	pool := selection.NewSortedPool()
	for i := range unitAxes {
		if !m.visible[i] {
			continue
		}
		var best selection.Intersection
		test.BeginMesh(m.scaled, false)
		test.TestLineStrip(m.circles[i], &best)
		pool.AddSelectable(best, &m.handles[i])
	}

	test.BeginMesh(m.pivot.ViewpointSpace, false)
	var screen, sphere selection.Intersection
	test.TestLineLoop(circle(m.cfg.HandleSize*rotateScreen, circleSegments), &screen)
	pool.AddSelectable(screen, &m.handles[handleScreen])
	test.TestPolygon(circle(m.cfg.HandleSize, circleSegments), &sphere)
	pool.AddSelectable(sphere, &m.handles[handleSphere])

	if s, hit, ok := pool.Best(); ok {
		s.SetSelected(true)
		log.Debugf("rotate: handle hit %v", hit)
	}
}

func (m *Rotate) ActiveComponent() Component {
	for i := range m.axes {
		if m.handles[i].IsSelected() {
			return m.axes[i]
		}
	}
	switch {
	case m.handles[handleScreen].IsSelected():
		return m.screen
	case m.handles[handlePivot].IsSelected() && m.pivotMove != nil:
		return m.pivotMove
	}
	return m.sphere
}

func (m *Rotate) SetSelected(selected bool) {
	if !selected {
		selection.Deselect(m.handles[:])
		return
	}
	if !m.IsSelected() {
		m.handles[handleSphere].SetSelected(true)
	}
}

func (m *Rotate) IsSelected() bool {
	return selection.AnySelected(m.handles[:])
}

// Angle is the angle of the axis or screen rotation in progress.
func (m *Rotate) Angle() float32 {
	if c, ok := m.ActiveComponent().(*RotateAxis); ok {
		return c.Angle()
	}
	return 0
}

func (m *Rotate) Colors() Colors {
	return Colors{
		X:      colorOf(ColorX, &m.handles[handleX]),
		Y:      colorOf(ColorY, &m.handles[handleY]),
		Z:      colorOf(ColorZ, &m.handles[handleZ]),
		Screen: colorOf(ColorScreen, &m.handles[handleScreen]),
		Sphere: colorOf(ColorSphere, &m.handles[handleSphere]),
		Pivot:  colorOf(ColorPivot, &m.handles[handlePivot]),
	}
}

func (m *Rotate) Render(rc RenderContext, v view.View, pivot2world mgl32.Mat4) {
	m.update(v, pivot2world)
	colors := m.Colors()
	axisColors := [3][4]float32{colors.X, colors.Y, colors.Z}
	wire := rc.Shader(StyleWire)
	for i := range unitAxes {
		if !m.visible[i] {
			continue
		}
		rc.Draw(wire, Geometry{Primitive: PrimitiveLineStrip, Local2World: m.scaled, Vertices: m.circles[i], Color: axisColors[i]})
	}
	rc.Draw(wire, Geometry{
		Primitive:   PrimitiveLineLoop,
		Local2World: m.pivot.ViewpointSpace,
		Vertices:    circle(m.cfg.HandleSize*rotateScreen, circleSegments),
		Color:       colors.Screen,
	})
	rc.Draw(wire, Geometry{
		Primitive:   PrimitiveLineLoop,
		Local2World: m.pivot.ViewpointSpace,
		Vertices:    circle(m.cfg.HandleSize, circleSegments),
		Color:       colors.Sphere,
	})
	if m.pivotMove != nil {
		rc.Draw(rc.Shader(StylePoint), Geometry{
			Primitive:   PrimitivePoints,
			Local2World: m.scaled,
			Vertices:    []mgl32.Vec3{{}},
			Color:       colors.Pivot,
		})
	}
}
