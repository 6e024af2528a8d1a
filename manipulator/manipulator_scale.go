package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/pivot"
	"github.com/gekko3d/manip/selection"
	"github.com/gekko3d/manip/view"
)

// Scale has three axis lines and a screen quad. Unlike Translate it keeps
// edge-on axes pickable.
type Scale struct {
	Logger logging.Logger

	cfg     Config
	pivot   pivot.Pivot2World
	handles [4]selection.BasicSelectable

	axes [3]*ScaleAxis
	free *ScaleFree
}

func NewScale(sink Scalable, cfg Config) *Scale {
	cfg = cfg.withDefaults()
	m := &Scale{cfg: cfg}
	for i, axis := range unitAxes {
		m.axes[i] = NewScaleAxis(axis, sink, cfg.ScaleSnap)
	}
	m.free = NewScaleFree(sink, cfg.ScaleSnap)
	return m
}

func (m *Scale) TestSelect(test selection.Test, pivot2world mgl32.Mat4) {
	v := test.View()
	m.pivot.Update(pivot2world, v.Modelview, v.Projection, v.Viewport)
	selection.Deselect(m.handles[:])

	pool := selection.NewSortedPool()
	test.BeginMesh(m.pivot.AxisSpace, false)
	for i, axis := range unitAxes {
		var best selection.Intersection
		test.TestLines(m.line(axis), &best)
		pool.AddSelectable(best, &m.handles[i])
	}

	var best selection.Intersection
	test.BeginMesh(m.pivot.ViewpointSpace, false)
	test.TestQuads(screenQuad(m.cfg.HandleSize*scaleQuadHalf), &best)
	pool.AddSelectable(best, &m.handles[handleScreen])

	if s, hit, ok := pool.Best(); ok {
		s.SetSelected(true)
		logging.OrNop(m.Logger).Debugf("scale: handle hit %v", hit)
	}
}

func (m *Scale) ActiveComponent() Component {
	for i := range m.axes {
		if m.handles[i].IsSelected() {
			return m.axes[i]
		}
	}
	return m.free
}

func (m *Scale) SetSelected(selected bool) {
	if !selected {
		selection.Deselect(m.handles[:])
		return
	}
	if !m.IsSelected() {
		m.handles[handleScreen].SetSelected(true)
	}
}

func (m *Scale) IsSelected() bool {
	return selection.AnySelected(m.handles[:])
}

func (m *Scale) Colors() Colors {
	return Colors{
		X:      colorOf(ColorX, &m.handles[handleX]),
		Y:      colorOf(ColorY, &m.handles[handleY]),
		Z:      colorOf(ColorZ, &m.handles[handleZ]),
		Screen: colorOf(ColorScreen, &m.handles[handleScreen]),
		Sphere: ColorSphere,
		Pivot:  ColorPivot,
	}
}

func (m *Scale) Render(rc RenderContext, v view.View, pivot2world mgl32.Mat4) {
	m.pivot.Update(pivot2world, v.Modelview, v.Projection, v.Viewport)
	colors := m.Colors()
	axisColors := [3][4]float32{colors.X, colors.Y, colors.Z}
	wire := rc.Shader(StyleWire)
	for i, axis := range unitAxes {
		rc.Draw(wire, Geometry{Primitive: PrimitiveLines, Local2World: m.pivot.AxisSpace, Vertices: m.line(axis), Color: axisColors[i]})
	}
	rc.Draw(wire, Geometry{
		Primitive:   PrimitiveLineLoop,
		Local2World: m.pivot.ViewpointSpace,
		Vertices:    screenQuad(m.cfg.HandleSize * scaleQuadHalf),
		Color:       colors.Screen,
	})
}

func (m *Scale) line(axis mgl32.Vec3) []mgl32.Vec3 {
	return axisSegment(axis, m.cfg.HandleSize*arrowStart, m.cfg.HandleSize)
}
