package manipulator

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/pivot"
	"github.com/gekko3d/manip/selection"
	"github.com/gekko3d/manip/view"
)

// Translate has three axis arrows and a screen-parallel quad. Axes seen
// edge-on are hidden and cannot be picked.
type Translate struct {
	// Constrained makes a miss fall back to the visible axis closest to the
	// pointer direction instead of free translation.
	Constrained bool
	Logger      logging.Logger

	cfg      Config
	pivot    pivot.Pivot2World
	handles  [4]selection.BasicSelectable
	visible  [3]bool
	fallback int

	axes [3]*TranslateAxis
	free *TranslateFree
}

func NewTranslate(sink Translatable, cfg Config) *Translate {
	cfg = cfg.withDefaults()
	m := &Translate{cfg: cfg, fallback: noHandle, visible: [3]bool{true, true, true}}
	for i, axis := range unitAxes {
		m.axes[i] = NewTranslateAxis(axis, sink, cfg.GridSize)
	}
	m.free = NewTranslateFree(sink, cfg.GridSize)
	return m
}

func (m *Translate) TestSelect(test selection.Test, pivot2world mgl32.Mat4) {
	v := test.View()
	m.pivot.Update(pivot2world, v.Modelview, v.Projection, v.Viewport)
	selection.Deselect(m.handles[:])
	m.fallback = noHandle

	size := m.cfg.HandleSize
	pool := selection.NewSortedPool()
	for i, axis := range unitAxes {
		m.visible[i] = m.pivot.AxisVisible(m.pivot.WorldAxis(i), m.cfg.AxisHideThreshold)
		if !m.visible[i] {
			continue
		}
		var best selection.Intersection
		test.BeginMesh(m.pivot.AxisSpace, false)
		test.TestLines(m.arrow(axis), &best)
		test.TestTriangles(m.head(axis), nil, &best)
		pool.AddSelectable(best, &m.handles[i])
	}

	var best selection.Intersection
	test.BeginMesh(m.pivot.ViewpointSpace, false)
	test.TestQuads(screenQuad(size*screenQuadHalf), &best)
	pool.AddSelectable(best, &m.handles[handleScreen])

	log := logging.OrNop(m.Logger)
	if s, hit, ok := pool.Best(); ok {
		s.SetSelected(true)
		log.Debugf("translate: handle hit %v", hit)
		return
	}
	m.fallback = m.pickFallback(test)
	log.Debugf("translate: no handle hit, fallback %d", m.fallback)
}

// pickFallback chooses the visible axis whose screen direction best matches
// the pointer offset from the pivot, or the screen handle.
func (m *Translate) pickFallback(test selection.Test) int {
	if !m.Constrained {
		return handleScreen
	}
	v := test.View()
	centre, ok := v.Project(m.pivot.Origin())
	if !ok {
		return handleScreen
	}
	offset := pixelDelta(v, centre.Vec2(), test.DevicePoint())
	if offset.Len() < epsilon {
		return handleScreen
	}
	offset = offset.Normalize()

	choice, best := handleScreen, float32(-1)
	for i := range unitAxes {
		if !m.visible[i] {
			continue
		}
		tip, ok := v.Project(m.pivot.Origin().Add(m.pivot.WorldAxis(i).Mul(m.pivot.Scale * m.cfg.HandleSize)))
		if !ok {
			continue
		}
		dir := pixelDelta(v, centre.Vec2(), tip.Vec2())
		if dir.Len() < epsilon {
			continue
		}
		if d := math32.Abs(dir.Normalize().Dot(offset)); d > best {
			choice, best = i, d
		}
	}
	return choice
}

func (m *Translate) ActiveComponent() Component {
	for i := range m.axes {
		if m.handles[i].IsSelected() {
			return m.axes[i]
		}
	}
	if m.handles[handleScreen].IsSelected() {
		return m.free
	}
	if m.fallback >= handleX && m.fallback <= handleZ {
		return m.axes[m.fallback]
	}
	return m.free
}

func (m *Translate) SetSelected(selected bool) {
	if !selected {
		selection.Deselect(m.handles[:])
		m.fallback = noHandle
		return
	}
	if m.IsSelected() {
		return
	}
	if m.fallback >= handleX && m.fallback <= handleZ {
		m.handles[m.fallback].SetSelected(true)
		return
	}
	m.handles[handleScreen].SetSelected(true)
}

func (m *Translate) IsSelected() bool {
	return selection.AnySelected(m.handles[:])
}

// Visible reports which axes survived the last TestSelect or Render.
func (m *Translate) Visible() [3]bool { return m.visible }

func (m *Translate) Colors() Colors {
	return Colors{
		X:      colorOf(ColorX, &m.handles[handleX]),
		Y:      colorOf(ColorY, &m.handles[handleY]),
		Z:      colorOf(ColorZ, &m.handles[handleZ]),
		Screen: colorOf(ColorScreen, &m.handles[handleScreen]),
		Sphere: ColorSphere,
		Pivot:  ColorPivot,
	}
}

func (m *Translate) Render(rc RenderContext, v view.View, pivot2world mgl32.Mat4) {
	m.pivot.Update(pivot2world, v.Modelview, v.Projection, v.Viewport)
	colors := m.Colors()
	axisColors := [3][4]float32{colors.X, colors.Y, colors.Z}
	wire, fill := rc.Shader(StyleWire), rc.Shader(StyleFill)
	for i, axis := range unitAxes {
		m.visible[i] = m.pivot.AxisVisible(m.pivot.WorldAxis(i), m.cfg.AxisHideThreshold)
		if !m.visible[i] {
			continue
		}
		rc.Draw(wire, Geometry{Primitive: PrimitiveLines, Local2World: m.pivot.AxisSpace, Vertices: m.arrow(axis), Color: axisColors[i]})
		rc.Draw(fill, Geometry{Primitive: PrimitiveTriangles, Local2World: m.pivot.AxisSpace, Vertices: m.head(axis), Color: axisColors[i]})
	}
	rc.Draw(wire, Geometry{
		Primitive:   PrimitiveLineLoop,
		Local2World: m.pivot.ViewpointSpace,
		Vertices:    screenQuad(m.cfg.HandleSize * screenQuadHalf),
		Color:       colors.Screen,
	})
}

func (m *Translate) arrow(axis mgl32.Vec3) []mgl32.Vec3 {
	return axisSegment(axis, m.cfg.HandleSize*arrowStart, m.cfg.HandleSize)
}

func (m *Translate) head(axis mgl32.Vec3) []mgl32.Vec3 {
	size := m.cfg.HandleSize
	return arrowHead(axis, size, size*arrowHeadHeight, size*arrowHeadRadius, coneSegments)
}
