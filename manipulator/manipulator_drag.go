package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/selection"
	"github.com/gekko3d/manip/view"
)

// Drag has no handles of its own. It is hit when the pointer is over the
// current selection and moves it freely, or over a face of a selected
// object, in which case it resizes. Entity mode only ever drags.
type Drag struct {
	Logger logging.Logger
	Mode   Mode

	cfg    Config
	scene  Scene
	drag   selection.BasicSelectable
	resize selection.BasicSelectable

	dragFree   *TranslateFree
	resizeFree *TranslateFree
}

// NewDrag moves the selection through dragSink and resizes faces or
// components through resizeSink.
func NewDrag(scene Scene, dragSink, resizeSink Translatable, cfg Config) *Drag {
	cfg = cfg.withDefaults()
	return &Drag{
		cfg:        cfg,
		scene:      scene,
		dragFree:   NewTranslateFree(dragSink, cfg.GridSize),
		resizeFree: NewTranslateFree(resizeSink, cfg.GridSize),
	}
}

func (m *Drag) TestSelect(test selection.Test, pivot2world mgl32.Mat4) {
	m.drag.SetSelected(false)
	m.resize.SetSelected(false)
	log := logging.OrNop(m.Logger)

	if m.Mode == ModeComponent {
		if m.testComponents(test) {
			m.resize.SetSelected(true)
			log.Debugf("drag: component hit")
		}
		return
	}

	if m.testVisible(test, m.Mode) {
		m.drag.SetSelected(true)
		log.Debugf("drag: %s hit", m.Mode)
		return
	}
	if m.Mode == ModeEntity {
		return
	}
	if m.Mode == ModeObject && m.testVisible(test, ModeGroupPart) {
		m.drag.SetSelected(true)
		log.Debugf("drag: group part hit")
		return
	}

	pool := selection.NewSortedPool()
	m.scene.ForEachSelected(func(o Object) bool {
		if p, ok := o.(PlaneSelectable); ok {
			p.SelectPlanes(pool, test)
		}
		return true
	})
	if pool.Empty() {
		return
	}
	m.scene.SetSelectedAllComponents(false)
	pool.Each(func(_ selection.Intersection, s selection.Selectable) bool {
		s.SetSelected(true)
		return true
	})
	m.resize.SetSelected(true)
	log.Debugf("drag: resize %d planes", pool.Len())
}

// testVisible reports whether an already selected object is under the pointer.
func (m *Drag) testVisible(test selection.Test, mode Mode) bool {
	var sel selection.BooleanSelector
	m.scene.ForEachVisible(test, mode, func(o Object) bool {
		if t, ok := o.(Testable); ok {
			t.TestSelect(&sel, test)
		}
		return !sel.IsSelected()
	})
	return sel.IsSelected()
}

// testComponents selects the components closest to the pointer. An existing
// component selection is kept when the pointer is over one of its members.
func (m *Drag) testComponents(test selection.Test) bool {
	best := selection.NewBestSelector(m.cfg.BestDepthEpsilon, m.cfg.BestDistanceEpsilon)
	m.scene.ForEachSelected(func(o Object) bool {
		if c, ok := o.(ComponentTestable); ok {
			c.TestSelectComponents(best, test)
		}
		return true
	})
	if best.Failed() {
		return false
	}
	tied := best.Best()
	for _, s := range tied {
		if !s.IsSelected() {
			m.scene.SetSelectedAllComponents(false)
			for _, s := range tied {
				s.SetSelected(true)
			}
			break
		}
	}
	return true
}

func (m *Drag) ActiveComponent() Component {
	if m.resize.IsSelected() {
		return m.resizeFree
	}
	return m.dragFree
}

func (m *Drag) SetSelected(selected bool) {
	m.drag.SetSelected(selected)
	if !selected {
		m.resize.SetSelected(false)
	}
}

func (m *Drag) IsSelected() bool {
	return m.drag.IsSelected() || m.resize.IsSelected()
}

// Resizing reports whether the last hit selected faces or components.
func (m *Drag) Resizing() bool { return m.resize.IsSelected() }

// Render draws nothing; the selection itself is the handle.
func (m *Drag) Render(rc RenderContext, v view.View, pivot2world mgl32.Mat4) {}
