package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/selection"
	"github.com/gekko3d/manip/view"
)

// Manipulator is a composite tool. TestSelect hit tests its handles and
// marks at most one as selected; ActiveComponent returns the component the
// next gesture should drive.
type Manipulator interface {
	TestSelect(test selection.Test, pivot2world mgl32.Mat4)
	ActiveComponent() Component
	SetSelected(selected bool)
	IsSelected() bool
	Render(rc RenderContext, v view.View, pivot2world mgl32.Mat4)
}

// Mode is the granularity the drag manipulator selects at.
type Mode int

const (
	ModeObject Mode = iota
	ModeGroupPart
	ModeEntity
	ModeComponent
)

func (m Mode) String() string {
	switch m {
	case ModeObject:
		return "object"
	case ModeGroupPart:
		return "group-part"
	case ModeEntity:
		return "entity"
	case ModeComponent:
		return "component"
	}
	return "unknown"
}

// Object is a scene node as seen by manipulators. Further capabilities are
// discovered through the interfaces below.
type Object interface {
	selection.Selectable
}

// Testable objects push themselves onto sel and report their hits.
type Testable interface {
	TestSelect(sel selection.Selector, test selection.Test)
}

// ComponentTestable objects report hits on their sub-elements, each pushed
// as its own selectable.
type ComponentTestable interface {
	TestSelectComponents(sel selection.Selector, test selection.Test)
}

// PlaneSelectable objects report the faces whose planes the pick ray
// passes in front of.
type PlaneSelectable interface {
	SelectPlanes(sel selection.Selector, test selection.Test)
}

// Bounded objects have a world-space box and a transform origin.
type Bounded interface {
	WorldBounds() (min, max mgl32.Vec3)
	Origin() mgl32.Vec3
}

// Scene is the collaborator that owns objects and their selection state.
type Scene interface {
	// ForEachVisible visits objects in the pick volume at the granularity of
	// mode until fn returns false.
	ForEachVisible(test selection.Test, mode Mode, fn func(Object) bool)
	ForEachSelected(fn func(Object) bool)
	SetSelectedAllComponents(selected bool)
}
