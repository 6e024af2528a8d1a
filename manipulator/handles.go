package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/view"
)

// Handle indices into a manipulator's selectable array.
const (
	handleX = iota
	handleY
	handleZ
	handleScreen
	handleSphere
	handlePivot

	noHandle = -1
)

// Proportions of handle geometry relative to Config.HandleSize.
const (
	arrowStart      = 0.2
	arrowHeadHeight = 0.2
	arrowHeadRadius = 0.06
	screenQuadHalf  = 0.125
	rotateScreen    = 1.15
	scaleQuadHalf   = 0.1

	circleSegments = 32
	coneSegments   = 8
)

// pixelDelta returns b-a in pixels.
func pixelDelta(v view.View, a, b mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{(b.X() - a.X()) * v.Viewport[0], (b.Y() - a.Y()) * v.Viewport[5]}
}
