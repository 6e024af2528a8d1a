package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/selection"
)

// Primitive tells the renderer how to assemble Geometry vertices.
type Primitive int

const (
	PrimitiveLines Primitive = iota
	PrimitiveLineStrip
	PrimitiveLineLoop
	PrimitiveTriangles
	PrimitivePolygon // convex, drawn as a fan
	PrimitivePoints
)

// Style selects the host shader a piece of geometry is drawn with.
type Style int

const (
	StyleWire Style = iota
	StyleFill
	StylePoint
)

// ShaderHandle is an opaque id owned by the host renderer.
type ShaderHandle uint32

// Geometry is one handle shape in the same local space it was hit tested in.
type Geometry struct {
	Primitive   Primitive
	Local2World mgl32.Mat4
	Vertices    []mgl32.Vec3
	Color       [4]float32
}

// RenderContext is implemented by the host. Manipulators look up shaders
// through it and never keep rendering state of their own.
type RenderContext interface {
	Shader(style Style) ShaderHandle
	Draw(shader ShaderHandle, g Geometry)
}

var (
	ColorX        = [4]float32{1, 0, 0, 1}
	ColorY        = [4]float32{0, 1, 0, 1}
	ColorZ        = [4]float32{0, 0, 1, 1}
	ColorScreen   = [4]float32{0, 1, 1, 1}
	ColorSphere   = [4]float32{0.75, 0.75, 0.75, 1}
	ColorPivot    = [4]float32{1, 1, 1, 1}
	ColorSelected = [4]float32{1, 1, 0, 1}
)

// Colors is the current colour of each handle of a manipulator.
type Colors struct {
	X, Y, Z, Screen, Sphere [4]float32
	Pivot                   [4]float32
}

func colorOf(base [4]float32, handle *selection.BasicSelectable) [4]float32 {
	if handle.IsSelected() {
		return ColorSelected
	}
	return base
}
