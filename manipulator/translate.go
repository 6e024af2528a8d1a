package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/pivot"
	"github.com/gekko3d/manip/view"
)

// TranslateAxis moves along one pivot axis by the closest approach of the
// pointer ray to that axis.
type TranslateAxis struct {
	axis mgl32.Vec3
	sink Translatable
	grid float32

	worldAxis mgl32.Vec3
	origin    mgl32.Vec3
	start     float32
}

// NewTranslateAxis binds a local pivot axis to sink. grid is the snap step
// used with the Grid flag.
func NewTranslateAxis(axis mgl32.Vec3, sink Translatable, grid float32) *TranslateAxis {
	return &TranslateAxis{axis: axis, sink: sink, grid: grid}
}

func (c *TranslateAxis) Axis() mgl32.Vec3 { return c.axis }

func (c *TranslateAxis) SetAxis(axis mgl32.Vec3) { c.axis = axis }

func (c *TranslateAxis) BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2) {
	c.worldAxis = pivot.WorldDirection(pivot2world, c.axis).Normalize()
	c.origin = origin(pivot2world)
	c.start = c.param(v, device, 0)
}

func (c *TranslateAxis) Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint) {
	offset := c.param(v, device, c.start) - c.start
	if flags.Has(Grid) {
		offset = snap(offset, c.grid)
	}
	c.sink.Translate(c.worldAxis.Mul(offset))
}

// param is the position along the axis closest to the pointer ray, or
// fallback when the ray runs parallel to the axis.
func (c *TranslateAxis) param(v view.View, device mgl32.Vec2, fallback float32) float32 {
	ro, rd := v.DeviceRay(device)
	_, s, _, ok := closestPoints(ro, rd, c.origin, c.worldAxis)
	if !ok {
		return fallback
	}
	return s
}

// TranslateFree moves in the view-facing plane through the pivot.
type TranslateFree struct {
	sink Translatable
	grid float32

	origin mgl32.Vec3
	start  mgl32.Vec3
}

func NewTranslateFree(sink Translatable, grid float32) *TranslateFree {
	return &TranslateFree{sink: sink, grid: grid}
}

func (c *TranslateFree) BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2) {
	c.origin = origin(pivot2world)
	c.start = v.DeviceAtDepth(device, c.origin)
}

func (c *TranslateFree) Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint) {
	delta := v.DeviceAtDepth(device, c.origin).Sub(c.start)
	if flags.Has(Shift) {
		delta = dominant(delta)
	}
	if flags.Has(Grid) {
		delta = snapVec(delta, c.grid)
	}
	c.sink.Translate(delta)
}
