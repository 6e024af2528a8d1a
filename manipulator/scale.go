package manipulator

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/pivot"
	"github.com/gekko3d/manip/view"
)

// ScaleAxis scales along one pivot axis by the ratio of the current to the
// starting pointer offset along that axis. The emitted vector is in pivot
// local axes.
type ScaleAxis struct {
	axis mgl32.Vec3
	sink Scalable
	step float32

	worldAxis mgl32.Vec3
	origin    mgl32.Vec3
	start     float32
}

func NewScaleAxis(axis mgl32.Vec3, sink Scalable, step float32) *ScaleAxis {
	return &ScaleAxis{axis: axis, sink: sink, step: step}
}

func (c *ScaleAxis) BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2) {
	c.worldAxis = pivot.WorldDirection(pivot2world, c.axis).Normalize()
	c.origin = origin(pivot2world)
	c.start = c.param(v, device)
}

func (c *ScaleAxis) Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint) {
	r := ratio(c.param(v, device), c.start)
	if flags.Has(Grid) {
		r = snap(r, c.step)
	}
	if flags.Has(Shift) {
		c.sink.Scale(mgl32.Vec3{r, r, r})
		return
	}
	scale := mgl32.Vec3{1, 1, 1}
	for i := 0; i < 3; i++ {
		scale[i] += (r - 1) * math32.Abs(c.axis[i])
	}
	c.sink.Scale(scale)
}

func (c *ScaleAxis) param(v view.View, device mgl32.Vec2) float32 {
	ro, rd := v.DeviceRay(device)
	_, s, _, ok := closestPoints(ro, rd, c.origin, c.worldAxis)
	if !ok {
		return 0
	}
	return s
}

// ScaleFree scales uniformly by the projection of the current pointer
// offset from the pivot onto the starting offset.
type ScaleFree struct {
	sink Scalable
	step float32

	origin mgl32.Vec3
	start  mgl32.Vec3
}

func NewScaleFree(sink Scalable, step float32) *ScaleFree {
	return &ScaleFree{sink: sink, step: step}
}

func (c *ScaleFree) BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2) {
	c.origin = origin(pivot2world)
	c.start = v.DeviceAtDepth(device, c.origin).Sub(c.origin)
}

func (c *ScaleFree) Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint) {
	current := v.DeviceAtDepth(device, c.origin).Sub(c.origin)
	r := float32(1)
	if d := c.start.Dot(c.start); d > epsilon {
		r = current.Dot(c.start) / d
	}
	if flags.Has(Grid) {
		r = snap(r, c.step)
	}
	c.sink.Scale(mgl32.Vec3{r, r, r})
}

// ratio is current/start, or 1 when start is too close to zero.
func ratio(current, start float32) float32 {
	if math32.Abs(start) < epsilon {
		return 1
	}
	return current / start
}
