package manipulator

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/pivot"
	"github.com/gekko3d/manip/view"
)

// RotateAxis turns about one pivot axis by the signed angle the pointer
// sweeps around the pivot in the plane orthogonal to the axis.
type RotateAxis struct {
	axis     mgl32.Vec3
	sink     Rotatable
	snap     float32
	fineSnap float32

	worldAxis mgl32.Vec3
	origin    mgl32.Vec3
	start     mgl32.Vec3
	angle     float32
}

// NewRotateAxis binds a local pivot axis to sink. snapDeg and fineSnapDeg
// are the Grid and Alt increments in degrees.
func NewRotateAxis(axis mgl32.Vec3, sink Rotatable, snapDeg, fineSnapDeg float32) *RotateAxis {
	return &RotateAxis{axis: axis, sink: sink, snap: snapDeg, fineSnap: fineSnapDeg}
}

func (c *RotateAxis) SetAxis(axis mgl32.Vec3) { c.axis = axis }

func (c *RotateAxis) Axis() mgl32.Vec3 { return c.axis }

// Angle returns the last emitted angle in radians.
func (c *RotateAxis) Angle() float32 { return c.angle }

func (c *RotateAxis) BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2) {
	c.worldAxis = pivot.WorldDirection(pivot2world, c.axis).Normalize()
	c.origin = origin(pivot2world)
	c.start, _ = c.planeVector(v, device)
	c.angle = 0
}

func (c *RotateAxis) Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint) {
	current, ok := c.planeVector(v, device)
	angle := float32(0)
	if ok && c.start.Len() > 0 {
		angle = math32.Atan2(c.start.Cross(current).Dot(c.worldAxis), c.start.Dot(current))
	}
	switch {
	case flags.Has(Alt):
		angle = snap(angle, mgl32.DegToRad(c.fineSnap))
	case flags.Has(Grid):
		angle = snap(angle, mgl32.DegToRad(c.snap))
	}
	c.angle = angle
	c.sink.Rotate(mgl32.QuatRotate(angle, c.worldAxis))
}

// planeVector returns the unit vector from the pivot to the pointer in the
// plane orthogonal to the axis. An edge-on plane falls back to the view plane.
func (c *RotateAxis) planeVector(v view.View, device mgl32.Vec2) (mgl32.Vec3, bool) {
	ro, rd := v.DeviceRay(device)
	hit, ok := rayPlane(ro, rd, c.origin, c.worldAxis)
	if !ok {
		hit = v.DeviceAtDepth(device, c.origin)
	}
	d := hit.Sub(c.origin)
	d = d.Sub(c.worldAxis.Mul(d.Dot(c.worldAxis)))
	if d.Len() < epsilon {
		return mgl32.Vec3{}, false
	}
	return d.Normalize(), true
}

// RotateFree is an arcball centred on the projected pivot.
type RotateFree struct {
	sink   Rotatable
	radius float32
	snap   float32

	start  mgl32.Vec3
	centre mgl32.Vec2
}

// NewRotateFree creates an arcball of radius pixels. snapDeg is used with Shift.
func NewRotateFree(sink Rotatable, radius, snapDeg float32) *RotateFree {
	return &RotateFree{sink: sink, radius: radius, snap: snapDeg}
}

func (c *RotateFree) BeginTransformation(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2) {
	c.centre = mgl32.Vec2{}
	if p, ok := v.Project(origin(pivot2world)); ok {
		c.centre = p.Vec2()
	}
	c.start = c.spherePoint(v, device)
}

func (c *RotateFree) Transform(pivot2world mgl32.Mat4, v view.View, device mgl32.Vec2, flags Constraint) {
	current := c.spherePoint(v, device)
	q := mgl32.QuatBetweenVectors(c.start, current)
	if flags.Has(Shift) {
		q = snapQuat(q, mgl32.DegToRad(c.snap))
	}
	c.sink.Rotate(q)
}

// spherePoint lifts a device point onto the arcball and returns it in world
// space.
func (c *RotateFree) spherePoint(v view.View, device mgl32.Vec2) mgl32.Vec3 {
	radius := c.radius
	if radius <= 0 {
		radius = 1
	}
	x := (device.X() - c.centre.X()) * v.Viewport[0] / radius
	y := (device.Y() - c.centre.Y()) * v.Viewport[5] / radius

	var p mgl32.Vec3
	if d := x*x + y*y; d <= 1 {
		p = mgl32.Vec3{x, y, math32.Sqrt(1 - d)}
	} else {
		l := math32.Sqrt(d)
		p = mgl32.Vec3{x / l, y / l, 0}
	}
	right, up, back := v.Axes()
	return right.Mul(p[0]).Add(up.Mul(p[1])).Add(back.Mul(p[2]))
}

// snapQuat rounds the rotation angle of q keeping its axis.
func snapQuat(q mgl32.Quat, step float32) mgl32.Quat {
	q = q.Normalize()
	s := q.V.Len()
	if s < epsilon {
		return mgl32.QuatIdent()
	}
	angle := 2 * math32.Atan2(s, q.W)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return mgl32.QuatRotate(snap(angle, step), q.V.Mul(1/s))
}
