// Package pivot derives the frames manipulator handles are drawn and hit
// tested in from a pivot matrix and the current view.
package pivot

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/view"
)

const epsilon = 1e-6

// Pivot2World is recomputed from scratch for every render or test pass.
type Pivot2World struct {
	// WorldSpace is the pivot matrix unchanged.
	WorldSpace mgl32.Mat4
	// AxisSpace has the pivot orientation with unit axes scaled to Scale,
	// so one local unit is one pixel on screen at the pivot.
	AxisSpace mgl32.Mat4
	// ViewpointSpace faces the viewer (local +Z towards the eye), scaled like AxisSpace.
	ViewpointSpace mgl32.Mat4
	// ViewplaneSpace is aligned with the camera image plane, scaled like AxisSpace.
	ViewplaneSpace mgl32.Mat4
	// AxisScreen is the unit world direction from the pivot towards the viewer.
	AxisScreen mgl32.Vec3
	// Scale is the number of world units covered by one pixel at the pivot depth.
	Scale float32
}

// New computes the frames for pivot2world seen through v.
func New(pivot2world mgl32.Mat4, v view.View) Pivot2World {
	var p Pivot2World
	p.Update(pivot2world, v.Modelview, v.Projection, v.Viewport)
	return p
}

func (p *Pivot2World) Update(pivot2world, modelview, projection, viewport mgl32.Mat4) {
	p.WorldSpace = pivot2world
	origin := pivot2world.Col(3).Vec3()

	clipPos := projection.Mul4(modelview).Mul4x1(origin.Vec4(1))
	p.Scale = 1
	if denom := math32.Abs(projection[0] * viewport[0]); denom > epsilon {
		if w := math32.Abs(clipPos.W()); w > epsilon {
			p.Scale = w / denom
		}
	}

	camera := modelview.Inv()
	right := unitOr(camera.Col(0).Vec3(), mgl32.Vec3{1, 0, 0})
	up := unitOr(camera.Col(1).Vec3(), mgl32.Vec3{0, 1, 0})
	back := unitOr(camera.Col(2).Vec3(), mgl32.Vec3{0, 0, 1})

	p.AxisScreen = back
	if projection[15] == 0 {
		p.AxisScreen = unitOr(camera.Col(3).Vec3().Sub(origin), back)
	}

	x := up.Cross(p.AxisScreen)
	if x.Len() < epsilon {
		x = right
	}
	x = x.Normalize()
	y := p.AxisScreen.Cross(x)
	p.ViewpointSpace = Frame(x, y, p.AxisScreen, origin, p.Scale)
	p.ViewplaneSpace = Frame(right, up, back, origin, p.Scale)

	ax := unitOr(pivot2world.Col(0).Vec3(), mgl32.Vec3{1, 0, 0})
	ay := unitOr(pivot2world.Col(1).Vec3(), mgl32.Vec3{0, 1, 0})
	az := unitOr(pivot2world.Col(2).Vec3(), mgl32.Vec3{0, 0, 1})
	p.AxisSpace = Frame(ax, ay, az, origin, p.Scale)
}

// Origin is the pivot position in world space.
func (p *Pivot2World) Origin() mgl32.Vec3 {
	return p.WorldSpace.Col(3).Vec3()
}

// WorldAxis returns local axis i (0..2) of the pivot as a unit world vector.
func (p *Pivot2World) WorldAxis(i int) mgl32.Vec3 {
	return p.AxisSpace.Col(i).Vec3().Normalize()
}

// AxisVisible reports whether a world direction is far enough from edge-on
// to be dragged: |axis . AxisScreen| < threshold.
func (p *Pivot2World) AxisVisible(axis mgl32.Vec3, threshold float32) bool {
	return math32.Abs(axis.Normalize().Dot(p.AxisScreen)) < threshold
}

// Frame builds a matrix with columns x*scale, y*scale, z*scale and origin.
func Frame(x, y, z, origin mgl32.Vec3, scale float32) mgl32.Mat4 {
	return mgl32.Mat4{
		x[0] * scale, x[1] * scale, x[2] * scale, 0,
		y[0] * scale, y[1] * scale, y[2] * scale, 0,
		z[0] * scale, z[1] * scale, z[2] * scale, 0,
		origin[0], origin[1], origin[2], 1,
	}
}

func unitOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < epsilon {
		return fallback
	}
	return v.Normalize()
}

// LocalDirection converts a world direction into the pivot's rotation-only
// local frame.
func LocalDirection(pivot2world mgl32.Mat4, dir mgl32.Vec3) mgl32.Vec3 {
	x := unitOr(pivot2world.Col(0).Vec3(), mgl32.Vec3{1, 0, 0})
	y := unitOr(pivot2world.Col(1).Vec3(), mgl32.Vec3{0, 1, 0})
	z := unitOr(pivot2world.Col(2).Vec3(), mgl32.Vec3{0, 0, 1})
	return mgl32.Vec3{dir.Dot(x), dir.Dot(y), dir.Dot(z)}
}

// WorldDirection converts a local direction to world space using the
// normalised rotation part of pivot2world.
func WorldDirection(pivot2world mgl32.Mat4, dir mgl32.Vec3) mgl32.Vec3 {
	x := unitOr(pivot2world.Col(0).Vec3(), mgl32.Vec3{1, 0, 0})
	y := unitOr(pivot2world.Col(1).Vec3(), mgl32.Vec3{0, 1, 0})
	z := unitOr(pivot2world.Col(2).Vec3(), mgl32.Vec3{0, 0, 1})
	return x.Mul(dir[0]).Add(y.Mul(dir[1])).Add(z.Mul(dir[2]))
}
