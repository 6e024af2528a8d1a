// Package view holds the camera state a selection test or a manipulator
// needs: model-view, projection and viewport matrices plus an optional
// scissor that maps a pick rectangle onto the whole clip volume.
package view

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type View struct {
	Modelview  mgl32.Mat4
	Projection mgl32.Mat4
	// Viewport maps normalised device coordinates to pixels relative to the
	// viewport centre (see ViewportMatrix).
	Viewport mgl32.Mat4
	// Fill is true for solid shaded views. Wireframe views do not cull
	// two-sided meshes when hit testing.
	Fill bool

	scissor  mgl32.Mat4
	viewproj mgl32.Mat4
}

// New builds a view for a viewport of width x height pixels.
func New(modelview, projection mgl32.Mat4, width, height int) View {
	v := View{
		Modelview:  modelview,
		Projection: projection,
		Viewport:   ViewportMatrix(float32(width), float32(height)),
		Fill:       true,
		scissor:    mgl32.Ident4(),
	}
	v.construct()
	return v
}

// ViewportMatrix scales device coordinates to pixels, origin at the viewport centre.
func ViewportMatrix(width, height float32) mgl32.Mat4 {
	return mgl32.Scale3D(width*0.5, height*0.5, 1)
}

func (v *View) construct() {
	v.viewproj = v.scissor.Mul4(v.Projection).Mul4(v.Modelview)
}

// ViewProj returns scissor * projection * modelview.
func (v View) ViewProj() mgl32.Mat4 {
	if v.viewproj == (mgl32.Mat4{}) {
		return v.Projection.Mul4(v.Modelview)
	}
	return v.viewproj
}

// Unscissored returns the view without any pick rectangle applied.
func (v View) Unscissored() View {
	v.scissor = mgl32.Ident4()
	v.construct()
	return v
}

// Scissored restricts the view to the device rectangle [min, max]; the
// rectangle is stretched over the canonical clip volume.
func (v View) Scissored(min, max mgl32.Vec2) View {
	const minExtent = 1e-6
	w := math32.Max(max.X()-min.X(), minExtent)
	h := math32.Max(max.Y()-min.Y(), minExtent)

	s := mgl32.Ident4()
	s[0] = 2 / w
	s[5] = 2 / h
	s[12] = -(min.X() + max.X()) / w
	s[13] = -(min.Y() + max.Y()) / h
	v.scissor = s
	v.construct()
	return v
}

// PickAt restricts the view to a rectangle of +-epsilon around a device point.
func (v View) PickAt(device, epsilon mgl32.Vec2) View {
	return v.Unscissored().Scissored(device.Sub(epsilon), device.Add(epsilon))
}

// Size returns the viewport size in pixels.
func (v View) Size() (width, height float32) {
	return v.Viewport[0] * 2, v.Viewport[5] * 2
}

// PixelToDevice converts window coordinates (origin top left, y down) to
// device coordinates in [-1, 1].
func (v View) PixelToDevice(px, py float32) mgl32.Vec2 {
	w, h := v.Size()
	return mgl32.Vec2{2*px/w - 1, 1 - 2*py/h}
}

// DeviceEpsilon converts a pixel radius to a device-space extent.
func (v View) DeviceEpsilon(pixels float32) mgl32.Vec2 {
	return mgl32.Vec2{pixels / v.Viewport[0], pixels / v.Viewport[5]}
}

// DeviceDistancePixels measures the pixel distance between two device points.
func (v View) DeviceDistancePixels(a, b mgl32.Vec2) float32 {
	dx := (a.X() - b.X()) * v.Viewport[0]
	dy := (a.Y() - b.Y()) * v.Viewport[5]
	return math32.Sqrt(dx*dx + dy*dy)
}

// IsPerspective reports whether the projection divides by depth.
func (v View) IsPerspective() bool {
	return v.Projection[15] == 0
}

// CameraToWorld returns the inverse of the model-view matrix.
func (v View) CameraToWorld() mgl32.Mat4 {
	return v.Modelview.Inv()
}

// Eye returns the camera position in world space.
func (v View) Eye() mgl32.Vec3 {
	return v.CameraToWorld().Col(3).Vec3()
}

// Axes returns the camera right, up and back vectors in world space.
func (v View) Axes() (right, up, back mgl32.Vec3) {
	c := v.CameraToWorld()
	return c.Col(0).Vec3().Normalize(), c.Col(1).Vec3().Normalize(), c.Col(2).Vec3().Normalize()
}

// Project returns the device coordinates and NDC depth of a world point
// without the scissor. ok is false for points behind a perspective camera.
func (v View) Project(p mgl32.Vec3) (mgl32.Vec3, bool) {
	c := v.Projection.Mul4(v.Modelview).Mul4x1(p.Vec4(1))
	if c.W() <= 0 {
		return mgl32.Vec3{}, false
	}
	return Projected(c), true
}

// DeviceRay returns the world-space ray through a device point, from the
// near plane towards the far plane.
func (v View) DeviceRay(device mgl32.Vec2) (origin, dir mgl32.Vec3) {
	inv := v.Projection.Mul4(v.Modelview).Inv()
	near := Projected(inv.Mul4x1(mgl32.Vec4{device.X(), device.Y(), -1, 1}))
	far := Projected(inv.Mul4x1(mgl32.Vec4{device.X(), device.Y(), 1, 1}))
	d := far.Sub(near)
	if d.Len() == 0 {
		return near, mgl32.Vec3{0, 0, -1}
	}
	return near, d.Normalize()
}

// DeviceAtDepth unprojects a device point at the depth of a world point,
// giving a point on the view-facing plane through that point.
func (v View) DeviceAtDepth(device mgl32.Vec2, at mgl32.Vec3) mgl32.Vec3 {
	m := v.Projection.Mul4(v.Modelview)
	c := m.Mul4x1(at.Vec4(1))
	if c.W() == 0 {
		return at
	}
	return Projected(m.Inv().Mul4x1(mgl32.Vec4{device.X(), device.Y(), c.Z() / c.W(), 1}))
}

// Projected divides a homogeneous vector by its w component.
func Projected(v mgl32.Vec4) mgl32.Vec3 {
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}
