package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/manip/selection"
)

type Kind int

const (
	KindPrimitive Kind = iota
	KindEntity
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEntity:
		return "entity"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

// Face indices: -X, +X, -Y, +Y, -Z, +Z.
const (
	FaceMinX = iota
	FaceMaxX
	FaceMinY
	FaceMaxY
	FaceMinZ
	FaceMaxZ
)

// Node is a box in a transform hierarchy. Groups carry no geometry of
// their own and are hit through their descendants.
type Node struct {
	ID        uuid.UUID
	Name      string
	Kind      Kind
	Transform Transform
	// Min and Max bound the box in local space.
	Min, Max mgl32.Vec3

	Faces   [6]selection.BasicSelectable
	Corners [8]selection.BasicSelectable

	parent   *Node
	children []*Node
	selected bool

	base      nodeState
	baseWorld mgl32.Vec3
}

// nodeState is the part of a node a transaction can revert.
type nodeState struct {
	Transform Transform
	Min, Max  mgl32.Vec3
}

func NewNode(name string, kind Kind, min, max mgl32.Vec3) *Node {
	n := &Node{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		Transform: NewTransform(),
		Min:       min,
		Max:       max,
	}
	n.base = nodeState{Transform: n.Transform, Min: min, Max: max}
	return n
}

func (n *Node) IsSelected() bool          { return n.selected }
func (n *Node) SetSelected(selected bool) { n.selected = selected }

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// LocalToWorld composes the transforms from the root down to n.
func (n *Node) LocalToWorld() mgl32.Mat4 {
	m := n.Transform.ObjectToWorld()
	if n.parent != nil {
		return n.parent.LocalToWorld().Mul4(m)
	}
	return m
}

// WorldToLocal is the inverse of LocalToWorld.
func (n *Node) WorldToLocal() mgl32.Mat4 {
	m := n.Transform.WorldToObject()
	if n.parent != nil {
		return m.Mul4(n.parent.WorldToLocal())
	}
	return m
}

func (n *Node) worldToParent() mgl32.Mat4 {
	if n.parent == nil {
		return mgl32.Ident4()
	}
	return n.parent.WorldToLocal()
}

// worldRotation composes the rotations from the root down to n.
func (n *Node) worldRotation() mgl32.Quat {
	if n.parent == nil {
		return n.Transform.Rotation
	}
	return n.parent.worldRotation().Mul(n.Transform.Rotation)
}

// Origin is the node position in world space.
func (n *Node) Origin() mgl32.Vec3 {
	return n.LocalToWorld().Col(3).Vec3()
}

// WorldBounds is the world box around the node's corners, or around all
// descendants for a group.
func (n *Node) WorldBounds() (mgl32.Vec3, mgl32.Vec3) {
	inf := float32(1e20)
	wMin := mgl32.Vec3{inf, inf, inf}
	wMax := mgl32.Vec3{-inf, -inf, -inf}
	n.walkGeometry(func(g *Node) {
		o2w := g.LocalToWorld()
		for _, c := range boxCorners(g.Min, g.Max) {
			wc := o2w.Mul4x1(c.Vec4(1)).Vec3()
			for k := 0; k < 3; k++ {
				wMin[k] = math32.Min(wMin[k], wc[k])
				wMax[k] = math32.Max(wMax[k], wc[k])
			}
		}
	})
	return wMin, wMax
}

// walkGeometry visits n, or every non-group descendant when n is a group.
func (n *Node) walkGeometry(fn func(*Node)) {
	if n.Kind != KindGroup {
		fn(n)
		return
	}
	for _, c := range n.children {
		c.walkGeometry(fn)
	}
}

// TestSelect reports the nearest box face of n, or of its descendants for
// a group, as a hit on n.
func (n *Node) TestSelect(sel selection.Selector, test selection.Test) {
	sel.PushSelectable(n)
	var best selection.Intersection
	n.walkGeometry(func(g *Node) {
		test.BeginMesh(g.LocalToWorld(), false)
		test.TestQuads(boxQuads(g.Min, g.Max), &best)
	})
	sel.AddIntersection(best)
	sel.PopSelectable()
}

// TestSelectComponents tests the box corners as points.
func (n *Node) TestSelectComponents(sel selection.Selector, test selection.Test) {
	if n.Kind == KindGroup {
		return
	}
	test.BeginMesh(n.LocalToWorld(), false)
	for i, c := range boxCorners(n.Min, n.Max) {
		sel.PushSelectable(&n.Corners[i])
		var best selection.Intersection
		test.TestPoint(c, &best)
		sel.AddIntersection(best)
		sel.PopSelectable()
	}
}

// SelectPlanes offers every face the pick ray passes in front of, judged at
// the point of the ray closest to the box centre.
func (n *Node) SelectPlanes(sel selection.Selector, test selection.Test) {
	if n.Kind == KindGroup {
		return
	}
	test.BeginMesh(n.LocalToWorld(), false)
	near, far := test.Near(), test.Far()
	centre := n.Min.Add(n.Max).Mul(0.5)

	p := near
	if dir := far.Sub(near); dir.Dot(dir) > 0 {
		t := centre.Sub(near).Dot(dir) / dir.Dot(dir)
		p = near.Add(dir.Mul(t))
	}
	for i := range n.Faces {
		k := i / 2
		if (i%2 == 1 && p[k] > n.Max[k]) || (i%2 == 0 && p[k] < n.Min[k]) {
			sel.PushSelectable(&n.Faces[i])
			sel.AddIntersection(selection.NewIntersection(0, 0))
			sel.PopSelectable()
		}
	}
}

func (n *Node) setSelectedComponents(selected bool) {
	selection.Deselect(n.Faces[:])
	selection.Deselect(n.Corners[:])
	if selected {
		for i := range n.Faces {
			n.Faces[i].SetSelected(true)
		}
		for i := range n.Corners {
			n.Corners[i].SetSelected(true)
		}
	}
}

// Translate moves n by a world-space offset from its snapshot.
func (n *Node) Translate(t mgl32.Vec3) {
	n.setWorldPosition(n.baseWorld.Add(t))
}

// Rotate applies a world-space rotation about the node origin to its
// snapshot. q is carried into the parent frame first.
func (n *Node) Rotate(q mgl32.Quat) {
	if n.parent != nil {
		rp := n.parent.worldRotation().Normalize()
		q = rp.Conjugate().Mul(q).Mul(rp)
	}
	n.Transform.Rotation = q.Mul(n.base.Transform.Rotation).Normalize()
}

// Scale multiplies the snapshot scale.
func (n *Node) Scale(s mgl32.Vec3) {
	b := n.base.Transform.Scale
	n.Transform.Scale = mgl32.Vec3{b[0] * s[0], b[1] * s[1], b[2] * s[2]}
}

func (n *Node) setWorldPosition(p mgl32.Vec3) {
	n.Transform.Position = n.worldToParent().Mul4x1(p.Vec4(1)).Vec3()
}

// resize moves the selected faces and corners of n by a world offset from
// the snapshot box.
func (n *Node) resize(t mgl32.Vec3) {
	d := n.WorldToLocal().Mul4x1(t.Vec4(0)).Vec3()
	n.Min, n.Max = n.base.Min, n.base.Max
	for i := range n.Faces {
		if !n.Faces[i].IsSelected() {
			continue
		}
		k := i / 2
		if i%2 == 1 {
			n.Max[k] = n.base.Max[k] + d[k]
		} else {
			n.Min[k] = n.base.Min[k] + d[k]
		}
	}
	for i := range n.Corners {
		if !n.Corners[i].IsSelected() {
			continue
		}
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				n.Max[k] = n.base.Max[k] + d[k]
			} else {
				n.Min[k] = n.base.Min[k] + d[k]
			}
		}
	}
	for k := 0; k < 3; k++ {
		if n.Min[k] > n.Max[k] {
			n.Min[k], n.Max[k] = n.Max[k], n.Min[k]
		}
	}
}

func (n *Node) hasSelectedComponents() bool {
	return selection.AnySelected(n.Faces[:]) || selection.AnySelected(n.Corners[:])
}

// boxCorners orders corners by bit: x=1, y=2, z=4 select the max side.
func boxCorners(min, max mgl32.Vec3) [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				out[i][k] = max[k]
			} else {
				out[i][k] = min[k]
			}
		}
	}
	return out
}

// boxQuads returns the six faces wound counter-clockwise seen from outside.
func boxQuads(min, max mgl32.Vec3) []mgl32.Vec3 {
	c := boxCorners(min, max)
	return []mgl32.Vec3{
		c[0], c[4], c[6], c[2], // -X
		c[1], c[3], c[7], c[5], // +X
		c[0], c[1], c[5], c[4], // -Y
		c[2], c[6], c[7], c[3], // +Y
		c[0], c[2], c[3], c[1], // -Z
		c[4], c[5], c[7], c[6], // +Z
	}
}
