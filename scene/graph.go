// Package scene is an in-memory node graph that plays the scene
// collaborator for the manipulators: visibility, selection, hit testing and
// transform sinks with a revertible transaction.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/manipulator"
	"github.com/gekko3d/manip/selection"
)

var (
	_ manipulator.Scene             = (*Graph)(nil)
	_ manipulator.Translatable      = (*Graph)(nil)
	_ manipulator.Rotatable         = (*Graph)(nil)
	_ manipulator.Scalable          = (*Graph)(nil)
	_ manipulator.Testable          = (*Node)(nil)
	_ manipulator.ComponentTestable = (*Node)(nil)
	_ manipulator.PlaneSelectable   = (*Node)(nil)
	_ manipulator.ModelScaleTarget  = (*Node)(nil)
)

type Graph struct {
	Logger logging.Logger

	roots []*Node
	nodes map[uuid.UUID]*Node

	pivotOffset     mgl32.Vec3
	basePivotOffset mgl32.Vec3
	basePivot       mgl32.Vec3
	active          bool
}

func NewGraph() *Graph {
	return &Graph{nodes: make(map[uuid.UUID]*Node)}
}

func (g *Graph) log() logging.Logger { return logging.OrNop(g.Logger) }

// Add attaches n under parent, or as a root when parent is nil.
func (g *Graph) Add(parent, n *Node) *Node {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.parent = parent
	if parent == nil {
		g.roots = append(g.roots, n)
	} else {
		parent.children = append(parent.children, n)
	}
	g.nodes[n.ID] = n
	return n
}

func (g *Graph) Node(id uuid.UUID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Roots() []*Node { return g.roots }

// Walk visits nodes depth first until fn returns false.
func (g *Graph) Walk(fn func(*Node) bool) {
	var visit func(nodes []*Node) bool
	visit = func(nodes []*Node) bool {
		for _, n := range nodes {
			if !fn(n) || !visit(n.children) {
				return false
			}
		}
		return true
	}
	visit(g.roots)
}

func (g *Graph) ForEachVisible(test selection.Test, mode manipulator.Mode, fn func(manipulator.Object) bool) {
	visible := func(n *Node) bool {
		min, max := n.WorldBounds()
		return test.VisibleAABB(min, max)
	}
	switch mode {
	case manipulator.ModeObject:
		for _, n := range g.roots {
			if visible(n) && !fn(n) {
				return
			}
		}
	default:
		g.Walk(func(n *Node) bool {
			if !g.visitable(n, mode) || !visible(n) {
				return true
			}
			return fn(n)
		})
	}
}

func (g *Graph) visitable(n *Node, mode manipulator.Mode) bool {
	switch mode {
	case manipulator.ModeGroupPart:
		return n.Kind != KindGroup && n.parent != nil && n.parent.Kind == KindGroup
	case manipulator.ModeEntity:
		return n.Kind == KindEntity
	case manipulator.ModeComponent:
		return n.Kind != KindGroup && n.selected
	}
	return n.parent == nil
}

func (g *Graph) ForEachSelected(fn func(manipulator.Object) bool) {
	g.Walk(func(n *Node) bool {
		if n.selected {
			return fn(n)
		}
		return true
	})
}

func (g *Graph) SetSelectedAllComponents(selected bool) {
	g.Walk(func(n *Node) bool {
		n.setSelectedComponents(selected)
		return true
	})
}

// SetSelectedAll selects or deselects every node.
func (g *Graph) SetSelectedAll(selected bool) {
	g.Walk(func(n *Node) bool {
		n.selected = selected
		return true
	})
}

// Selected returns the selected nodes in walk order.
func (g *Graph) Selected() []*Node {
	var out []*Node
	g.Walk(func(n *Node) bool {
		if n.selected {
			out = append(out, n)
		}
		return true
	})
	return out
}

// SelectionPivot is the centre of the selected world bounds moved by any
// pivot offset. ok is false when nothing is selected.
func (g *Graph) SelectionPivot() (mgl32.Vec3, bool) {
	inf := float32(1e20)
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	found := false
	for _, n := range g.Selected() {
		min, max := n.WorldBounds()
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], min[k])
			hi[k] = math32.Max(hi[k], max[k])
		}
		found = true
	}
	if !found {
		return mgl32.Vec3{}, false
	}
	return lo.Add(hi).Mul(0.5).Add(g.pivotOffset), true
}

// PivotMatrix is an axis aligned pivot at SelectionPivot.
func (g *Graph) PivotMatrix() mgl32.Mat4 {
	p, _ := g.SelectionPivot()
	return mgl32.Translate3D(p.X(), p.Y(), p.Z())
}

// topSelected lists selected nodes without a selected ancestor; moving a
// node already moves its descendants.
func (g *Graph) topSelected() []*Node {
	var out []*Node
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			if n.selected {
				out = append(out, n)
				continue
			}
			visit(n.children)
		}
	}
	visit(g.roots)
	return out
}

// Translate moves the selection by a world offset.
func (g *Graph) Translate(t mgl32.Vec3) {
	g.ensureBegun()
	for _, n := range g.topSelected() {
		n.Translate(t)
	}
}

// Rotate turns the selection about the pivot captured by Begin.
func (g *Graph) Rotate(q mgl32.Quat) {
	g.ensureBegun()
	for _, n := range g.topSelected() {
		n.setWorldPosition(g.basePivot.Add(q.Rotate(n.baseWorld.Sub(g.basePivot))))
		n.Rotate(q)
	}
}

// Scale scales the selection about the pivot captured by Begin.
func (g *Graph) Scale(s mgl32.Vec3) {
	g.ensureBegun()
	for _, n := range g.topSelected() {
		d := n.baseWorld.Sub(g.basePivot)
		n.setWorldPosition(g.basePivot.Add(mgl32.Vec3{d[0] * s[0], d[1] * s[1], d[2] * s[2]}))
		n.Scale(s)
	}
}

// PivotSink moves the pivot without touching the selection.
func (g *Graph) PivotSink() manipulator.Translatable {
	return manipulator.TranslateFunc(func(t mgl32.Vec3) {
		g.ensureBegun()
		g.pivotOffset = g.basePivotOffset.Add(t)
	})
}

// Resizer moves the selected faces and corners of selected nodes.
func (g *Graph) Resizer() manipulator.Translatable {
	return manipulator.TranslateFunc(func(t mgl32.Vec3) {
		g.ensureBegun()
		g.Walk(func(n *Node) bool {
			if n.selected && n.hasSelectedComponents() {
				n.resize(t)
			}
			return true
		})
	})
}

// Begin snapshots every node so sinks apply relative to it. A sink driven
// outside a transaction begins one itself, which lasts until Commit or
// Revert.
func (g *Graph) Begin() {
	g.basePivot, _ = g.SelectionPivot()
	g.basePivotOffset = g.pivotOffset
	g.Walk(func(n *Node) bool {
		if err := copier.CopyWithOption(&n.base, n, copier.Option{DeepCopy: true}); err != nil {
			g.log().Errorf("scene: snapshot %s: %v", n.Name, err)
		}
		n.baseWorld = n.Origin()
		return true
	})
	g.active = true
	g.log().Debugf("scene: begin with %d selected", len(g.Selected()))
}

func (g *Graph) ensureBegun() {
	if !g.active {
		g.Begin()
	}
}

// Commit keeps the current state.
func (g *Graph) Commit() {
	g.active = false
	g.log().Debugf("scene: commit")
}

// Revert restores the snapshot taken by Begin.
func (g *Graph) Revert() {
	if !g.active {
		return
	}
	g.Walk(func(n *Node) bool {
		if err := copier.Copy(n, &n.base); err != nil {
			g.log().Errorf("scene: restore %s: %v", n.Name, err)
		}
		return true
	})
	g.pivotOffset = g.basePivotOffset
	g.active = false
	g.log().Debugf("scene: revert")
}
