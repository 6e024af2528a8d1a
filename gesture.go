// Package manip drives viewport manipulators from pointer input and loads
// their configuration and probe scenes from disk.
package manip

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/manipulator"
	"github.com/gekko3d/manip/selection"
	"github.com/gekko3d/manip/view"
)

// Transaction is the host side of a gesture: state captured at Begin is
// kept by Commit or restored by Revert.
type Transaction interface {
	Begin()
	Commit()
	Revert()
}

// Gesture runs one manipulator through pointer down, move and up.
type Gesture struct {
	Manipulator manipulator.Manipulator
	Transaction Transaction
	Config      manipulator.Config
	Logger      logging.Logger

	active      bool
	pivot2world mgl32.Mat4
}

func (g *Gesture) log() logging.Logger { return logging.OrNop(g.Logger) }

// Down hit tests the manipulator at device and starts a gesture when one of
// its handles is under the pointer.
func (g *Gesture) Down(v view.View, device mgl32.Vec2, pivot2world mgl32.Mat4) bool {
	if g.active {
		g.Up(false)
	}
	eps := g.Config.SelectEpsilon
	if eps <= 0 {
		eps = manipulator.DefaultConfig().SelectEpsilon
	}
	test := selection.NewVolume(v, device, v.DeviceEpsilon(eps))
	g.Manipulator.TestSelect(test, pivot2world)
	if !g.Manipulator.IsSelected() {
		g.log().Debugf("gesture: nothing under %v", device)
		return false
	}

	if g.Transaction != nil {
		g.Transaction.Begin()
	}
	g.pivot2world = pivot2world
	g.Manipulator.ActiveComponent().BeginTransformation(pivot2world, v, device)
	g.active = true
	g.log().Debugf("gesture: begin at %v", device)
	return true
}

// Move applies the pointer position to the active component. The pivot
// frame captured at Down is used for the whole gesture.
func (g *Gesture) Move(v view.View, device mgl32.Vec2, flags manipulator.Constraint) {
	if !g.active {
		return
	}
	g.Manipulator.ActiveComponent().Transform(g.pivot2world, v, device, flags)
}

// Up ends the gesture, committing or reverting the transaction.
func (g *Gesture) Up(commit bool) {
	if !g.active {
		return
	}
	g.active = false
	if g.Transaction != nil {
		if commit {
			g.Transaction.Commit()
		} else {
			g.Transaction.Revert()
		}
	}
	g.Manipulator.SetSelected(false)
	if commit {
		g.log().Debugf("gesture: commit")
	} else {
		g.log().Infof("gesture: cancelled")
	}
}

// Active reports whether a gesture is in progress.
func (g *Gesture) Active() bool { return g.active }
