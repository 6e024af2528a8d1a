package scene

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/manip/view"
)

// Description is a scene file: a camera and a tree of boxes.
type Description struct {
	Camera CameraDescription `yaml:"camera" toml:"camera"`
	Nodes  []NodeDescription `yaml:"nodes" toml:"nodes"`
}

type CameraDescription struct {
	Eye    [3]float32 `yaml:"eye" toml:"eye"`
	Target [3]float32 `yaml:"target" toml:"target"`
	Up     [3]float32 `yaml:"up" toml:"up"`
	// Fov is the vertical field of view in degrees. Zero selects an
	// orthographic camera of half height OrthoHalf.
	Fov       float32 `yaml:"fov" toml:"fov"`
	OrthoHalf float32 `yaml:"ortho_half" toml:"ortho_half"`
	Near      float32 `yaml:"near" toml:"near"`
	Far       float32 `yaml:"far" toml:"far"`
	Width     int     `yaml:"width" toml:"width"`
	Height    int     `yaml:"height" toml:"height"`
}

type NodeDescription struct {
	Name     string `yaml:"name" toml:"name"`
	Kind     string `yaml:"kind" toml:"kind"`
	Selected bool   `yaml:"selected" toml:"selected"`

	Position [3]float32 `yaml:"position" toml:"position"`
	// Rotation is XYZ euler angles in degrees.
	Rotation [3]float32 `yaml:"rotation" toml:"rotation"`
	Scale    [3]float32 `yaml:"scale" toml:"scale"`
	Min      [3]float32 `yaml:"min" toml:"min"`
	Max      [3]float32 `yaml:"max" toml:"max"`

	Children []NodeDescription `yaml:"children" toml:"children"`
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "primitive":
		return KindPrimitive, nil
	case "entity":
		return KindEntity, nil
	case "group":
		return KindGroup, nil
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// View builds the camera view. Missing values fall back to a 800x600
// viewport with near 0.1 and far 1000.
func (c CameraDescription) View() view.View {
	w, h := c.Width, c.Height
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 1000
	}
	up := mgl32.Vec3(c.Up)
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	aspect := float32(w) / float32(h)

	var proj mgl32.Mat4
	if c.Fov > 0 {
		proj = mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, near, far)
	} else {
		half := c.OrthoHalf
		if half <= 0 {
			half = 5
		}
		proj = mgl32.Ortho(-half*aspect, half*aspect, -half, half, near, far)
	}
	mv := mgl32.LookAtV(mgl32.Vec3(c.Eye), mgl32.Vec3(c.Target), up)
	return view.New(mv, proj, w, h)
}

// Build creates a graph from the description.
func (d Description) Build() (*Graph, error) {
	g := NewGraph()
	for i := range d.Nodes {
		if err := d.Nodes[i].build(g, nil); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (nd NodeDescription) build(g *Graph, parent *Node) error {
	kind, err := ParseKind(nd.Kind)
	if err != nil {
		return fmt.Errorf("node %q: %w", nd.Name, err)
	}
	n := NewNode(nd.Name, kind, mgl32.Vec3(nd.Min), mgl32.Vec3(nd.Max))
	n.Transform.Position = mgl32.Vec3(nd.Position)
	r := nd.Rotation
	n.Transform.Rotation = mgl32.AnglesToQuat(mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]), mgl32.XYZ)
	if s := mgl32.Vec3(nd.Scale); s != (mgl32.Vec3{}) {
		n.Transform.Scale = s
	}
	n.SetSelected(nd.Selected)
	g.Add(parent, n)
	for i := range nd.Children {
		if err := nd.Children[i].build(g, n); err != nil {
			return err
		}
	}
	return nil
}
