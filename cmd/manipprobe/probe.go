package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/gekko3d/manip"
	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/manipulator"
	"github.com/gekko3d/manip/scene"
)

type probeOptions struct {
	scenePath  string
	configPath string
	tool       string
	mode       string
	x, y       float32
	toX, toY   float32
	drag       bool
	flags      []string
	debug      bool
}

func newRootCmd(log logging.Logger) *cobra.Command {
	opts := &probeOptions{}
	cmd := &cobra.Command{
		Use:   "manipprobe",
		Short: "Report what a click on a scene would hit",
		Long: "manipprobe loads a YAML or TOML scene, hit tests a manipulator at a pixel\n" +
			"and, with --to-x/--to-y, drags it there and prints the resulting nodes.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.drag = cmd.Flags().Changed("to-x") || cmd.Flags().Changed("to-y")
			log.SetDebug(opts.debug)
			return runProbe(cmd.OutOrStdout(), log, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.scenePath, "scene", "s", "", "scene description (.yaml, .yml or .toml)")
	f.StringVarP(&opts.configPath, "config", "c", "", "manipulator config (.yaml, .yml or .toml)")
	f.StringVarP(&opts.tool, "tool", "t", "translate", "translate, rotate, scale, drag or modelscale")
	f.StringVar(&opts.mode, "mode", "object", "drag granularity: object, group-part, entity or component")
	f.Float32Var(&opts.x, "x", 0, "pointer x in window pixels")
	f.Float32Var(&opts.y, "y", 0, "pointer y in window pixels")
	f.Float32Var(&opts.toX, "to-x", 0, "drag target x in window pixels")
	f.Float32Var(&opts.toY, "to-y", 0, "drag target y in window pixels")
	f.StringSliceVar(&opts.flags, "constrain", nil, "drag constraints: shift, grid, alt")
	f.BoolVar(&opts.debug, "debug", false, "log hit testing")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}

func runProbe(out io.Writer, log logging.Logger, opts *probeOptions) error {
	cfg := manipulator.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = manip.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	desc, g, err := manip.LoadScene(opts.scenePath)
	if err != nil {
		return err
	}
	g.Logger = log

	m, err := newManipulator(g, opts, cfg, log)
	if err != nil {
		return err
	}
	flags, err := parseConstraint(opts.flags)
	if err != nil {
		return err
	}

	v := desc.Camera.View()
	gesture := &manip.Gesture{Manipulator: m, Transaction: g, Config: cfg, Logger: log}
	pivot := g.PivotMatrix()
	if !gesture.Down(v, v.PixelToDevice(opts.x, opts.y), pivot) {
		fmt.Fprintf(out, "%s: miss at (%g, %g)\n", opts.tool, opts.x, opts.y)
		return nil
	}
	fmt.Fprintf(out, "%s: hit %T at (%g, %g)\n", opts.tool, m.ActiveComponent(), opts.x, opts.y)
	if !opts.drag {
		gesture.Up(false)
		return nil
	}

	gesture.Move(v, v.PixelToDevice(opts.toX, opts.toY), flags)
	gesture.Up(true)
	g.Walk(func(n *scene.Node) bool {
		if n.IsSelected() {
			printNode(out, n)
		}
		return true
	})
	return nil
}

func newManipulator(g *scene.Graph, opts *probeOptions, cfg manipulator.Config, log logging.Logger) (manipulator.Manipulator, error) {
	switch strings.ToLower(opts.tool) {
	case "translate":
		m := manipulator.NewTranslate(g, cfg)
		m.Logger = log
		return m, nil
	case "rotate":
		m := manipulator.NewRotate(g, g.PivotSink(), cfg)
		m.Logger = log
		return m, nil
	case "scale":
		m := manipulator.NewScale(g, cfg)
		m.Logger = log
		return m, nil
	case "drag":
		mode, err := parseMode(opts.mode)
		if err != nil {
			return nil, err
		}
		m := manipulator.NewDrag(g, g, g.Resizer(), cfg)
		m.Logger = log
		m.Mode = mode
		return m, nil
	case "modelscale":
		m := manipulator.NewModelScale(g, cfg)
		m.Logger = log
		return m, nil
	}
	return nil, fmt.Errorf("unknown tool %q", opts.tool)
}

func parseMode(s string) (manipulator.Mode, error) {
	for _, m := range []manipulator.Mode{manipulator.ModeObject, manipulator.ModeGroupPart, manipulator.ModeEntity, manipulator.ModeComponent} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func parseConstraint(names []string) (manipulator.Constraint, error) {
	c := manipulator.Unconstrained
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "shift":
			c |= manipulator.Shift
		case "grid":
			c |= manipulator.Grid
		case "alt":
			c |= manipulator.Alt
		default:
			return 0, fmt.Errorf("unknown constraint %q", name)
		}
	}
	return c, nil
}

func printNode(out io.Writer, n *scene.Node) {
	min, max := n.WorldBounds()
	axis, angle := quatAxisAngle(n.Transform.Rotation)
	fmt.Fprintf(out, "%s (%s)\n", n.Name, n.Kind)
	fmt.Fprintf(out, "  position %v\n", n.Origin())
	fmt.Fprintf(out, "  rotation %.2f deg about %v\n", mgl32.RadToDeg(angle), axis)
	fmt.Fprintf(out, "  scale    %v\n", n.Transform.Scale)
	fmt.Fprintf(out, "  bounds   %v %v\n", min, max)
}

func quatAxisAngle(q mgl32.Quat) (mgl32.Vec3, float32) {
	q = q.Normalize()
	if q.V.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, 1}, 0
	}
	return q.V.Normalize(), 2 * math32.Acos(mgl32.Clamp(q.W, -1, 1))
}
