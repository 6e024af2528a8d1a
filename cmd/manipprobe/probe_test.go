package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/manip/logging"
	"github.com/gekko3d/manip/manipulator"
)

const probeScene = `
camera:
  eye: [0, 0, 10]
  width: 400
  height: 400
  ortho_half: 5
nodes:
  - name: cube
    min: [-0.5, -0.5, -0.5]
    max: [0.5, 0.5, 0.5]
    selected: true
`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(probeScene), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd(logging.NewWriterLogger("test", false, log.New(io.Discard, "", 0)))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--scene", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestProbe_HitAndDrag(t *testing.T) {
	out, err := runCmd(t, "--x", "240", "--y", "200", "--to-x", "280", "--to-y", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "translate: hit *manipulator.TranslateAxis")
	assert.Contains(t, out, "cube (primitive)")
}

func TestProbe_Miss(t *testing.T) {
	out, err := runCmd(t, "--tool", "rotate", "--x", "390", "--y", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "rotate: miss")
}

func TestProbe_DragMode(t *testing.T) {
	out, err := runCmd(t, "--tool", "drag", "--mode", "object", "--x", "200", "--y", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "drag: hit *manipulator.TranslateFree")
}

func TestProbe_BadArguments(t *testing.T) {
	_, err := runCmd(t, "--tool", "lasso")
	assert.ErrorContains(t, err, `unknown tool "lasso"`)

	_, err = runCmd(t, "--tool", "drag", "--mode", "vertex")
	assert.ErrorContains(t, err, `unknown mode "vertex"`)

	_, err = runCmd(t, "--x", "240", "--y", "200", "--to-x", "250", "--constrain", "ctrl")
	assert.ErrorContains(t, err, `unknown constraint "ctrl"`)
}

func TestParseConstraint(t *testing.T) {
	c, err := parseConstraint([]string{"shift", " Grid"})
	require.NoError(t, err)
	assert.True(t, c.Has(manipulator.Shift))
	assert.True(t, c.Has(manipulator.Grid))
	assert.False(t, c.Has(manipulator.Alt))
}
