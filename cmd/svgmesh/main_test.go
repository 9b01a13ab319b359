package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const gradientDoc = `
viewport: [0, 0, 100, 100]
shapes:
  - name: panel
    rect: {width: 100, height: 100}
    fill:
      kind: radial
      start: [50%, 50%]
      end: [50%, 50%]
      stops:
        - {offset: 0, color: white}
        - {offset: 100, color: black}
  - name: mark
    circle: {cx: 50, cy: 50, r: 5}
    fill: "#zz0"
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "svgmesh "+version+"\n", out)
}

func TestConfigPrintsDefaults(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "mesh_scale = 0.01")
	assert.Contains(t, out, "[atlas]")
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "panel.yaml")
	require.NoError(t, os.WriteFile(in, []byte(gradientDoc), 0o600))
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "import", "--out", outDir, in)
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(outDir, "panel.mesh.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var s summary
	require.NoError(t, yaml.Unmarshal(data, &s))
	assert.Equal(t, in, s.Source)
	assert.Greater(t, s.Triangles, 2)
	require.Len(t, s.Submeshes, 1)
	assert.Equal(t, "GradientColorAlphaBlended", s.Submeshes[0].Shader)
	assert.Len(t, s.Layers, 2)
	assert.Equal(t, 2, s.Gradients)
	assert.Equal(t, []string{"panel_0.png"}, s.Atlas)
	require.Len(t, s.Errors, 1)
	assert.Contains(t, s.Errors[0], "malformed color")

	_, err = os.Stat(filepath.Join(outDir, "panel_0.png"))
	assert.NoError(t, err)
}

func TestImportMissingFile(t *testing.T) {
	_, err := execute(t, "import", "--out", t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportNeedsFiles(t *testing.T) {
	_, err := execute(t, "import")
	assert.Error(t, err)
}

func TestOutputNames(t *testing.T) {
	got := outputNames([]string{"a/x.yaml", "b/x.yaml", "c/x-2.yml", "y.yaml", "d/x.yaml"})
	assert.Equal(t, []string{"x", "x-2", "x-2-2", "y", "x-3"}, got)
}

func TestImportSameBaseName(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, sub), 0o755))
		in := filepath.Join(dir, sub, "panel.yaml")
		require.NoError(t, os.WriteFile(in, []byte(gradientDoc), 0o600))
		inputs = append(inputs, in)
	}
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, append([]string{"import", "--out", outDir}, inputs...)...)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(outDir, "panel.mesh.yaml"),
		filepath.Join(outDir, "panel-2.mesh.yaml"),
	}, strings.Fields(out))

	sources := map[string]string{}
	for _, name := range []string{"panel", "panel-2"} {
		data, err := os.ReadFile(filepath.Join(outDir, name+".mesh.yaml"))
		require.NoError(t, err)
		var s summary
		require.NoError(t, yaml.Unmarshal(data, &s))
		assert.Equal(t, []string{name + "_0.png"}, s.Atlas)
		sources[name] = s.Source
		_, err = os.Stat(filepath.Join(outDir, name+"_0.png"))
		assert.NoError(t, err)
	}
	assert.Equal(t, inputs[0], sources["panel"])
	assert.Equal(t, inputs[1], sources["panel-2"])
}
