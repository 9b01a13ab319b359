package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/svgmesh"
)

func writeFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svgmesh.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	opts, err := s.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 15)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
format = "Opaque"
use_gradients = "never"
mesh_scale = 1.0
pivot_y = 0.0
log_level = "debug"

[atlas]
page_width = 256
page_height = 256
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Opaque", s.Format)
	assert.Equal(t, "never", s.UseGradients)
	assert.Equal(t, 1.0, s.MeshScale)
	assert.Equal(t, 0.5, s.PivotX, "absent keys keep the default")
	assert.Equal(t, 0.0, s.PivotY)
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
	assert.Equal(t, 256, s.Atlas.PageWidth)
	assert.Equal(t, 128, s.Atlas.StripWidth)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "format = \"opaque\"\nmesh_scale = 2.0\n")
	t.Setenv("SVGMESH_FORMAT", "ui")
	t.Setenv("SVGMESH_GENERATE_COLLIDER", "true")
	t.Setenv("SVGMESH_ATLAS_STRIP_HEIGHT", "8")
	t.Setenv("SVGMESH_LOG_LEVEL", "error")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ui", s.Format)
	assert.Equal(t, 2.0, s.MeshScale)
	assert.True(t, s.GenerateCollider)
	assert.Equal(t, 8, s.Atlas.StripHeight)
	assert.Equal(t, slog.LevelError, s.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"unknown key", "colour = \"red\"\n", "strict mode"},
		{"bad format", "format = \"glossy\"\n", `unknown format "glossy"`},
		{"bad compression", "mesh_compression = \"max\"\n", "mesh_compression"},
		{"zero scale", "mesh_scale = 0.0\n", "mesh_scale"},
		{"strip too wide", "[atlas]\nstrip_width = 1024\n", "atlas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.toml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))
	assert.True(t, strings.Contains(buf.String(), "[atlas]"))

	s := Settings{}
	require.NoError(t, s.Decode(&buf))
	assert.Equal(t, Default(), s)
}

func TestOptionsDriveImport(t *testing.T) {
	s := Default()
	s.Format = "opaque"
	s.UseGradients = "auto"
	opts, err := s.Options()
	require.NoError(t, err)

	res, err := svgmesh.Run(t.Context(), svgmesh.Document{
		Viewport: svgmesh.RectXYWH(0, 0, 10, 10),
		Shapes: []svgmesh.Shape{{
			Geometry: svgmesh.RectShape{Width: svgmesh.Px(10), Height: svgmesh.Px(10)},
			Paint:    svgmesh.SolidPaint(svgmesh.White),
		}},
	}, opts...)
	require.NoError(t, err)
	assert.Equal(t, []svgmesh.Shader{svgmesh.ShaderSolidColorOpaque}, res.Shaders)
}
