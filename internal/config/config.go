// Package config loads import settings for the svgmesh command from a TOML
// file and SVGMESH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"

	"github.com/gogpu/svgmesh"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "SVGMESH"

// Settings mirrors the import options. Enumerations are spelled as their
// String values, e.g. format = "opaque".
type Settings struct {
	VerticesPerMeter  float64 `toml:"vertices_per_meter" envconfig:"VERTICES_PER_METER"`
	AntialiasingWidth float64 `toml:"antialiasing_width" envconfig:"ANTIALIASING_WIDTH"`
	CompressDepth     bool    `toml:"compress_depth" envconfig:"COMPRESS_DEPTH"`
	UseGradients      string  `toml:"use_gradients" envconfig:"USE_GRADIENTS"`
	Format            string  `toml:"format" envconfig:"FORMAT"`
	MeshScale         float64 `toml:"mesh_scale" envconfig:"MESH_SCALE"`
	DepthOffset       float64 `toml:"depth_offset" envconfig:"DEPTH_OFFSET"`
	PivotX            float64 `toml:"pivot_x" envconfig:"PIVOT_X"`
	PivotY            float64 `toml:"pivot_y" envconfig:"PIVOT_Y"`
	IgnoreCanvas      bool    `toml:"ignore_canvas" envconfig:"IGNORE_CANVAS"`
	GenerateCollider  bool    `toml:"generate_collider" envconfig:"GENERATE_COLLIDER"`
	MeshCompression   string  `toml:"mesh_compression" envconfig:"MESH_COMPRESSION"`
	OptimizeMesh      bool    `toml:"optimize_mesh" envconfig:"OPTIMIZE_MESH"`
	MeshCache         int     `toml:"mesh_cache" envconfig:"MESH_CACHE"`

	Atlas Atlas `toml:"atlas" envconfig:"ATLAS"`

	LogLevel slog.Level `toml:"log_level" envconfig:"LOG_LEVEL"`
}

// Atlas holds the gradient atlas geometry in pixels.
type Atlas struct {
	PageWidth   int `toml:"page_width" envconfig:"PAGE_WIDTH"`
	PageHeight  int `toml:"page_height" envconfig:"PAGE_HEIGHT"`
	StripWidth  int `toml:"strip_width" envconfig:"STRIP_WIDTH"`
	StripHeight int `toml:"strip_height" envconfig:"STRIP_HEIGHT"`
}

// Default returns the library defaults.
func Default() Settings {
	l := svgmesh.DefaultAtlasLayout()
	return Settings{
		VerticesPerMeter: 1000,
		CompressDepth:    true,
		UseGradients:     svgmesh.GradientsAlways.String(),
		Format:           svgmesh.FormatTransparent.String(),
		MeshScale:        0.01,
		DepthOffset:      0.01,
		PivotX:           0.5,
		PivotY:           0.5,
		IgnoreCanvas:     true,
		MeshCompression:  svgmesh.MeshCompressionOff.String(),
		OptimizeMesh:     true,
		MeshCache:        256,
		Atlas: Atlas{
			PageWidth:   l.PageWidth,
			PageHeight:  l.PageHeight,
			StripWidth:  l.StripWidth,
			StripHeight: l.StripHeight,
		},
		LogLevel: slog.LevelWarn,
	}
}

// Load reads settings from the TOML file at path, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return s, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		if err := s.Decode(f); err != nil {
			return s, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return s, fmt.Errorf("config: environment: %w", err)
	}
	return s, s.Validate()
}

// Decode reads TOML into s. Keys not present keep their current value;
// unknown keys are an error.
func (s *Settings) Decode(r io.Reader) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(s)
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Validate checks value ranges and enumeration names.
func (s Settings) Validate() error {
	var errs []error
	if _, err := s.Options(); err != nil {
		errs = append(errs, err)
	}
	if !(s.MeshScale > 0) {
		errs = append(errs, fmt.Errorf("mesh_scale must be positive, got %v", s.MeshScale))
	}
	if s.AntialiasingWidth < 0 {
		errs = append(errs, fmt.Errorf("antialiasing_width must not be negative, got %v", s.AntialiasingWidth))
	}
	l := svgmesh.AtlasLayout{
		StripWidth:  s.Atlas.StripWidth,
		StripHeight: s.Atlas.StripHeight,
		PageWidth:   s.Atlas.PageWidth,
		PageHeight:  s.Atlas.PageHeight,
	}
	if err := l.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("atlas: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Options converts s to import options.
func (s Settings) Options() ([]svgmesh.ImportOption, error) {
	gradients, err := lookup("use_gradients", s.UseGradients,
		svgmesh.GradientsAlways, svgmesh.GradientsAuto, svgmesh.GradientsNever)
	if err != nil {
		return nil, err
	}
	format, err := lookup("format", s.Format,
		svgmesh.FormatOpaque, svgmesh.FormatTransparent, svgmesh.FormatUI)
	if err != nil {
		return nil, err
	}
	compression, err := lookup("mesh_compression", s.MeshCompression,
		svgmesh.MeshCompressionOff, svgmesh.MeshCompressionLow, svgmesh.MeshCompressionMedium, svgmesh.MeshCompressionHigh)
	if err != nil {
		return nil, err
	}

	return []svgmesh.ImportOption{
		svgmesh.WithVerticesPerMeter(s.VerticesPerMeter),
		svgmesh.WithAntialiasingWidth(s.AntialiasingWidth),
		svgmesh.WithCompressDepth(s.CompressDepth),
		svgmesh.WithUseGradients(gradients),
		svgmesh.WithFormat(format),
		svgmesh.WithMeshScale(s.MeshScale),
		svgmesh.WithDepthOffset(s.DepthOffset),
		svgmesh.WithPivot(s.PivotX, s.PivotY),
		svgmesh.WithIgnoreCanvas(s.IgnoreCanvas),
		svgmesh.WithGenerateCollider(s.GenerateCollider),
		svgmesh.WithAtlasSize(s.Atlas.PageWidth, s.Atlas.PageHeight),
		svgmesh.WithGradientStrip(s.Atlas.StripWidth, s.Atlas.StripHeight),
		svgmesh.WithMeshCompression(compression),
		svgmesh.WithOptimizeMesh(s.OptimizeMesh),
		svgmesh.WithMeshCache(s.MeshCache),
	}, nil
}

// lookup matches name case-insensitively against the String values of
// candidates. An empty name picks the first candidate.
func lookup[T fmt.Stringer](key, name string, candidates ...T) (T, error) {
	if name == "" {
		return candidates[0], nil
	}
	folded := cases.Fold().String(name)
	for _, c := range candidates {
		if c.String() == folded {
			return c, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", key, name)
}
