package main

import (
	"path/filepath"

	"github.com/gogpu/svgmesh"
)

// summary is the YAML record written next to each import.
type summary struct {
	Source    string           `yaml:"source"`
	ID        string           `yaml:"id"`
	Vertices  int              `yaml:"vertices"`
	Triangles int              `yaml:"triangles"`
	Bounds    [2][3]float32    `yaml:"bounds,flow"`
	Canvas    [4]float64       `yaml:"canvas,flow"`
	Submeshes []submeshSummary `yaml:"submeshes"`
	Layers    []layerSummary   `yaml:"layers,omitempty"`
	Gradients int              `yaml:"gradients"`
	Atlas     []string         `yaml:"atlas,omitempty"`
	Collider  int              `yaml:"collider_paths,omitempty"`
	Errors    []string         `yaml:"errors,omitempty"`
}

type submeshSummary struct {
	Shader    string `yaml:"shader"`
	Triangles int    `yaml:"triangles"`
}

type layerSummary struct {
	Name        string     `yaml:"name"`
	VertexStart int        `yaml:"vertex_start"`
	VertexCount int        `yaml:"vertex_count"`
	Center      [3]float32 `yaml:"center,flow"`
	Size        [3]float32 `yaml:"size,flow"`
}

func vec3(v svgmesh.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func summarize(source string, res *svgmesh.Result, pages []string) summary {
	s := summary{
		Source:    source,
		ID:        res.ID.String(),
		Canvas:    [4]float64{res.Canvas.MinX, res.Canvas.MinY, res.Canvas.MaxX, res.Canvas.MaxY},
		Gradients: len(res.Gradients),
		Collider:  len(res.Collider),
	}
	for _, p := range pages {
		s.Atlas = append(s.Atlas, filepath.Base(p))
	}
	for _, err := range res.Errors {
		s.Errors = append(s.Errors, err.Error())
	}
	m := res.Mesh
	if m == nil {
		return s
	}

	s.Vertices = m.VertexCount()
	s.Triangles = m.TriangleCount()
	s.Bounds = [2][3]float32{vec3(m.Bounds.Min), vec3(m.Bounds.Max)}
	for i, sub := range m.Submeshes {
		sm := submeshSummary{Triangles: len(sub) / 3}
		if i < len(res.Shaders) {
			sm.Shader = res.Shaders[i].String()
		}
		s.Submeshes = append(s.Submeshes, sm)
	}
	for _, l := range res.Layers {
		s.Layers = append(s.Layers, layerSummary{
			Name:        l.Name,
			VertexStart: l.VertexStart,
			VertexCount: l.VertexCount,
			Center:      vec3(l.Center),
			Size:        vec3(l.Size),
		})
	}
	return s
}
