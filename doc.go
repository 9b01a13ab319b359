// Package svgmesh converts vector shapes into triangle meshes and gradient
// atlas pages ready for GPU upload.
//
// # Overview
//
// A [Document] is a flat list of shapes, each with geometry, a transform
// list and paint. [Session.Import] runs every visible shape through the
// pipeline:
//
//  1. geometry is flattened into polylines
//  2. strokes are expanded into outline polygons
//  3. fills are resolved into simple polygons under their fill rule and clip
//  4. polygons are triangulated into per-shape fragments
//  5. fragments are combined into one mesh with opaque and transparent
//     submeshes, depth-sorted so overlapping opaque shapes never share a layer
//
// Gradients are deduplicated into a per-session pool and baked into atlas
// pages. Mesh uv2 coordinates refer to pool entries.
//
// # Quick Start
//
//	doc := svgmesh.Document{
//		Viewport: svgmesh.RectXYWH(0, 0, 100, 100),
//		Shapes: []svgmesh.Shape{{
//			Name:     "dot",
//			Geometry: svgmesh.Circle{CX: svgmesh.Px(50), CY: svgmesh.Px(50), R: svgmesh.Px(10)},
//			Paint:    svgmesh.SolidPaint(svgmesh.RGB8(255, 0, 0)),
//		}},
//	}
//
//	res, err := svgmesh.Run(ctx, doc)
//
// Documents can also be described in YAML and loaded with [ReadDocument].
// Attribute text that does not parse ends up in Document.Errors and from
// there in Result.Errors.
//
// # Coordinate System
//
// Input coordinates follow SVG: origin at top-left, Y down. The combined
// mesh is scaled by the mesh scale, offset by the pivot and flipped so Y
// points up. Triangles are counter-clockwise in the output space.
//
// # Concurrency
//
// A [Session] imports one document at a time. Separate sessions share no
// state and may import concurrently.
package svgmesh

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
