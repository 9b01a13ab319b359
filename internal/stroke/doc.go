// Package stroke expands flattened polylines into filled stroke outlines.
//
// Expansion builds two parallel offset sides for each contour:
//   - Forward side: offset by -width/2 along the left normal
//   - Backward side: offset by +width/2 along the left normal
//
// An open contour becomes one ring: the forward side, the end cap, the
// backward side reversed, and the start cap. A closed contour becomes two
// rings, the forward side and the reversed backward side, so that a non-zero
// fill of the result covers only the band between them.
//
// # Line Joins
//
//   - LineJoinMiter: sharp corner, falls back to bevel past the miter limit
//   - LineJoinMiterClip: sharp corner, clipped at the miter limit
//   - LineJoinRound: circular arc at corners
//   - LineJoinBevel: straight line across the corner
//
// # Usage
//
//	style := stroke.Style{
//	    Width:      2.0,
//	    Cap:        stroke.LineCapRound,
//	    Join:       stroke.LineJoinMiter,
//	    MiterLimit: 4.0,
//	}
//
//	e := stroke.NewExpander(style)
//	rings := e.Expand(points, false)
//
// Dashing splits a contour into open pieces before expansion; see Dash.
//
// The join and cap construction follows tiny-skia (path/src/stroker.rs) and
// kurbo (src/stroke.rs).
package stroke
