// Package polyclip resolves overlapping contours into simple polygons.
//
// Input contours are snapped to an integer grid, split at every crossing
// and touching point, and merged into unique undirected edges carrying a
// winding delta per input set. The winding numbers on both sides of each
// edge decide whether it bounds the result; boundary edges are oriented
// with the filled side on their left and linked into rings. Rings with
// positive area are outer contours; negative rings are holes and are
// attached to the smallest outer contour containing them.
//
// Union resolves one set under a fill rule. Intersect keeps the area inside
// both a subject set and a clip set.
package polyclip
