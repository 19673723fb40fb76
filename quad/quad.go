// Package quad extracts validated, corner-ordered quadrilaterals from a
// binary detection mask.  Each quad approximates the visible outline of
// one retro-reflective strip.
package quad

import "github.com/team6962/vision2022/geom"

// Quad is an ordered set of 4 corners in image pixel coordinates, in the
// canonical winding order (top-left, top-right, bottom-right, bottom-left).
type Quad [4]geom.Point2

// Points returns the corners as a slice, in canonical order.
func (q Quad) Points() []geom.Point2 {
	return []geom.Point2{q[0], q[1], q[2], q[3]}
}

// CornerPoints flattens the corners of all quads into one point list,
// preserving quad order and corner order within each quad.
func CornerPoints(quads []Quad) []geom.Point2 {

	pts := make([]geom.Point2, 0, len(quads)*4)

	for _, q := range quads {
		pts = append(pts, q[0], q[1], q[2], q[3])
	}

	return pts
}
