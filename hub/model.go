// Package hub models the circular retro-reflective target and locates the
// camera relative to it, either by tracked PnP over strip correspondences
// or by a closed-form solve from known mounting geometry.
package hub

import (
	"math"

	"github.com/team6962/vision2022/geom"
)

// ModelParams describes the physical target: reflective tape strips laid
// out at equal angular spacing around a circle.  Lengths are in the world
// length unit (inches in the reference deployment).
type ModelParams struct {
	// Radius of the circle the strips sit on
	Radius float64
	// Arc length of one strip
	TapeLength float64
	// Arc length of the gap between strips
	GapLength float64
	// Vertical extent of a strip
	TapeHeight float64
	// Number of strips around the circle
	NumTapes int
}

// DefaultModelParams returns the dimensions of the competition hub.
func DefaultModelParams() ModelParams {
	return ModelParams{
		Radius:     26.6875,
		TapeLength: 5,
		GapLength:  5.5,
		TapeHeight: 2,
		NumTapes:   16,
	}
}

// Model holds the precomputed 3D corner coordinates of every strip in
// target world space: origin at the hub center, y down, strips in the
// x-z plane.  Immutable after construction.
type Model struct {
	params ModelParams
	strips [][4]geom.Point3
}

// NewModel precomputes the strip corners.  Strip i starts at the angle
// accumulated from the preceding strips and gaps, with angle increments
// of arc length over radius.  Corners are ordered (top-first-edge,
// top-second-edge, bottom-second-edge, bottom-first-edge) to match the
// extractor's canonical quad winding.
func NewModel(params ModelParams) *Model {

	tapeRads := params.TapeLength / params.Radius
	gapRads := params.GapLength / params.Radius
	halfHeight := params.TapeHeight / 2

	corner := func(theta, y float64) geom.Point3 {
		return geom.Point3{
			X: math.Cos(theta) * params.Radius,
			Y: y,
			Z: math.Sin(theta) * params.Radius,
		}
	}

	strips := make([][4]geom.Point3, params.NumTapes)
	theta := 0.0

	for i := 0; i < params.NumTapes; i++ {
		first := theta
		second := theta + tapeRads

		strips[i] = [4]geom.Point3{
			corner(first, -halfHeight),
			corner(second, -halfHeight),
			corner(second, halfHeight),
			corner(first, halfHeight),
		}

		theta = second + gapRads
	}

	return &Model{params: params, strips: strips}
}

// Params returns the physical dimensions the model was built from.
func (m *Model) Params() ModelParams {
	return m.params
}

// NumStrips returns the number of strips.
func (m *Model) NumStrips() int {
	return len(m.strips)
}

// Strip returns the 4 corners of strip i.
func (m *Model) Strip(i int) [4]geom.Point3 {
	return m.strips[i]
}

// StripPoints flattens the corners of the first n strips into one point
// list, preserving strip order and corner order.  These are the 3D side
// of the positional strip-to-quad correspondences.
func (m *Model) StripPoints(n int) []geom.Point3 {

	if n > len(m.strips) {
		n = len(m.strips)
	}

	pts := make([]geom.Point3, 0, n*4)

	for i := 0; i < n; i++ {
		pts = append(pts, m.strips[i][0], m.strips[i][1], m.strips[i][2], m.strips[i][3])
	}

	return pts
}
