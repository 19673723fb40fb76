package quad

import (
	"math"
	"sort"

	"github.com/team6962/vision2022/geom"
)

// sortCorners orders 4 points into the canonical
// (top-left, top-right, bottom-right, bottom-left) winding.  The points
// are split into the left pair (smallest x) and right pair; within the
// left pair the smaller y is top-left.  On the right side the point
// farthest from top-left is bottom-right, which disambiguates top from
// bottom when the rectangle rotation is near zero.
func sortCorners(pts [4]geom.Point2) Quad {

	ordered := pts[:]
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].X < ordered[j].X
	})

	left := [2]geom.Point2{ordered[0], ordered[1]}
	right := [2]geom.Point2{ordered[2], ordered[3]}

	if left[0].Y > left[1].Y {
		left[0], left[1] = left[1], left[0]
	}

	tl, bl := left[0], left[1]

	br, tr := right[0], right[1]
	if geom.Dist(tl, tr) > geom.Dist(tl, br) {
		br, tr = tr, br
	}

	return Quad{tl, tr, br, bl}
}

// interpByX linearly interpolates the segment p1-p2 at the given x.  If
// the segment is vertical the endpoint closest in x is returned.
func interpByX(p1, p2 geom.Point2, x float64) geom.Point2 {

	d12 := p2.X - p1.X
	d1x := x - p1.X

	if math.Abs(d12) < 1e-6 {
		if math.Abs(d1x) < math.Abs(x-p2.X) {
			return p1
		}
		return p2
	}

	a := d1x / d12

	return geom.Point2{X: x, Y: (1-a)*p1.Y + a*p2.Y}
}

// snapVerticalSides forces the left corners to share one x-coordinate and
// the right corners another, by interpolating the top and bottom edges at
// the tighter x bound on each side.  With true camera roll at zero the
// strip sides are vertical, so the snapped parallelogram still encloses
// the contour while removing detection jitter.
func snapVerticalSides(q Quad) Quad {

	tl, tr, br, bl := q[0], q[1], q[2], q[3]

	xl := math.Max(tl.X, bl.X)
	xr := math.Min(tr.X, br.X)

	tl = interpByX(tl, tr, xl)
	bl = interpByX(bl, br, xl)
	tr = interpByX(tl, tr, xr)
	br = interpByX(bl, br, xr)

	return Quad{tl, tr, br, bl}
}

// forceFixedHeight stretches both sides to the larger of the two observed
// side heights.
func forceFixedHeight(q Quad) Quad {

	tl, tr, br, bl := q[0], q[1], q[2], q[3]

	dy := math.Max(bl.Y-tl.Y, br.Y-tr.Y)

	tl.Y = bl.Y - dy
	tr.Y = br.Y - dy

	return Quad{tl, tr, br, bl}
}

// ReorderLeftToRight sorts quads by the x-coordinate of their top-left
// corner, so that quad i matches the i-th strip of the target model when
// strips are matched positionally.
func ReorderLeftToRight(quads []Quad) {
	sort.Slice(quads, func(i, j int) bool {
		return quads[i][0].X < quads[j][0].X
	})
}
