package quad

import (
	"image"
	"math"

	"github.com/team6962/vision2022/geom"
	"gocv.io/x/gocv"
)

// refineCorners replaces the fitted rectangle corners with the best
// matching contour points and then runs sub-pixel refinement on the mask.
// Each contour point is binned to its nearest rectangle corner; per bin
// the point with the smallest sort key wins, where the key is the
// interior-angle cosine (sharpest corner) or the distance to the
// rectangle corner.  A contour whose points leave any bin empty does not
// produce a valid quad.
func (e *Extractor) refineCorners(contour gocv.PointVector, q Quad, mask gocv.Mat) (Quad, bool) {

	points := contour.ToPoints()

	var cosines []float64
	if e.params.UseCornerCosines {
		cosines = interiorCosines(points)
	}

	type candidate struct {
		key   float64
		point geom.Point2
		found bool
	}

	var bins [4]candidate

	for i, p := range points {
		pt := geom.Point2{X: float64(p.X), Y: float64(p.Y)}

		best := 0
		bestDist := geom.Dist(pt, q[0])

		for c := 1; c < 4; c++ {
			if d := geom.Dist(pt, q[c]); d < bestDist {
				best = c
				bestDist = d
			}
		}

		key := bestDist
		if e.params.UseCornerCosines {
			key = cosines[i]
		}

		if !bins[best].found || key < bins[best].key {
			bins[best] = candidate{key: key, point: pt, found: true}
		}
	}

	var refined Quad
	for i := 0; i < 4; i++ {
		if !bins[i].found {
			return Quad{}, false
		}
		refined[i] = bins[i].point
	}

	return e.subPixel(refined, mask), true
}

// subPixel runs iterative corner refinement within a window scaled to the
// mask resolution.
func (e *Extractor) subPixel(q Quad, mask gocv.Mat) Quad {

	scale := float64(minInt(mask.Rows(), mask.Cols())) / 360.0
	window := 3*int(2*scale) + 1

	corners := gocv.NewMatWithSize(4, 1, gocv.MatTypeCV32FC2)
	defer corners.Close()

	for i := 0; i < 4; i++ {
		corners.SetFloatAt(i, 0, float32(q[i].X))
		corners.SetFloatAt(i, 1, float32(q[i].Y))
	}

	criteria := gocv.NewTermCriteria(gocv.MaxIter|gocv.EPS,
		e.params.SubPixIterations, e.params.SubPixEpsilon)

	gocv.CornerSubPix(mask, &corners, image.Pt(window, window),
		image.Pt(-1, -1), criteria)

	var out Quad
	for i := 0; i < 4; i++ {
		out[i] = geom.Point2{
			X: float64(corners.GetFloatAt(i, 0)),
			Y: float64(corners.GetFloatAt(i, 1)),
		}
	}

	return out
}

// interiorCosines returns, for each polygon point, the cosine of the
// angle between the edges entering and leaving it.  Sharp corners have
// cosines near -1.
func interiorCosines(points []image.Point) []float64 {

	n := len(points)
	cosines := make([]float64, n)

	for i := range points {
		prev := points[(i-1+n)%n]
		cur := points[i]
		next := points[(i+1)%n]

		v01x := float64(cur.X - prev.X)
		v01y := float64(cur.Y - prev.Y)
		v12x := float64(next.X - cur.X)
		v12y := float64(next.Y - cur.Y)

		norm := math.Hypot(v01x, v01y) * math.Hypot(v12x, v12y)
		if norm == 0 {
			cosines[i] = 1
			continue
		}

		cosines[i] = (v01x*v12x + v01y*v12y) / norm
	}

	return cosines
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
