package quad

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// testArea rejects contours that are too small or whose area diverges
// from their convex hull area, which indicates a non-convex or
// self-intersecting shape.
func (e *Extractor) testArea(contour gocv.PointVector) bool {

	area := gocv.ContourArea(contour)
	if area < e.params.MinArea {
		return false
	}

	hull := gocv.NewMat()
	defer hull.Close()

	gocv.ConvexHull(contour, &hull, true, true)

	hullPoints := make([]image.Point, hull.Rows())
	for i := 0; i < hull.Rows(); i++ {
		v := hull.GetVeciAt(i, 0)
		hullPoints[i] = image.Pt(int(v[0]), int(v[1]))
	}

	hullVector := gocv.NewPointVectorFromPoints(hullPoints)
	defer hullVector.Close()

	hullArea := gocv.ContourArea(hullVector)
	if hullArea <= 0 {
		return false
	}

	ratio := area / hullArea

	return ratio >= e.params.MinHullRatio && ratio <= e.params.MaxHullRatio
}

// testBorderProximity rejects contours with any point near the image
// border, since partially occluded strips give unreliable corners.
func (e *Extractor) testBorderProximity(contour gocv.PointVector, mask gocv.Mat) bool {

	width := float64(mask.Cols())
	height := float64(mask.Rows())
	border := e.params.BorderMargin

	for _, p := range contour.ToPoints() {
		x := float64(p.X)
		y := float64(p.Y)

		if x < border || x > width-border || y < border || y > height-border {
			return false
		}
	}

	return true
}

// testAspectRatio checks the fitted rectangle's aspect ratio oriented
// along its longer near-horizontal side, and its tilt.
func (e *Extractor) testAspectRatio(rect gocv.RotatedRect) bool {

	if rect.Width == 0 || rect.Height == 0 {
		return false
	}

	width := float64(rect.Width)
	height := float64(rect.Height)
	angle := math.Abs(rect.Angle)

	// pick the side that is closer to horizontal as the width
	var aspect float64
	if math.Cos(angle*math.Pi/180) > math.Cos(45*math.Pi/180) {
		aspect = width / height
	} else {
		aspect = height / width
	}

	if aspect < e.params.MinAspectRatio || aspect > e.params.MaxAspectRatio {
		return false
	}

	// zero camera roll means valid strips sit nearly upright
	if angle > 45 {
		angle = 90 - angle
	}

	return angle <= e.params.MaxHorizontalAngle
}
