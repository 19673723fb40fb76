package quad

import (
	"github.com/team6962/vision2022/geom"
	"gocv.io/x/gocv"
)

// ExtractorParams holds the geometric acceptance thresholds for turning
// mask contours into quads.  Lengths and areas are in pixels, angles in
// degrees.
type ExtractorParams struct {
	// Contours with a shorter closed arc length are treated as noise
	MinArcLength float64
	// Minimum absolute contour area
	MinArea float64
	// Accepted window for contour area / convex hull area.  Ratios below
	// the window indicate non-convex or self-intersecting shapes.
	MinHullRatio float64
	MaxHullRatio float64
	// Contours with any point closer than this to the image border are
	// rejected as partially occluded
	BorderMargin float64
	// Accepted aspect ratio window of the fitted rectangle, measured
	// along its longer near-horizontal side
	MinAspectRatio float64
	MaxAspectRatio float64
	// Maximum rectangle tilt after normalizing the angle into [0, 45].
	// The camera is assumed to have zero roll, so valid strips appear
	// nearly vertical sided.
	MaxHorizontalAngle float64
	// Snap the left and right corner pairs to shared x-coordinates
	AssumeZeroRoll bool
	// Stretch both sides to the larger observed side height
	FixedHeight bool
	// Refine the rectangle corners against the original contour points
	// followed by sub-pixel refinement on the mask
	RefineCorners bool
	// Pick corner candidates by extremal interior-angle cosine rather
	// than by distance from the rectangle corner
	UseCornerCosines bool
	// Sub-pixel refinement stop conditions
	SubPixIterations int
	SubPixEpsilon    float64
}

// DefaultExtractorParams returns the reference thresholds tuned on the
// Limelight stream.
func DefaultExtractorParams() ExtractorParams {
	return ExtractorParams{
		MinArcLength:       50,
		MinArea:            150,
		MinHullRatio:       0.9,
		MaxHullRatio:       1.01,
		BorderMargin:       10,
		MinAspectRatio:     1.2,
		MaxAspectRatio:     10.0,
		MaxHorizontalAngle: 60,
		AssumeZeroRoll:     true,
		FixedHeight:        false,
		RefineCorners:      false,
		UseCornerCosines:   false,
		SubPixIterations:   40,
		SubPixEpsilon:      0.001,
	}
}

// Extractor turns binary mask contours into validated, corner-ordered
// quads.
type Extractor struct {
	params ExtractorParams
}

// NewExtractor returns an Extractor with the given thresholds.
func NewExtractor(params ExtractorParams) *Extractor {
	return &Extractor{params: params}
}

// FindQuads finds the foreground contours of a single channel binary mask
// and extracts one quad per contour that passes all geometric tests.
// The returned quads are globally reordered left to right by their
// top-left corner.
func (e *Extractor) FindQuads(mask gocv.Mat) []Quad {

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var quads []Quad

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		if gocv.ArcLength(contour, true) < e.params.MinArcLength {
			continue
		}

		q, ok := e.extractQuad(contour, mask)
		if !ok {
			continue
		}

		quads = append(quads, q)
	}

	ReorderLeftToRight(quads)

	return quads
}

// extractQuad validates a single contour and returns its corner-ordered
// quad.  A false result drops the contour without aborting the frame.
func (e *Extractor) extractQuad(contour gocv.PointVector, mask gocv.Mat) (Quad, bool) {

	if !e.testArea(contour) {
		return Quad{}, false
	}

	if !e.testBorderProximity(contour, mask) {
		return Quad{}, false
	}

	rect := gocv.MinAreaRect(contour)

	if !e.testAspectRatio(rect) {
		return Quad{}, false
	}

	var corners [4]geom.Point2
	for i := 0; i < 4 && i < len(rect.Points); i++ {
		corners[i] = geom.Point2{X: float64(rect.Points[i].X), Y: float64(rect.Points[i].Y)}
	}

	q := sortCorners(corners)

	if e.params.AssumeZeroRoll {
		q = snapVerticalSides(q)
	}

	if e.params.FixedHeight {
		q = forceFixedHeight(q)
	}

	if !e.params.RefineCorners {
		return q, true
	}

	return e.refineCorners(contour, q, mask)
}
