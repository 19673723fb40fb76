package hub

import (
	"math"

	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/pose"
	"github.com/team6962/vision2022/quad"
)

// KnownGeometry holds the mounting constants required by the analytic
// localizer: lengths in world units, pitch in degrees above horizontal.
type KnownGeometry struct {
	// Height of the strip centers above the floor
	HubHeight float64
	// Height of the camera lens above the floor
	CamHeight float64
	// Fixed upward tilt of the camera
	CamPitch float64
}

// DefaultKnownGeometry returns the mounting constants of the reference
// robot, derived in field testing.
func DefaultKnownGeometry() KnownGeometry {
	return KnownGeometry{
		HubHeight: 104,
		CamHeight: 29.7,
		CamPitch:  31,
	}
}

// Localizer converts extracted quads into camera aiming metrics against a
// target model.  It owns the tracked pose estimator; the estimator's pose
// is the only state carried between frames.
type Localizer struct {
	model *Model
	intr  *calib.Intrinsics
	est   *pose.Estimator
	known *KnownGeometry
}

// NewLocalizer returns a Localizer for the given target model and camera.
// known may be nil when only the PnP path is used.
func NewLocalizer(model *Model, intr *calib.Intrinsics,
	params pose.EstimatorParams, known *KnownGeometry) *Localizer {

	return &Localizer{
		model: model,
		intr:  intr,
		est:   pose.NewEstimator(intr, params),
		known: known,
	}
}

// Localize runs tracked PnP over the positional strip-to-quad
// correspondences.  Quads arrive ordered left to right and are matched
// index for index against the model strips; a single quad is not enough
// for a stable pose and resets tracking.
func (l *Localizer) Localize(quads []quad.Quad) pose.Metrics {

	if len(quads) < 2 {
		l.est.Reset()
		return pose.Metrics{}
	}

	n := len(quads)
	if n > l.model.NumStrips() {
		n = l.model.NumStrips()
	}

	objPts := l.model.StripPoints(n)
	imgPts := quad.CornerPoints(quads[:n])

	if !l.est.Estimate(objPts, imgPts) {
		return pose.Metrics{}
	}

	return l.est.Metrics()
}

// LocalizeKnownGeometry solves distance and yaw in closed form from a
// single vertical-angle observation, using the known camera height,
// camera pitch and hub height.  It never touches the pose estimator's
// tracked state; only the scalar metrics are meaningful in this mode.
func (l *Localizer) LocalizeKnownGeometry(quads []quad.Quad) pose.Metrics {

	if l.known == nil || len(quads) < 1 {
		return pose.Metrics{}
	}

	pts := l.intr.UndistortPixels(quad.CornerPoints(quads))

	// highest visible corner: image y grows downward, so the greatest
	// negated normalized y is the nearest tape top edge
	maxY := math.Inf(-1)
	sumX := 0.0

	for _, p := range pts {
		if -p.Y > maxY {
			maxY = -p.Y
		}
		sumX += p.X
	}

	yTheta := math.Atan(maxY)
	totalAngle := yTheta + l.known.CamPitch*math.Pi/180

	// vertical offset from the lens to the strip top edge
	camTapeHeight := l.known.HubHeight + l.model.params.TapeHeight/2 - l.known.CamHeight

	ratio := math.Tan(totalAngle)

	distance := 0.0
	if ratio > 0 {
		// the observed top edge sits on the near rim; the hub center is
		// one radius further away
		distance = camTapeHeight/ratio + l.model.params.Radius
	}

	meanX := sumX / float64(len(pts))

	return pose.Metrics{
		Yaw:      math.Atan(meanX) * 180 / math.Pi,
		Pitch:    l.known.CamPitch,
		Distance: distance,
		Valid:    true,
	}
}

// Pose returns the estimator's current pose and whether it is valid.
// Only meaningful after Localize; the known-geometry path never sets it.
func (l *Localizer) Pose() (pose.Pose, bool) {
	return l.est.Pose()
}

// Reset clears the tracked pose.
func (l *Localizer) Reset() {
	l.est.Reset()
}
