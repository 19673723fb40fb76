package pose

import (
	"math"

	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/geom"
)

// EstimatorParams configures the tracked pose estimator.
type EstimatorParams struct {
	// Maximum allowed change of the translation vector norm between two
	// consecutive accepted poses, in world length units.  Larger jumps
	// are treated as a solver divergence and reset tracking.
	MaxDeltaDistance float64
	// Solver settings
	PnP PnPParams
}

// DefaultEstimatorParams returns the reference tracking settings.
func DefaultEstimatorParams() EstimatorParams {
	return EstimatorParams{
		MaxDeltaDistance: 12,
		PnP:              DefaultPnPParams(),
	}
}

// Estimator solves for the camera pose frame by frame, reusing the
// previous frame's pose as the solver seed while tracking, and vetoing
// implausible jumps.
//
// The estimator is a two state machine.  It starts Invalid; a successful
// estimate that passes validation enters Tracking; any failed estimate,
// failed validation, or insufficient input returns it to Invalid.  Warm
// starting only happens from the Tracking state.  Not safe for concurrent
// use; frames must be delivered in temporal order.
type Estimator struct {
	intr   *calib.Intrinsics
	params EstimatorParams

	pose     Pose
	tracking bool
	metrics  Metrics
}

// NewEstimator returns an Estimator in the invalid state.
func NewEstimator(intr *calib.Intrinsics, params EstimatorParams) *Estimator {
	return &Estimator{
		intr:   intr,
		params: params,
	}
}

// Estimate refines the camera pose from 2D/3D correspondences and reports
// whether the result was accepted.  On rejection at any stage the
// estimator resets to the invalid state and the metrics read zero.
func (e *Estimator) Estimate(objPts []geom.Point3, imgPts []geom.Point2) bool {

	if len(objPts) == 0 || len(imgPts) == 0 || len(objPts) != len(imgPts) {
		e.Reset()
		return false
	}

	var guess *Pose
	if e.tracking {
		seed := e.pose
		guess = &seed
	}

	next, err := SolvePnP(e.intr, objPts, imgPts, guess, e.params.PnP)
	if err != nil {
		e.Reset()
		return false
	}

	if !e.verify(next) {
		e.Reset()
		return false
	}

	e.pose = next
	e.tracking = true
	e.metrics = ComputeMetrics(next)

	return true
}

// verify applies the outlier jump veto.  The translation vector points
// from the camera center to the hub, so the change in its norm between
// consecutive frames is bounded by how far the robot can move per frame.
// Only checked while tracking.
func (e *Estimator) verify(next Pose) bool {

	if !e.tracking {
		return true
	}

	delta := math.Abs(next.TranslationNorm() - e.pose.TranslationNorm())

	return delta <= e.params.MaxDeltaDistance
}

// Reset clears the tracked pose and zeroes the metrics.
func (e *Estimator) Reset() {
	e.pose = Pose{}
	e.tracking = false
	e.metrics = Metrics{}
}

// Valid reports whether the estimator currently holds a trusted pose.
func (e *Estimator) Valid() bool {
	return e.tracking
}

// Pose returns the current pose and whether it is valid.
func (e *Estimator) Pose() (Pose, bool) {
	return e.pose, e.tracking
}

// Metrics returns the derived metrics of the current pose.  All fields
// are zero while the estimator is invalid.
func (e *Estimator) Metrics() Metrics {
	return e.metrics
}
