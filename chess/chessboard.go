// Package chess tracks a calibration chessboard with the same pose
// estimator used for hub tracking.  Tracking a perfectly vertical board
// is used during setup to measure the camera pitch and any distance
// offsets.
package chess

import (
	"image"

	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/geom"
	"github.com/team6962/vision2022/pose"
	"gocv.io/x/gocv"
)

// Params describes the chessboard pattern: inner corner grid size and
// square width in world units.
type Params struct {
	SquareWidth float64
	Rows        int
	Cols        int
}

// DefaultParams returns the board used for the reference camera
// calibration (2.34cm squares in inches).
func DefaultParams() Params {
	return Params{
		SquareWidth: 0.9212598,
		Rows:        6,
		Cols:        9,
	}
}

// Tracker locates the chessboard in frames and estimates the camera pose
// relative to it.
type Tracker struct {
	params Params
	objPts []geom.Point3
	est    *pose.Estimator
}

// NewTracker returns a Tracker for the given board and camera.
func NewTracker(intr *calib.Intrinsics, params Params,
	estParams pose.EstimatorParams) *Tracker {

	// planar grid of inner corners, row major, z = 0
	objPts := make([]geom.Point3, 0, params.Rows*params.Cols)

	for r := 0; r < params.Rows; r++ {
		for c := 0; c < params.Cols; c++ {
			objPts = append(objPts, geom.Point3{
				X: float64(c) * params.SquareWidth,
				Y: float64(r) * params.SquareWidth,
			})
		}
	}

	return &Tracker{
		params: params,
		objPts: objPts,
		est:    pose.NewEstimator(intr, estParams),
	}
}

// Localize finds the board corners in the frame and updates the tracked
// pose.  A frame without a detectable board resets tracking and returns
// zero metrics.
func (t *Tracker) Localize(frame gocv.Mat) pose.Metrics {

	gray := gocv.NewMat()
	defer gray.Close()

	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	corners := gocv.NewMat()
	defer corners.Close()

	patternSize := image.Pt(t.params.Cols, t.params.Rows)
	flags := gocv.CalibCBAdaptiveThresh | gocv.CalibCBNormalizeImage | gocv.CalibCBFastCheck

	if !gocv.FindChessboardCorners(gray, patternSize, &corners, flags) {
		t.est.Reset()
		return pose.Metrics{}
	}

	criteria := gocv.NewTermCriteria(gocv.MaxIter|gocv.EPS, 30, 0.01)
	gocv.CornerSubPix(gray, &corners, image.Pt(11, 11), image.Pt(-1, -1), criteria)

	imgPts := make([]geom.Point2, corners.Rows())
	for i := 0; i < corners.Rows(); i++ {
		imgPts[i] = geom.Point2{
			X: float64(corners.GetFloatAt(i, 0)),
			Y: float64(corners.GetFloatAt(i, 1)),
		}
	}

	if len(imgPts) != len(t.objPts) {
		t.est.Reset()
		return pose.Metrics{}
	}

	t.est.Estimate(t.objPts, imgPts)

	return t.est.Metrics()
}

// Pose returns the tracked pose and whether it is valid.
func (t *Tracker) Pose() (pose.Pose, bool) {
	return t.est.Pose()
}
