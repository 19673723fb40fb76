package calib

import (
	"fmt"

	"github.com/team6962/vision2022/geom"
	"gonum.org/v1/gonum/mat"
)

// Intrinsics holds the camera projection parameters and lens distortion
// for one physical camera at one resolution.  Immutable after construction.
type Intrinsics struct {
	// focal lengths in pixels
	Fx, Fy float64
	// principal point in pixels
	Cx, Cy float64
	// lens distortion coefficients
	Dist Distortion
}

// NewIntrinsics builds Intrinsics from a row-major 3x3 camera matrix and a
// 5 element distortion coefficient vector in OpenCV order
// (k1, k2, p1, p2, k3).
func NewIntrinsics(cameraMatrix []float64, distCoeffs []float64) (*Intrinsics, error) {

	if len(cameraMatrix) != 9 {
		return nil, fmt.Errorf("camera matrix must have 9 elements, got %d", len(cameraMatrix))
	}

	if len(distCoeffs) != 5 {
		return nil, fmt.Errorf("distortion vector must have 5 elements, got %d", len(distCoeffs))
	}

	return &Intrinsics{
		Fx: cameraMatrix[0],
		Fy: cameraMatrix[4],
		Cx: cameraMatrix[2],
		Cy: cameraMatrix[5],
		Dist: Distortion{
			K1: distCoeffs[0],
			K2: distCoeffs[1],
			P1: distCoeffs[2],
			P2: distCoeffs[3],
			K3: distCoeffs[4],
		},
	}, nil
}

// NewLimelightIntrinsics returns the calibration of the Limelight camera,
// measured at 960x720 and rescaled to the given image height.
func NewLimelightIntrinsics(imageHeight int) *Intrinsics {

	scale := float64(imageHeight) / 720.0

	return &Intrinsics{
		Fx: 772.53876202 * scale,
		Fy: 769.052151477 * scale,
		Cx: 479.132337442 * scale,
		Cy: 359.143001808 * scale,
		Dist: Distortion{
			K1: 2.9684613693070039e-01,
			K2: -1.4380252254747885e+00,
			P1: -2.2098421479494509e-03,
			P2: -3.3894563533907176e-03,
			K3: 2.5344430354806740e+00,
		},
	}
}

// Matrix returns the 3x3 camera matrix.
func (in *Intrinsics) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		in.Fx, 0, in.Cx,
		0, in.Fy, in.Cy,
		0, 0, 1,
	})
}

// PixelToNormalized maps a pixel coordinate to the normalized image plane.
// The result is still distorted; use UndistortPixel for the full inverse
// camera mapping.
func (in *Intrinsics) PixelToNormalized(p geom.Point2) geom.Point2 {
	return geom.Point2{
		X: (p.X - in.Cx) / in.Fx,
		Y: (p.Y - in.Cy) / in.Fy,
	}
}

// NormalizedToPixel maps a normalized image plane coordinate to pixels.
func (in *Intrinsics) NormalizedToPixel(p geom.Point2) geom.Point2 {
	return geom.Point2{
		X: p.X*in.Fx + in.Cx,
		Y: p.Y*in.Fy + in.Cy,
	}
}

// DistortToPixel applies lens distortion to an ideal normalized coordinate
// and maps it to pixels.  This is the forward camera model used when
// projecting world points.
func (in *Intrinsics) DistortToPixel(p geom.Point2) geom.Point2 {
	xd, yd := in.Dist.Distort(p.X, p.Y)
	return in.NormalizedToPixel(geom.Point2{X: xd, Y: yd})
}

// UndistortPixel maps a distorted pixel coordinate to the ideal normalized
// image plane.  An (x, y) result corresponds to the 3D ray (x, y, 1) in the
// camera coordinate system.
func (in *Intrinsics) UndistortPixel(p geom.Point2) geom.Point2 {
	n := in.PixelToNormalized(p)
	xu, yu := in.Dist.Undistort(n.X, n.Y)
	return geom.Point2{X: xu, Y: yu}
}

// UndistortPixels applies UndistortPixel to every point.
func (in *Intrinsics) UndistortPixels(pts []geom.Point2) []geom.Point2 {

	out := make([]geom.Point2, len(pts))

	for i, p := range pts {
		out[i] = in.UndistortPixel(p)
	}

	return out
}
