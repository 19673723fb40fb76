package pose

import (
	"math"

	"github.com/team6962/vision2022/geom"
)

// Metrics are the aiming values derived from a camera pose: the signed
// horizontal bearing error to the target, the camera elevation, and the
// horizontal distance from the camera to the target origin.  Units are
// degrees and the world length unit (inches in the reference deployment).
type Metrics struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Valid    bool
}

// ComputeMetrics derives yaw, pitch and horizontal distance from a pose.
func ComputeMetrics(p Pose) Metrics {

	camLoc := p.CameraOrigin()
	camOrient := p.CameraForward()

	// project the camera-to-origin vector and the optical axis onto the
	// horizontal x-z plane
	toOriginX := -camLoc.X
	toOriginZ := -camLoc.Z

	orientX := camOrient.X
	orientZ := camOrient.Z

	// oriented angle from the optical axis to the camera-to-target vector:
	// theta = atan2(a x b, a . b)
	yaw := math.Atan2(orientX*toOriginZ-orientZ*toOriginX,
		orientX*toOriginX+orientZ*toOriginZ)

	// pitch: angle t between the optical axis and world up (-y), then
	// elevation = 90 - t, computed directly via the cotangent identity
	// tan(90 - t) = dot / |cross|
	up := geom.Point3{Y: -1}
	pitch := math.Atan2(geom.Dot3(camOrient, up),
		geom.Norm3(geom.Cross3(camOrient, up)))

	return Metrics{
		Yaw:      yaw * 180 / math.Pi,
		Pitch:    pitch * 180 / math.Pi,
		Distance: math.Hypot(toOriginX, toOriginZ),
		Valid:    true,
	}
}
