package pose

import (
	"github.com/team6962/vision2022/geom"
	"gonum.org/v1/gonum/mat"
)

// Pose is a rigid camera-from-world transform.  It maps a point expressed
// in target world coordinates into camera coordinates:
//
//	p_camera = R * p_world + T
//
// where R is the rotation matrix of the axis-angle vector RVec.  The
// camera frame follows the usual computer vision convention: x right,
// y down, z forward along the optical axis.  World coordinates are the
// target frame: origin at the hub center, y down, with the reflective
// strips in the x-z plane.
type Pose struct {
	RVec [3]float64
	TVec [3]float64
}

// RotationMatrix returns the 3x3 rotation matrix R of the pose.
func (p Pose) RotationMatrix() *mat.Dense {
	return Rodrigues(p.RVec)
}

// Apply transforms a world point into camera coordinates.
func (p Pose) Apply(w geom.Point3) geom.Point3 {

	r := p.RotationMatrix()

	return geom.Point3{
		X: r.At(0, 0)*w.X + r.At(0, 1)*w.Y + r.At(0, 2)*w.Z + p.TVec[0],
		Y: r.At(1, 0)*w.X + r.At(1, 1)*w.Y + r.At(1, 2)*w.Z + p.TVec[1],
		Z: r.At(2, 0)*w.X + r.At(2, 1)*w.Y + r.At(2, 2)*w.Z + p.TVec[2],
	}
}

// CameraOrigin returns the camera center in world coordinates.
//
//	p_c = R*p_w + T  =>  p_w = R^T * (p_c - T), with p_c = 0
func (p Pose) CameraOrigin() geom.Point3 {

	r := p.RotationMatrix()

	return geom.Point3{
		X: -(r.At(0, 0)*p.TVec[0] + r.At(1, 0)*p.TVec[1] + r.At(2, 0)*p.TVec[2]),
		Y: -(r.At(0, 1)*p.TVec[0] + r.At(1, 1)*p.TVec[1] + r.At(2, 1)*p.TVec[2]),
		Z: -(r.At(0, 2)*p.TVec[0] + r.At(1, 2)*p.TVec[1] + r.At(2, 2)*p.TVec[2]),
	}
}

// CameraForward returns the camera optical axis (its z vector) expressed
// in world coordinates.  This is R^T * (0, 0, 1), the third row of R.
func (p Pose) CameraForward() geom.Point3 {

	r := p.RotationMatrix()

	return geom.Point3{
		X: r.At(2, 0),
		Y: r.At(2, 1),
		Z: r.At(2, 2),
	}
}

// TranslationNorm returns the length of the translation vector, the
// straight line distance from the camera center to the world origin.
func (p Pose) TranslationNorm() float64 {
	return geom.Norm3(geom.Point3{X: p.TVec[0], Y: p.TVec[1], Z: p.TVec[2]})
}
