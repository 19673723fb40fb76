package pose

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rodrigues converts an axis-angle rotation vector into a 3x3 rotation
// matrix.  The vector direction is the rotation axis and its length the
// rotation angle in radians.
func Rodrigues(rvec [3]float64) *mat.Dense {

	theta := math.Sqrt(rvec[0]*rvec[0] + rvec[1]*rvec[1] + rvec[2]*rvec[2])

	if theta < 1e-12 {
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		})
	}

	kx := rvec[0] / theta
	ky := rvec[1] / theta
	kz := rvec[2] / theta

	c := math.Cos(theta)
	s := math.Sin(theta)
	v := 1 - c

	return mat.NewDense(3, 3, []float64{
		c + kx*kx*v, kx*ky*v - kz*s, kx*kz*v + ky*s,
		ky*kx*v + kz*s, c + ky*ky*v, ky*kz*v - kx*s,
		kz*kx*v - ky*s, kz*ky*v + kx*s, c + kz*kz*v,
	})
}

// RotationVector converts a 3x3 rotation matrix into its axis-angle
// vector, the inverse of Rodrigues.
func RotationVector(r mat.Matrix) [3]float64 {

	trace := r.At(0, 0) + r.At(1, 1) + r.At(2, 2)
	cosTheta := (trace - 1) / 2

	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}

	theta := math.Acos(cosTheta)

	if theta < 1e-12 {
		return [3]float64{}
	}

	ax := r.At(2, 1) - r.At(1, 2)
	ay := r.At(0, 2) - r.At(2, 0)
	az := r.At(1, 0) - r.At(0, 1)

	norm := math.Sqrt(ax*ax + ay*ay + az*az)

	if norm < 1e-12 {
		// angle near pi, axis from the diagonal
		kx := math.Sqrt(math.Max(0, (r.At(0, 0)+1)/2))
		ky := math.Sqrt(math.Max(0, (r.At(1, 1)+1)/2))
		kz := math.Sqrt(math.Max(0, (r.At(2, 2)+1)/2))

		// fix signs from the off diagonal terms
		if r.At(0, 1) < 0 {
			ky = -ky
		}
		if r.At(0, 2) < 0 {
			kz = -kz
		}

		return [3]float64{kx * theta, ky * theta, kz * theta}
	}

	scale := theta / norm

	return [3]float64{ax * scale, ay * scale, az * scale}
}
