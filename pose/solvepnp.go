package pose

import (
	"errors"
	"math"

	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/geom"
	"gonum.org/v1/gonum/mat"
)

// PnPParams configures the iterative pose solver.
type PnPParams struct {
	// Maximum number of Levenberg-Marquardt iterations
	MaxIterations int
	// Stop once the relative cost improvement drops below this
	Tolerance float64
}

// DefaultPnPParams returns solver settings that converge comfortably for
// hub tracking ranges.
func DefaultPnPParams() PnPParams {
	return PnPParams{
		MaxIterations: 100,
		Tolerance:     1e-10,
	}
}

// ErrInsufficientPoints is returned when fewer than 4 correspondences are
// supplied to SolvePnP.
var ErrInsufficientPoints = errors.New("pose: need at least 4 point correspondences")

// SolvePnP estimates the camera-from-world pose that minimizes the pixel
// reprojection error of the given 2D/3D correspondences, using
// Levenberg-Marquardt over the 6 pose parameters.  When guess is non-nil
// the solver is warm started from it, otherwise a look-at seed aimed at
// the centroid of the object points is used.
func SolvePnP(in *calib.Intrinsics, objPts []geom.Point3, imgPts []geom.Point2,
	guess *Pose, params PnPParams) (Pose, error) {

	if len(objPts) != len(imgPts) || len(objPts) < 4 {
		return Pose{}, ErrInsufficientPoints
	}

	var current Pose
	if guess != nil {
		current = *guess
	} else {
		current = coldSeed(in, objPts, imgPts)
	}

	beta := [6]float64{
		current.RVec[0], current.RVec[1], current.RVec[2],
		current.TVec[0], current.TVec[1], current.TVec[2],
	}

	n := len(objPts)
	residual := func(b [6]float64) []float64 {

		p := Pose{
			RVec: [3]float64{b[0], b[1], b[2]},
			TVec: [3]float64{b[3], b[4], b[5]},
		}

		proj := Project(in, p, objPts)
		res := make([]float64, 2*n)

		for i := range proj {
			res[2*i] = proj[i].X - imgPts[i].X
			res[2*i+1] = proj[i].Y - imgPts[i].Y
		}

		return res
	}

	cost := func(res []float64) float64 {
		sum := 0.0
		for _, r := range res {
			sum += r * r
		}
		return sum
	}

	res := residual(beta)
	currentCost := cost(res)
	lambda := 1e-3

solve:
	for iter := 0; iter < params.MaxIterations; iter++ {

		// numeric jacobian by forward differences
		jac := mat.NewDense(2*n, 6, nil)

		for j := 0; j < 6; j++ {
			eps := 1e-6 * math.Max(1, math.Abs(beta[j]))

			perturbed := beta
			perturbed[j] += eps
			resP := residual(perturbed)

			for i := 0; i < 2*n; i++ {
				jac.Set(i, j, (resP[i]-res[i])/eps)
			}
		}

		// normal equations: (J^T J + lambda*I) * delta = -J^T r
		jtj := mat.NewDense(6, 6, nil)
		jtj.Mul(jac.T(), jac)

		rhs := mat.NewVecDense(6, nil)
		resVec := mat.NewVecDense(2*n, res)
		rhs.MulVec(jac.T(), resVec)
		rhs.ScaleVec(-1, rhs)

		improved := false

		for attempt := 0; attempt < 10; attempt++ {

			damped := mat.NewDense(6, 6, nil)
			damped.Copy(jtj)

			for d := 0; d < 6; d++ {
				damped.Set(d, d, damped.At(d, d)+lambda)
			}

			var delta mat.VecDense
			if err := delta.SolveVec(damped, rhs); err != nil {
				lambda *= 10
				continue
			}

			trial := beta
			for d := 0; d < 6; d++ {
				trial[d] += delta.AtVec(d)
			}

			trialRes := residual(trial)
			trialCost := cost(trialRes)

			if trialCost < currentCost {
				relImprovement := (currentCost - trialCost) / math.Max(currentCost, 1e-30)

				beta = trial
				res = trialRes
				currentCost = trialCost
				lambda = math.Max(lambda*0.3, 1e-12)
				improved = true

				if relImprovement < params.Tolerance {
					break solve
				}

				break
			}

			lambda *= 10
		}

		if !improved {
			break
		}
	}

	return Pose{
		RVec: [3]float64{beta[0], beta[1], beta[2]},
		TVec: [3]float64{beta[3], beta[4], beta[5]},
	}, nil
}

// coldSeed builds an initial pose guess when no previous pose is known.
// The camera is assumed to sit outward from the hub center along the
// direction of the observed strips, facing the center, at a distance
// inferred from the apparent size of the observation.
func coldSeed(in *calib.Intrinsics, objPts []geom.Point3, imgPts []geom.Point2) Pose {

	// direction from hub center through the centroid of the matched strips
	var cx, cz float64
	for _, o := range objPts {
		cx += o.X
		cz += o.Z
	}
	cx /= float64(len(objPts))
	cz /= float64(len(objPts))

	norm := math.Hypot(cx, cz)
	if norm < 1e-9 {
		cx, cz, norm = 1, 0, 1
	}
	cx /= norm
	cz /= norm

	// distance from the ratio of world extent to angular extent
	objSpan := 0.0
	for i := range objPts {
		for j := i + 1; j < len(objPts); j++ {
			d := geom.Norm3(geom.Sub3(objPts[i], objPts[j]))
			if d > objSpan {
				objSpan = d
			}
		}
	}

	imgSpan := 0.0
	normPts := in.UndistortPixels(imgPts)
	for i := range normPts {
		for j := i + 1; j < len(normPts); j++ {
			d := geom.Dist(normPts[i], normPts[j])
			if d > imgSpan {
				imgSpan = d
			}
		}
	}

	dist := 100.0
	if imgSpan > 1e-9 && objSpan > 0 {
		dist = objSpan / imgSpan
	}

	camera := geom.Point3{X: cx * dist, Y: 0, Z: cz * dist}

	return LookAt(camera, geom.Point3{})
}

// LookAt builds a camera-from-world pose for a camera at the given world
// position facing the target point, with zero roll (world y is down, as
// is camera y).  Used as the solver cold-start seed and for building
// synthetic observations.
func LookAt(camera, target geom.Point3) Pose {

	fwd := geom.Sub3(target, camera)
	fn := geom.Norm3(fwd)
	if fn < 1e-12 {
		fwd, fn = geom.Point3{Z: 1}, 1
	}
	fwd = geom.Point3{X: fwd.X / fn, Y: fwd.Y / fn, Z: fwd.Z / fn}

	down := geom.Point3{Y: 1}

	right := geom.Cross3(down, fwd)
	rn := geom.Norm3(right)
	if rn < 1e-12 {
		right, rn = geom.Point3{X: 1}, 1
	}
	right = geom.Point3{X: right.X / rn, Y: right.Y / rn, Z: right.Z / rn}

	ydir := geom.Cross3(fwd, right)

	// rows of R are the camera basis vectors in world coordinates
	r := mat.NewDense(3, 3, []float64{
		right.X, right.Y, right.Z,
		ydir.X, ydir.Y, ydir.Z,
		fwd.X, fwd.Y, fwd.Z,
	})

	// T = -R * camera
	t := [3]float64{
		-(r.At(0, 0)*camera.X + r.At(0, 1)*camera.Y + r.At(0, 2)*camera.Z),
		-(r.At(1, 0)*camera.X + r.At(1, 1)*camera.Y + r.At(1, 2)*camera.Z),
		-(r.At(2, 0)*camera.X + r.At(2, 1)*camera.Y + r.At(2, 2)*camera.Z),
	}

	return Pose{RVec: RotationVector(r), TVec: t}
}
