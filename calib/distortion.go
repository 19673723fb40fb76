package calib

// Distortion is the Brown-Conrady lens distortion model with coefficients
// in OpenCV order.
type Distortion struct {
	K1, K2, K3 float64 // radial
	P1, P2     float64 // tangential
}

// Distort applies the forward distortion model to an undistorted
// normalized coordinate:
//
//	x_d = x * (1 + k1*r^2 + k2*r^4 + k3*r^6) + 2*p1*x*y + p2*(r^2 + 2*x^2)
//	y_d = y * (1 + k1*r^2 + k2*r^4 + k3*r^6) + 2*p2*x*y + p1*(r^2 + 2*y^2)
func (d Distortion) Distort(x, y float64) (float64, float64) {

	r2 := x*x + y*y
	r4 := r2 * r2
	r6 := r4 * r2

	radial := 1.0 + d.K1*r2 + d.K2*r4 + d.K3*r6
	xd := x*radial + 2.0*d.P1*x*y + d.P2*(r2+2.0*x*x)
	yd := y*radial + 2.0*d.P2*x*y + d.P1*(r2+2.0*y*y)

	return xd, yd
}

// Undistort inverts the distortion model with a Newton-Raphson iteration,
// solving for the undistorted coordinate that distorts to (xd, yd).
func (d Distortion) Undistort(xd, yd float64) (float64, float64) {

	const (
		maxIterations = 20
		tolerance     = 1e-10
	)

	// start from the distorted point
	xu, yu := xd, yd

	for i := 0; i < maxIterations; i++ {

		r2 := xu*xu + yu*yu
		r4 := r2 * r2

		radial := 1.0 + d.K1*r2 + d.K2*r4 + d.K3*r4*r2

		xdEst := xu*radial + 2.0*d.P1*xu*yu + d.P2*(r2+2.0*xu*xu)
		ydEst := yu*radial + 2.0*d.P2*xu*yu + d.P1*(r2+2.0*yu*yu)

		errX := xdEst - xd
		errY := ydEst - yd

		if errX*errX+errY*errY < tolerance*tolerance {
			break
		}

		// jacobian of the forward model at the current estimate
		dRadDxu := 2.0 * xu * (d.K1 + 2.0*d.K2*r2 + 3.0*d.K3*r4)
		dRadDyu := 2.0 * yu * (d.K1 + 2.0*d.K2*r2 + 3.0*d.K3*r4)

		dxdDxu := radial + xu*dRadDxu + 2.0*d.P1*yu + 6.0*d.P2*xu
		dxdDyu := xu*dRadDyu + 2.0*d.P1*xu + 2.0*d.P2*yu
		dydDxu := yu*dRadDxu + 2.0*d.P2*yu + 2.0*d.P1*xu
		dydDyu := radial + yu*dRadDyu + 2.0*d.P2*xu + 6.0*d.P1*yu

		det := dxdDxu*dydDyu - dxdDyu*dydDxu
		if det == 0 {
			break
		}

		xu -= (dydDyu*errX - dxdDyu*errY) / det
		yu -= (-dydDxu*errX + dxdDxu*errY) / det
	}

	return xu, yu
}
