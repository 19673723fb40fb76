package calib

import (
	"math"
	"testing"

	"github.com/team6962/vision2022/geom"
)

// floatsEqual compares two floats within an epsilon
func floatsEqual(a, b, epsilon float64) bool {
	diff := a - b
	return diff <= epsilon && diff >= -epsilon
}

func TestNewIntrinsics(t *testing.T) {

	in, err := NewIntrinsics(
		[]float64{
			700, 0, 480,
			0, 710, 360,
			0, 0, 1,
		},
		[]float64{0.1, -0.2, 0.001, -0.002, 0.3},
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Fx != 700 || in.Fy != 710 || in.Cx != 480 || in.Cy != 360 {
		t.Errorf("camera matrix not unpacked correctly: %+v", in)
	}

	// distortion coefficients are in OpenCV order (k1, k2, p1, p2, k3)
	d := in.Dist
	if d.K1 != 0.1 || d.K2 != -0.2 || d.P1 != 0.001 || d.P2 != -0.002 || d.K3 != 0.3 {
		t.Errorf("distortion not unpacked correctly: %+v", d)
	}
}

func TestNewIntrinsicsBadInput(t *testing.T) {

	if _, err := NewIntrinsics([]float64{1, 2, 3}, make([]float64, 5)); err == nil {
		t.Error("expected error for short camera matrix")
	}

	if _, err := NewIntrinsics(make([]float64, 9), []float64{1, 2}); err == nil {
		t.Error("expected error for short distortion vector")
	}
}

func TestLimelightScaling(t *testing.T) {

	full := NewLimelightIntrinsics(720)
	half := NewLimelightIntrinsics(360)

	if !floatsEqual(half.Fx, full.Fx/2, 1e-9) || !floatsEqual(half.Cy, full.Cy/2, 1e-9) {
		t.Errorf("expected half resolution intrinsics to be scaled by 0.5: %+v vs %+v", half, full)
	}

	// distortion coefficients are resolution independent
	if half.Dist != full.Dist {
		t.Error("distortion coefficients must not scale with resolution")
	}
}

func TestPixelNormalizedRoundTrip(t *testing.T) {

	in := NewLimelightIntrinsics(720)

	pts := []geom.Point2{
		{X: 480, Y: 360},
		{X: 100, Y: 50},
		{X: 900, Y: 700},
	}

	for _, p := range pts {
		got := in.NormalizedToPixel(in.PixelToNormalized(p))

		if !floatsEqual(got.X, p.X, 1e-9) || !floatsEqual(got.Y, p.Y, 1e-9) {
			t.Errorf("round trip of %v gave %v", p, got)
		}
	}
}

func TestUndistortInvertsDistort(t *testing.T) {

	d := NewLimelightIntrinsics(720).Dist

	// normalized coordinates spanning the usable field of view
	coords := []geom.Point2{
		{X: 0, Y: 0},
		{X: 0.1, Y: 0},
		{X: 0, Y: -0.2},
		{X: 0.3, Y: 0.25},
		{X: -0.4, Y: 0.1},
	}

	for _, c := range coords {
		xd, yd := d.Distort(c.X, c.Y)
		xu, yu := d.Undistort(xd, yd)

		if !floatsEqual(xu, c.X, 1e-8) || !floatsEqual(yu, c.Y, 1e-8) {
			t.Errorf("undistort(distort(%v)) gave (%f, %f)", c, xu, yu)
		}
	}
}

func TestUndistortPixelRay(t *testing.T) {

	in := NewLimelightIntrinsics(720)

	// a pixel above the principal point maps to a ray with negative y,
	// since image y grows downward
	n := in.UndistortPixel(geom.Point2{X: in.Cx, Y: in.Cy - 100})

	if n.Y >= 0 {
		t.Errorf("expected negative ray y for a pixel above center, got %f", n.Y)
	}
	if !floatsEqual(n.X, 0, 1e-2) {
		t.Errorf("expected ray x near zero, got %f", n.X)
	}

	// the principal point maps to the optical axis
	c := in.UndistortPixel(geom.Point2{X: in.Cx, Y: in.Cy})
	if !floatsEqual(c.X, 0, 1e-9) || !floatsEqual(c.Y, 0, 1e-9) {
		t.Errorf("expected zero ray at the principal point, got %v", c)
	}
}

func TestDistortToPixelMatchesUndistort(t *testing.T) {

	in := NewLimelightIntrinsics(720)

	ideal := geom.Point2{X: 0.15, Y: -0.1}

	px := in.DistortToPixel(ideal)
	back := in.UndistortPixel(px)

	if !floatsEqual(back.X, ideal.X, 1e-8) || !floatsEqual(back.Y, ideal.Y, 1e-8) {
		t.Errorf("full camera model round trip of %v gave %v", ideal, back)
	}
}

func TestMatrix(t *testing.T) {

	in := NewLimelightIntrinsics(720)
	m := in.Matrix()

	if m.At(0, 0) != in.Fx || m.At(1, 1) != in.Fy ||
		m.At(0, 2) != in.Cx || m.At(1, 2) != in.Cy || m.At(2, 2) != 1 {
		t.Errorf("unexpected camera matrix: %v", m.RawMatrix().Data)
	}

	if math.Abs(m.At(1, 0)) > 0 || math.Abs(m.At(2, 0)) > 0 {
		t.Error("expected zero off-diagonal entries")
	}
}
