package pose

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

func TestComputeMetricsHeadOn(t *testing.T) {

	// camera 120 units straight back from the hub, looking at it
	p := LookAt(geom.Point3{Z: -120}, geom.Point3{})
	m := ComputeMetrics(p)

	if !m.Valid {
		t.Error("expected valid metrics")
	}
	if !floatsEqual(m.Yaw, 0, 1e-9) {
		t.Errorf("expected zero yaw, got %f", m.Yaw)
	}
	if !floatsEqual(m.Pitch, 0, 1e-9) {
		t.Errorf("expected zero pitch, got %f", m.Pitch)
	}
	if !floatsEqual(m.Distance, 120, 1e-9) {
		t.Errorf("expected distance 120, got %f", m.Distance)
	}
}

func TestComputeMetricsYawOffset(t *testing.T) {

	// camera offset to the side but still pointing along +z, so the hub
	// sits off the optical axis by atan2(x, z)
	x0, d := 20.0, 120.0

	p := Pose{TVec: [3]float64{-x0, 0, d}}
	m := ComputeMetrics(p)

	wantYaw := math.Atan2(x0, d) * 180 / math.Pi

	if !floatsEqual(m.Yaw, wantYaw, 1e-9) {
		t.Errorf("expected yaw %f, got %f", wantYaw, m.Yaw)
	}
	if !floatsEqual(m.Distance, math.Hypot(x0, d), 1e-9) {
		t.Errorf("expected distance %f, got %f", math.Hypot(x0, d), m.Distance)
	}
}

func TestComputeMetricsPitch(t *testing.T) {

	// rotating the camera about x by -theta tilts the optical axis up by
	// theta degrees
	cases := []float64{10, 31, 60}

	for _, deg := range cases {
		p := Pose{RVec: [3]float64{-deg * math.Pi / 180, 0, 0}}
		m := ComputeMetrics(p)

		if !floatsEqual(m.Pitch, deg, 1e-9) {
			t.Errorf("tilt %f: expected pitch %f, got %f", deg, deg, m.Pitch)
		}
	}
}

func TestComputeMetricsPitchStraightUp(t *testing.T) {

	// optical axis along -y, looking straight up
	p := Pose{RVec: [3]float64{-math.Pi / 2, 0, 0}}
	m := ComputeMetrics(p)

	if !floatsEqual(m.Pitch, 90, 1e-9) {
		t.Errorf("expected pitch 90, got %f", m.Pitch)
	}
}
