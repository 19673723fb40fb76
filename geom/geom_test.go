package geom

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {

	d := Dist(Point2{X: 1, Y: 2}, Point2{X: 4, Y: 6})

	if d != 5 {
		t.Errorf("expected 5, got %f", d)
	}
}

func TestNorm3(t *testing.T) {

	n := Norm3(Point3{X: 2, Y: 3, Z: 6})

	if n != 7 {
		t.Errorf("expected 7, got %f", n)
	}
}

func TestCross3(t *testing.T) {

	c := Cross3(Point3{X: 1}, Point3{Y: 1})

	if c.X != 0 || c.Y != 0 || c.Z != 1 {
		t.Errorf("expected the z unit vector, got %+v", c)
	}

	// anti-commutative
	c = Cross3(Point3{Y: 1}, Point3{X: 1})

	if c.Z != -1 {
		t.Errorf("expected -z, got %+v", c)
	}
}

func TestDot3Orthogonal(t *testing.T) {

	if d := Dot3(Point3{X: 1}, Point3{Y: 1}); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}

	if d := Dot3(Point3{X: 2, Y: 3, Z: 4}, Point3{X: 2, Y: 3, Z: 4}); d != 29 {
		t.Errorf("expected 29, got %f", d)
	}
}

func TestSub3(t *testing.T) {

	got := Sub3(Point3{X: 5, Y: 4, Z: 3}, Point3{X: 1, Y: 1, Z: 1})

	if got != (Point3{X: 4, Y: 3, Z: 2}) {
		t.Errorf("unexpected difference %+v", got)
	}
}

func TestNorm3Zero(t *testing.T) {

	if n := Norm3(Point3{}); n != 0 || math.IsNaN(n) {
		t.Errorf("expected 0, got %f", n)
	}
}
