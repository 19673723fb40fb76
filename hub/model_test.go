package hub

import (
	"math"
	"testing"
)

// floatsEqual compares two floats within an epsilon
func floatsEqual(a, b, epsilon float64) bool {
	diff := a - b
	return diff <= epsilon && diff >= -epsilon
}

func TestNewModelStripCount(t *testing.T) {

	m := NewModel(DefaultModelParams())

	if m.NumStrips() != 16 {
		t.Errorf("expected 16 strips, got %d", m.NumStrips())
	}
}

func TestNewModelCornersOnCircle(t *testing.T) {

	params := DefaultModelParams()
	m := NewModel(params)

	for i := 0; i < m.NumStrips(); i++ {
		for j, c := range m.Strip(i) {
			r := math.Hypot(c.X, c.Z)

			if !floatsEqual(r, params.Radius, 1e-9) {
				t.Errorf("strip %d corner %d off the circle: radius %f", i, j, r)
			}
		}
	}
}

func TestNewModelCornerHeights(t *testing.T) {

	params := DefaultModelParams()
	m := NewModel(params)

	half := params.TapeHeight / 2

	for i := 0; i < m.NumStrips(); i++ {
		s := m.Strip(i)

		// y grows downward, so the top edge corners come first
		if s[0].Y != -half || s[1].Y != -half {
			t.Errorf("strip %d: top corners at y %f, %f", i, s[0].Y, s[1].Y)
		}
		if s[2].Y != half || s[3].Y != half {
			t.Errorf("strip %d: bottom corners at y %f, %f", i, s[2].Y, s[3].Y)
		}
	}
}

func TestNewModelAngularSpacing(t *testing.T) {

	params := DefaultModelParams()
	m := NewModel(params)

	wantStep := (params.TapeLength + params.GapLength) / params.Radius

	for i := 1; i < m.NumStrips(); i++ {
		prev := m.Strip(i - 1)[0]
		cur := m.Strip(i)[0]

		step := math.Atan2(cur.Z, cur.X) - math.Atan2(prev.Z, prev.X)
		if step < 0 {
			step += 2 * math.Pi
		}

		if !floatsEqual(step, wantStep, 1e-9) {
			t.Errorf("strip %d: angular step %f, want %f", i, step, wantStep)
		}
	}
}

func TestNewModelTapeArcLength(t *testing.T) {

	params := DefaultModelParams()
	m := NewModel(params)

	s := m.Strip(0)

	a0 := math.Atan2(s[0].Z, s[0].X)
	a1 := math.Atan2(s[1].Z, s[1].X)

	if !floatsEqual((a1-a0)*params.Radius, params.TapeLength, 1e-9) {
		t.Errorf("strip arc length %f, want %f", (a1-a0)*params.Radius, params.TapeLength)
	}
}

func TestStripPoints(t *testing.T) {

	m := NewModel(DefaultModelParams())

	pts := m.StripPoints(2)

	if len(pts) != 8 {
		t.Fatalf("expected 8 points for 2 strips, got %d", len(pts))
	}

	s0 := m.Strip(0)
	if pts[0] != s0[0] || pts[3] != s0[3] {
		t.Error("corner order not preserved")
	}

	// n beyond the strip count is clamped
	if got := len(m.StripPoints(100)); got != 64 {
		t.Errorf("expected 64 points for the whole model, got %d", got)
	}
}
