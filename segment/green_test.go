package segment

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// bgrFrame returns a 100x100 BGR frame filled with the given color
func bgrFrame(c color.RGBA) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		100, 100, gocv.MatTypeCV8UC3)
}

func TestMaskSelectsGreen(t *testing.T) {

	frame := bgrFrame(color.RGBA{R: 20, G: 220, B: 30})
	defer frame.Close()

	mask := NewSegmenter(DefaultParams()).Mask(frame)
	defer mask.Close()

	if mask.Type() != gocv.MatTypeCV8UC1 {
		t.Fatalf("expected a single channel mask, got type %v", mask.Type())
	}

	if n := gocv.CountNonZero(mask); n != 100*100 {
		t.Errorf("expected a fully foreground mask, got %d pixels", n)
	}
}

func TestMaskRejectsNonGreen(t *testing.T) {

	cases := []struct {
		name string
		c    color.RGBA
	}{
		{"red", color.RGBA{R: 220, G: 20, B: 30}},
		{"blue", color.RGBA{R: 20, G: 30, B: 220}},
		{"black", color.RGBA{}},
		{"white", color.RGBA{R: 255, G: 255, B: 255}},
	}

	s := NewSegmenter(DefaultParams())

	for _, tc := range cases {
		frame := bgrFrame(tc.c)

		mask := s.Mask(frame)

		if n := gocv.CountNonZero(mask); n != 0 {
			t.Errorf("%s: expected an empty mask, got %d pixels", tc.name, n)
		}

		mask.Close()
		frame.Close()
	}
}

func TestMaskIsolatesGreenRegion(t *testing.T) {

	frame := bgrFrame(color.RGBA{})
	defer frame.Close()

	// a green rectangle on black
	gocv.Rectangle(&frame, image.Rect(20, 30, 60, 50), color.RGBA{R: 20, G: 220, B: 30, A: 0}, -1)

	mask := NewSegmenter(DefaultParams()).Mask(frame)
	defer mask.Close()

	n := gocv.CountNonZero(mask)

	// blur smears the edges by a pixel or two
	want := (60 - 20) * (50 - 30)
	if n < want-300 || n > want+300 {
		t.Errorf("expected roughly %d foreground pixels, got %d", want, n)
	}
}
