// Package segment produces the binary foreground mask highlighting
// retro-reflective tape lit by the green LED ring.  The geometric
// pipeline treats the mask as an opaque input; this package is the
// reference producer.
package segment

import (
	"image"

	"gocv.io/x/gocv"
)

// Params holds the HSV threshold window and preprocessing settings.
type Params struct {
	// Inclusive HSV lower and upper bounds of tape-colored pixels
	LowH, LowS, LowV    float64
	HighH, HighS, HighV float64
	// Gaussian blur kernel size applied before thresholding, 0 disables
	BlurKernel int
	// Close small holes in the mask with an elliptical kernel
	Morphology  bool
	MorphKernel int
}

// DefaultParams returns the green window tuned for the Limelight LED ring.
// The value floor is exposure dependent and may need raising on brighter
// fields.
func DefaultParams() Params {
	return Params{
		LowH:        35,
		LowS:        100,
		LowV:        15,
		HighH:       80,
		HighS:       255,
		HighV:       255,
		BlurKernel:  3,
		Morphology:  false,
		MorphKernel: 5,
	}
}

// Segmenter converts BGR frames into binary masks.
type Segmenter struct {
	params Params
}

// NewSegmenter returns a Segmenter with the given thresholds.
func NewSegmenter(params Params) *Segmenter {
	return &Segmenter{params: params}
}

// Mask returns a single channel binary mask of tape-colored pixels in the
// BGR frame.  The caller owns the returned Mat and must Close it.
func (s *Segmenter) Mask(frame gocv.Mat) gocv.Mat {

	src := frame

	blurred := gocv.NewMat()
	defer blurred.Close()

	if s.params.BlurKernel > 0 {
		k := image.Pt(s.params.BlurKernel, s.params.BlurKernel)
		gocv.GaussianBlur(frame, &blurred, k, 0, 0, gocv.BorderDefault)
		src = blurred
	}

	hsv := gocv.NewMat()
	defer hsv.Close()

	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()

	low := gocv.NewScalar(s.params.LowH, s.params.LowS, s.params.LowV, 0)
	high := gocv.NewScalar(s.params.HighH, s.params.HighS, s.params.HighV, 0)
	gocv.InRangeWithScalar(hsv, low, high, &mask)

	if s.params.Morphology {
		kernel := gocv.GetStructuringElement(gocv.MorphEllipse,
			image.Pt(s.params.MorphKernel, s.params.MorphKernel))
		defer kernel.Close()

		gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
	}

	return mask
}
