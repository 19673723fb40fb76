package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering overlay text with GoCV.
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	// Vertical spacing between telemetry lines in pixels
	LineHeight int
}

// DefaultFont returns the HUD font settings.
func DefaultFont() Font {
	return Font{
		Face:       gocv.FontHersheySimplex,
		Scale:      1,
		Color:      White,
		Thickness:  2,
		LineHeight: 30,
	}
}
