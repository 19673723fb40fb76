package render

import "image/color"

var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 0}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	Cyan   = color.RGBA{R: 0, G: 255, B: 255, A: 0}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	Orange = color.RGBA{R: 255, G: 127, B: 0, A: 0}
)
