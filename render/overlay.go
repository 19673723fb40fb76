// Package render draws debug overlays for the hub tracking pipeline:
// detected quads, projected target geometry, camera axes and the
// telemetry HUD.  Drawing is for operator feedback only and has no effect
// on the estimates.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/geom"
	"github.com/team6962/vision2022/hub"
	"github.com/team6962/vision2022/pose"
	"github.com/team6962/vision2022/quad"
	"gocv.io/x/gocv"
)

// Quads outlines each detected quad and marks its corners.
func Quads(img *gocv.Mat, quads []quad.Quad, lineColor, circleColor color.RGBA) {
	for _, q := range quads {
		Polygon(img, q.Points(), lineColor, circleColor, 4, 2)
	}
}

// Polygon draws a closed polygon with optional corner circles.  The whole
// polygon is skipped when any vertex lies far outside the frame, which
// happens when a bad pose projects points towards infinity.
func Polygon(img *gocv.Mat, pts []geom.Point2, lineColor, circleColor color.RGBA,
	circleRadius, thickness int) {

	for _, p := range pts {
		if isFarOutside(p, img) {
			return
		}
	}

	n := len(pts)
	for i := 0; i < n; i++ {
		p1 := image.Pt(int(pts[i].X), int(pts[i].Y))
		p2 := image.Pt(int(pts[(i+1)%n].X), int(pts[(i+1)%n].Y))

		gocv.Line(img, p1, p2, lineColor, thickness)

		if circleRadius > 0 {
			gocv.Circle(img, p1, circleRadius, circleColor, thickness)
		}
	}
}

// Axes draws the target coordinate frame projected into the image: x in
// green, up in cyan, and the rim plane normal in yellow, plus a circle at
// the target origin.
func Axes(img *gocv.Mat, in *calib.Intrinsics, p pose.Pose, axisLength float64) {

	world := []geom.Point3{
		{},
		{X: axisLength},
		{Y: -axisLength},
		{Z: -axisLength},
	}

	pts := pose.Project(in, p, world)

	for _, pt := range pts {
		if isFarOutside(pt, img) {
			return
		}
	}

	origin := image.Pt(int(pts[0].X), int(pts[0].Y))

	gocv.Circle(img, origin, 6, Red, 3)
	gocv.ArrowedLine(img, origin, image.Pt(int(pts[1].X), int(pts[1].Y)), Green, 2)
	gocv.ArrowedLine(img, origin, image.Pt(int(pts[2].X), int(pts[2].Y)), Cyan, 2)
	gocv.ArrowedLine(img, origin, image.Pt(int(pts[3].X), int(pts[3].Y)), Yellow, 2)
}

// Hub projects every strip of the target model under the estimated pose
// and outlines it, showing the model lock against the live detection.
func Hub(img *gocv.Mat, in *calib.Intrinsics, p pose.Pose, model *hub.Model) {

	for i := 0; i < model.NumStrips(); i++ {
		strip := model.Strip(i)

		pts := pose.Project(in, p, strip[:])

		Polygon(img, pts, Orange, Yellow, 4, 2)
	}

	Axes(img, in, p, model.Params().Radius/3)
}

// Telemetry writes the yaw, pitch and distance readout.  Distance and yaw
// lines highlight when the robot is inside the shooting window, and a
// SHOOT banner appears when both are.
func Telemetry(img *gocv.Mat, m pose.Metrics, font Font) {

	inRange := m.Distance >= 90 && m.Distance <= 102
	aligned := m.Yaw >= -10 && m.Yaw <= 10

	yawColor := font.Color
	if aligned {
		yawColor = Yellow
	}

	distColor := font.Color
	if inRange {
		distColor = Yellow
	}

	lh := font.LineHeight

	gocv.PutText(img, fmt.Sprintf("Camera yaw: %.1fdeg", m.Yaw),
		image.Pt(10, lh), font.Face, font.Scale, yawColor, font.Thickness)
	gocv.PutText(img, fmt.Sprintf("Camera pitch: %.1fdeg", m.Pitch),
		image.Pt(10, 2*lh), font.Face, font.Scale, font.Color, font.Thickness)
	gocv.PutText(img, fmt.Sprintf("Horizontal dist: %.1fin", m.Distance),
		image.Pt(10, 3*lh), font.Face, font.Scale, distColor, font.Thickness)

	if inRange && aligned {
		gocv.PutText(img, "SHOOT", image.Pt(160, 120), font.Face, 1, Green, 5)
	}
}

// isFarOutside reports whether the point lies well outside the frame.
func isFarOutside(p geom.Point2, img *gocv.Mat) bool {

	w := float64(img.Cols())
	h := float64(img.Rows())

	return p.X < -w || p.Y < -h || p.X > 2*w || p.Y > 2*h
}
