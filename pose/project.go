package pose

import (
	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/geom"
)

// Project maps world points into image pixel coordinates under the given
// pose and camera intrinsics, applying lens distortion.  Points at or
// behind the camera plane project through the pinhole equations unchanged;
// callers filter degenerate projections if they care.
func Project(in *calib.Intrinsics, p Pose, world []geom.Point3) []geom.Point2 {

	out := make([]geom.Point2, len(world))

	for i, w := range world {
		c := p.Apply(w)

		z := c.Z
		if z == 0 {
			z = 1e-12
		}

		out[i] = in.DistortToPixel(geom.Point2{X: c.X / z, Y: c.Y / z})
	}

	return out
}
