package geom

import "math"

// Point2 is a 2D point in image pixel coordinates or normalized camera
// coordinates, depending on context.
type Point2 struct {
	X, Y float64
}

// Point3 is a 3D point in target world coordinates.
type Point3 struct {
	X, Y, Z float64
}

// Dist returns the euclidean distance between two 2D points.
func Dist(a, b Point2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Norm3 returns the euclidean length of the vector p.
func Norm3(p Point3) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Sub3 returns a - b.
func Sub3(a, b Point3) Point3 {
	return Point3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b Point3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross3 returns the cross product of a and b.
func Cross3(a, b Point3) Point3 {
	return Point3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
