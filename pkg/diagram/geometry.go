package diagram

// Point is a 2D coordinate in canvas units.
type Point struct {
	X float64
	Y float64
}

// Geometry is the position and size computed for a node by a layout engine.
// Layout produces a parallel map of these keyed by node id; the Diagram
// itself is never mutated.
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the center point of the geometry.
func (g Geometry) Center() Point {
	return Point{X: g.X + g.Width/2, Y: g.Y + g.Height/2}
}
