package geometry

import (
	"fmt"
	"math"
)

// Point is an integer pixel position on the sketch canvas. Y grows downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint creates a new point
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul scales the point by an integer factor
func (p Point) Mul(factor int) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Distance returns the Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Near reports whether both coordinate deltas are at most tolerance
func (p Point) Near(other Point, tolerance int) bool {
	return Abs(p.X-other.X) <= tolerance && Abs(p.Y-other.Y) <= tolerance
}

// Along returns the coordinate on the given axis
func (p Point) Along(axis Axis) int {
	if axis == Horizontal {
		return p.X
	}
	return p.Y
}

// Across returns the coordinate perpendicular to the given axis
func (p Point) Across(axis Axis) int {
	return p.Along(axis.Perpendicular())
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Abs returns the absolute value of an int
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Sign returns -1, 0 or 1
func Sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
