package geometry

import "fmt"

// Line is an axis-aligned line between two points
type Line struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewLine creates a line from two points
func NewLine(a, b Point) Line {
	return Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// Start returns the first endpoint
func (l Line) Start() Point {
	return Point{X: l.X1, Y: l.Y1}
}

// End returns the second endpoint
func (l Line) End() Point {
	return Point{X: l.X2, Y: l.Y2}
}

// IsHorizontal reports whether both endpoints share a Y coordinate
func (l Line) IsHorizontal() bool {
	return l.Y1 == l.Y2
}

// Axis returns the axis the line runs along
func (l Line) Axis() Axis {
	if l.IsHorizontal() {
		return Horizontal
	}
	return Vertical
}

// Span returns the sorted interval the line covers along its own axis
func (l Line) Span() (lo, hi int) {
	a, b := l.X1, l.X2
	if !l.IsHorizontal() {
		a, b = l.Y1, l.Y2
	}
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Offset returns the coordinate perpendicular to the line's axis
func (l Line) Offset() int {
	if l.IsHorizontal() {
		return l.Y1
	}
	return l.X1
}

// Length returns the length of the line along its axis
func (l Line) Length() int {
	lo, hi := l.Span()
	return hi - lo
}

// Midpoint returns the (integer) center of the line
func (l Line) Midpoint() Point {
	return Point{X: (l.X1 + l.X2) / 2, Y: (l.Y1 + l.Y2) / 2}
}

func (l Line) String() string {
	return fmt.Sprintf("(%d, %d)-(%d, %d)", l.X1, l.Y1, l.X2, l.Y2)
}
