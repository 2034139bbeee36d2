package geometry

// Bounds is a growable axis-aligned bounding box
type Bounds struct {
	Min   Point
	Max   Point
	valid bool
}

// NewBounds creates a bounding box around a single point
func NewBounds(p Point) Bounds {
	return Bounds{Min: p, Max: p, valid: true}
}

// Extend grows the bounding box to include the given point
func (b *Bounds) Extend(p Point) {
	if !b.valid {
		*b = NewBounds(p)
		return
	}
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
}

// ExtendRect grows the bounding box to include the rectangle
func (b *Bounds) ExtendRect(r Rect) {
	b.Extend(r.Min())
	b.Extend(r.Max())
}

// IsEmpty reports whether nothing has been added yet
func (b Bounds) IsEmpty() bool {
	return !b.valid
}

// Size returns the width and height of the bounding box
func (b Bounds) Size() (int, int) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}

// Center returns the center of the bounding box
func (b Bounds) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Rect converts the bounds into a rectangle
func (b Bounds) Rect() Rect {
	w, h := b.Size()
	return Rect{X: b.Min.X, Y: b.Min.Y, Width: w, Height: h}
}
