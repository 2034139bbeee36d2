package geometry

import "math"

// DefaultGridSize is the spacing of the background grid in pixels
const DefaultGridSize = 20

// Snapper maps raw pointer coordinates onto the drawing grid
type Snapper struct {
	GridSize int
	Enabled  bool
}

// NewSnapper creates an enabled snapper for the given grid size
func NewSnapper(gridSize int) Snapper {
	return Snapper{GridSize: gridSize, Enabled: true}
}

// Snap rounds v to the nearest multiple of the grid size, halves rounding up.
// When snapping is disabled, or the grid size is not positive, v is rounded to
// the nearest whole pixel.
func (s Snapper) Snap(v float64) int {
	if !s.Enabled || s.GridSize <= 0 {
		return int(math.Floor(v + 0.5))
	}
	g := float64(s.GridSize)
	return int(math.Floor(v/g+0.5)) * s.GridSize
}

// SnapPoint snaps both coordinates
func (s Snapper) SnapPoint(x, y float64) Point {
	return Point{X: s.Snap(x), Y: s.Snap(y)}
}
