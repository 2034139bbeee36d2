package worktop

import (
	"errors"
	"fmt"

	"github.com/philipparndt/workdraw/pkg/geometry"
)

// MinSegmentLength is the length in pixels a segment must exceed to become a worktop
const MinSegmentLength = 10

// ErrDegenerateSegment is returned for segments too short to form a worktop
var ErrDegenerateSegment = errors.New("degenerate segment")

// Segment is a straight stretch of a drag between two grid points
type Segment struct {
	Start     geometry.Point
	End       geometry.Point
	Direction geometry.Direction

	IsFirstSegment bool
	// IsPrevious marks a segment followed by another one in the same drag;
	// its far end is extended to cover the corner.
	IsPrevious bool
	// IsCurrent marks a segment whose near end is shortened to meet the
	// previous one, unless it is the first segment.
	IsCurrent bool
}

// Length returns the Euclidean length of the segment as drawn
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

func (s Segment) String() string {
	return fmt.Sprintf("%v->%v %s", s.Start, s.End, s.Direction.Short())
}

// Builder turns segments into worktop rectangles with mitred corners
type Builder struct {
	Width     int
	MinLength float64
}

// NewBuilder creates a builder for worktops of the given width
func NewBuilder(width int) Builder {
	return Builder{Width: width, MinLength: MinSegmentLength}
}

// Adjust returns the centerline after the corner adjustments
func (b Builder) Adjust(seg Segment) (geometry.Point, geometry.Point) {
	half := seg.Direction.Unit().Mul(b.Width / 2)
	start, end := seg.Start, seg.End
	if seg.IsPrevious {
		end = end.Add(half)
	}
	if seg.IsCurrent && !seg.IsFirstSegment {
		start = start.Add(half)
	}
	return start, end
}

// Rect returns the rectangle covering the adjusted centerline
func (b Builder) Rect(start, end geometry.Point, axis geometry.Axis) geometry.Rect {
	half := b.Width / 2
	if axis == geometry.Horizontal {
		return geometry.Rect{
			X:      min(start.X, end.X),
			Y:      start.Y - half,
			Width:  geometry.Abs(end.X - start.X),
			Height: b.Width,
		}
	}
	return geometry.Rect{
		X:      start.X - half,
		Y:      min(start.Y, end.Y),
		Width:  b.Width,
		Height: geometry.Abs(end.Y - start.Y),
	}
}

// Build creates the worktop for a segment. Segments no longer than MinLength,
// or whose shortened start passes their end, yield ErrDegenerateSegment.
func (b Builder) Build(seg Segment) (*Worktop, error) {
	if seg.Length() <= b.MinLength {
		return nil, fmt.Errorf("%w: length %.1f", ErrDegenerateSegment, seg.Length())
	}

	start, end := b.Adjust(seg)
	axis := seg.Direction.Axis()
	travel := end.Sub(start).Along(axis) * geometry.Sign(seg.Direction.Unit().Along(axis))
	if travel <= 0 {
		return nil, fmt.Errorf("%w: adjusted travel %d", ErrDegenerateSegment, travel)
	}

	w := NewWorktop(b.Rect(start, end, axis), seg.Direction)
	w.Start = start
	w.End = end
	w.OriginalStart = seg.Start
	w.OriginalEnd = seg.End
	w.IsFirstSegment = seg.IsFirstSegment
	w.IsLastSegment = !seg.IsPrevious
	return w, nil
}
