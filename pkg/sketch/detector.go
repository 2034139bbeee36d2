package sketch

import (
	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/worktop"
)

// Detector tracks the direction of a single drag and cuts it into segments
type Detector struct {
	InitialThreshold int
	ChangeThreshold  int

	active       bool
	hasDirection bool
	direction    geometry.Direction
	anchor       geometry.Point
	first        bool
}

// NewDetector creates a detector with the given thresholds
func NewDetector(initial, change int) *Detector {
	return &Detector{InitialThreshold: initial, ChangeThreshold: change}
}

// Start begins a new drag at p
func (d *Detector) Start(p geometry.Point) {
	d.active = true
	d.hasDirection = false
	d.anchor = p
	d.first = true
}

// Active reports whether a drag is in progress
func (d *Detector) Active() bool {
	return d.active
}

// Direction returns the current direction, if one has been detected
func (d *Detector) Direction() (geometry.Direction, bool) {
	return d.direction, d.hasDirection
}

// Anchor returns the start of the segment being drawn
func (d *Detector) Anchor() geometry.Point {
	return d.anchor
}

// Move feeds a pointer position. When the pointer has moved far enough
// across the current direction, the finished segment is returned and a new
// one starts at the corner.
func (d *Detector) Move(p geometry.Point) (worktop.Segment, bool) {
	if !d.active {
		return worktop.Segment{}, false
	}

	if !d.hasDirection {
		dx := geometry.Abs(p.X - d.anchor.X)
		dy := geometry.Abs(p.Y - d.anchor.Y)
		if max(dx, dy) > d.InitialThreshold {
			axis := geometry.Vertical
			if dx > dy {
				axis = geometry.Horizontal
			}
			d.direction = geometry.DirectionOf(axis, p.Sub(d.anchor).Along(axis))
			d.hasDirection = true
		}
		return worktop.Segment{}, false
	}

	axis := d.direction.Axis()
	across := p.Sub(d.anchor).Across(axis)
	if geometry.Abs(across) <= d.ChangeThreshold {
		d.follow(p)
		return worktop.Segment{}, false
	}

	corner := d.project(p)
	seg := d.segment(corner, true)

	d.direction = geometry.DirectionOf(axis.Perpendicular(), across)
	d.anchor = corner
	d.first = false
	return seg, true
}

// Discard tells the detector that the segment returned by Move produced no
// worktop. A discarded first segment leaves the next one first.
func (d *Detector) Discard(seg worktop.Segment) {
	if seg.IsFirstSegment {
		d.first = true
	}
}

// End finishes the drag at p and returns the final segment. Nothing is
// returned when no direction was ever detected.
func (d *Detector) End(p geometry.Point) (worktop.Segment, bool) {
	if !d.active {
		return worktop.Segment{}, false
	}
	d.active = false
	if !d.hasDirection {
		return worktop.Segment{}, false
	}
	return d.segment(d.project(p), false), true
}

// Preview returns the segment that would be emitted if the drag ended at p
func (d *Detector) Preview(p geometry.Point) (worktop.Segment, bool) {
	if !d.active || !d.hasDirection {
		return worktop.Segment{}, false
	}
	return d.segment(d.project(p), false), true
}

// Reset abandons any drag in progress
func (d *Detector) Reset() {
	*d = Detector{InitialThreshold: d.InitialThreshold, ChangeThreshold: d.ChangeThreshold}
}

// project keeps the anchor's perpendicular coordinate and p's parallel one
func (d *Detector) project(p geometry.Point) geometry.Point {
	if d.direction.Axis() == geometry.Horizontal {
		return geometry.Point{X: p.X, Y: d.anchor.Y}
	}
	return geometry.Point{X: d.anchor.X, Y: p.Y}
}

// follow flips the compass sign when the pointer crosses back over the anchor
func (d *Detector) follow(p geometry.Point) {
	axis := d.direction.Axis()
	if along := p.Sub(d.anchor).Along(axis); along != 0 {
		d.direction = geometry.DirectionOf(axis, along)
	}
}

func (d *Detector) segment(end geometry.Point, previous bool) worktop.Segment {
	dir := d.direction
	axis := dir.Axis()
	if along := end.Sub(d.anchor).Along(axis); along != 0 {
		dir = geometry.DirectionOf(axis, along)
	}
	return worktop.Segment{
		Start:          d.anchor,
		End:            end,
		Direction:      dir,
		IsFirstSegment: d.first,
		IsPrevious:     previous,
		IsCurrent:      true,
	}
}
