package worktop

import (
	"github.com/philipparndt/workdraw/pkg/geometry"
)

const (
	// MatchTolerance is the distance in pixels within which two edges or
	// corners are considered coincident.
	MatchTolerance = 1
	// PointMergeDistance merges connection points closer than this.
	PointMergeDistance = 2
)

// ConnectionPoint is a labelled corner where worktops meet
type ConnectionPoint struct {
	Label string         `json:"label"`
	Point geometry.Point `json:"point"`
}

// contact describes how two edges touch
type contact struct {
	segment geometry.Line
	cornerA Corner
	cornerB Corner
}

// ConnectionDetector finds coincident edges between worktops
type ConnectionDetector struct {
	Tolerance int
	MergeDist int
}

// NewConnectionDetector creates a detector with the default tolerances
func NewConnectionDetector() ConnectionDetector {
	return ConnectionDetector{Tolerance: MatchTolerance, MergeDist: PointMergeDistance}
}

// Detect resets the connection state of every worktop and records all edge
// contacts between every pair. Adjusted edges are trimmed to their exposed
// part as contacts are found. The returned connection points are labelled in
// discovery order.
func (d ConnectionDetector) Detect(worktops []*Worktop) []ConnectionPoint {
	for _, w := range worktops {
		for i := range w.Edges {
			w.Edges[i].reset()
		}
	}

	var labels Labeler
	points := make([]ConnectionPoint, 0)

	for i := 0; i < len(worktops); i++ {
		for j := i + 1; j < len(worktops); j++ {
			a, b := worktops[i], worktops[j]
			for _, sa := range Sides {
				for _, sb := range Sides {
					ea, eb := a.Edge(sa), b.Edge(sb)
					c, ok := d.touch(ea, eb)
					if !ok {
						continue
					}

					label := ""
					if c.cornerA != Middle || c.cornerB != Middle {
						p := d.contactPoint(a, b, c)
						label, points = d.pointLabel(p, points, &labels)
					}

					record(ea, b, sb, c.segment, c.cornerA, c.cornerB, label)
					record(eb, a, sa, c.segment, c.cornerB, c.cornerA, label)

					d.trim(ea, c.segment)
					d.trim(eb, c.segment)
				}
			}
		}
	}

	return points
}

func (d ConnectionDetector) touch(ea, eb *Edge) (contact, bool) {
	ha, hb := ea.Side.Axis() == geometry.Horizontal, eb.Side.Axis() == geometry.Horizontal
	switch {
	case ha == hb:
		return d.parallel(ea, eb)
	case ha:
		return d.perpendicular(ea, eb)
	default:
		c, ok := d.perpendicular(eb, ea)
		c.cornerA, c.cornerB = c.cornerB, c.cornerA
		return c, ok
	}
}

// parallel checks two edges on the same axis for an overlapping stretch
func (d ConnectionDetector) parallel(ea, eb *Edge) (contact, bool) {
	if geometry.Abs(ea.offset()-eb.offset()) > d.Tolerance {
		return contact{}, false
	}

	aLo, aHi := ea.span()
	bLo, bHi := eb.span()
	if aHi < bLo || bHi < aLo {
		return contact{}, false
	}

	lo, hi := max(aLo, bLo), min(aHi, bHi)
	var seg geometry.Line
	if ea.Side.Axis() == geometry.Horizontal {
		seg = geometry.Line{X1: lo, Y1: ea.offset(), X2: hi, Y2: ea.offset()}
	} else {
		seg = geometry.Line{X1: ea.offset(), Y1: lo, X2: ea.offset(), Y2: hi}
	}

	return contact{
		segment: seg,
		cornerA: d.overlapCorner(ea, lo, hi),
		cornerB: d.overlapCorner(eb, lo, hi),
	}, true
}

// perpendicular checks a horizontal and a vertical edge for a crossing point.
// cornerA belongs to h, cornerB to v.
func (d ConnectionDetector) perpendicular(h, v *Edge) (contact, bool) {
	hLo, hHi := h.span()
	vLo, vHi := v.span()
	x, y := v.offset(), h.offset()
	if x < hLo-d.Tolerance || x > hHi+d.Tolerance {
		return contact{}, false
	}
	if y < vLo-d.Tolerance || y > vHi+d.Tolerance {
		return contact{}, false
	}

	p := geometry.Point{X: x, Y: y}
	return contact{
		segment: geometry.NewLine(p, p),
		cornerA: d.pointCorner(h, p),
		cornerB: d.pointCorner(v, p),
	}, true
}

// overlapCorner reports which end of the edge the overlap [lo, hi] touches.
// An overlap touching both ends reports the high corner.
func (d ConnectionDetector) overlapCorner(e *Edge, lo, hi int) Corner {
	eLo, eHi := e.span()
	low, high := cornersOf(e.Side)
	switch {
	case geometry.Abs(hi-eHi) <= d.Tolerance:
		return high
	case geometry.Abs(lo-eLo) <= d.Tolerance:
		return low
	}
	return Middle
}

func (d ConnectionDetector) pointCorner(e *Edge, p geometry.Point) Corner {
	eLo, eHi := e.span()
	at := p.Along(e.Side.Axis())
	low, high := cornersOf(e.Side)
	switch {
	case geometry.Abs(at-eLo) <= d.Tolerance:
		return low
	case geometry.Abs(at-eHi) <= d.Tolerance:
		return high
	}
	return Middle
}

// contactPoint is the single crossing point, or else the coordinate of the
// participating corner, preferring the first worktop's.
func (d ConnectionDetector) contactPoint(a, b *Worktop, c contact) geometry.Point {
	if c.segment.Start() == c.segment.End() {
		return c.segment.Start()
	}
	if c.cornerA != Middle {
		return a.CornerPoint(c.cornerA)
	}
	return b.CornerPoint(c.cornerB)
}

func (d ConnectionDetector) pointLabel(p geometry.Point, points []ConnectionPoint, labels *Labeler) (string, []ConnectionPoint) {
	for _, existing := range points {
		dx, dy := geometry.Abs(p.X-existing.Point.X), geometry.Abs(p.Y-existing.Point.Y)
		if dx < d.MergeDist && dy < d.MergeDist {
			return existing.Label, points
		}
	}
	cp := ConnectionPoint{Label: labels.Next(), Point: p}
	return cp.Label, append(points, cp)
}

// trim cuts the overlapped stretch off whichever end of the adjusted edge it
// touches. Point contacts leave the edge unchanged.
func (d ConnectionDetector) trim(e *Edge, seg geometry.Line) {
	lo, hi := seg.Span()
	if lo == hi {
		return
	}

	adj := &e.Adjusted
	first, second := &adj.X1, &adj.X2
	if e.Side.Axis() == geometry.Vertical {
		first, second = &adj.Y1, &adj.Y2
	}
	if *first > *second {
		first, second = second, first
	}

	switch {
	case geometry.Abs(*first-lo) <= d.Tolerance:
		*first = min(hi, *second)
	case geometry.Abs(*second-hi) <= d.Tolerance:
		*second = max(lo, *first)
	}
}

func record(e *Edge, peer *Worktop, peerSide Side, seg geometry.Line, own, other Corner, label string) {
	e.ConnectedTo = peer
	e.ConnectedEdge = peerSide
	e.ConnectionSegment = seg
	e.CornerA = own
	e.CornerB = other
	e.ConnectionLabel = label
	e.Links = append(e.Links, Link{
		Peer:       peer,
		PeerSide:   peerSide,
		Segment:    seg,
		OwnCorner:  own,
		PeerCorner: other,
		Label:      label,
	})
}

// span returns the sorted interval of the adjusted edge along its side's axis
func (e *Edge) span() (int, int) {
	a, b := e.Adjusted.X1, e.Adjusted.X2
	if e.Side.Axis() == geometry.Vertical {
		a, b = e.Adjusted.Y1, e.Adjusted.Y2
	}
	if a > b {
		a, b = b, a
	}
	return a, b
}

// offset returns the coordinate of the edge perpendicular to its axis
func (e *Edge) offset() int {
	if e.Side.Axis() == geometry.Horizontal {
		return e.Adjusted.Y1
	}
	return e.Adjusted.X1
}

// ExposedLength returns the length of the edge left uncovered by connections
func (e *Edge) ExposedLength() int {
	lo, hi := e.span()
	return hi - lo
}
