package worktop

import (
	"fmt"

	"github.com/philipparndt/workdraw/pkg/geometry"
)

// DefaultWidth is the worktop depth in pixels (600mm)
const DefaultWidth = 120

// Side identifies one of the four edges of a worktop rectangle
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

// Sides lists all sides in detection order
var Sides = [4]Side{Left, Right, Top, Bottom}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

// Axis returns the axis the edge runs along
func (s Side) Axis() geometry.Axis {
	if s == Top || s == Bottom {
		return geometry.Horizontal
	}
	return geometry.Vertical
}

// Outward returns the screen direction pointing away from the worktop
func (s Side) Outward() geometry.Direction {
	switch s {
	case Left:
		return geometry.West
	case Right:
		return geometry.East
	case Top:
		return geometry.North
	}
	return geometry.South
}

// Corner names a rectangle corner, or Middle when a contact lies within an edge
type Corner int

const (
	Middle Corner = iota
	TopLeft
	TopRight
	BottomRight
	BottomLeft
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomRight:
		return "BR"
	case BottomLeft:
		return "BL"
	}
	return "middle"
}

// cornersOf returns the corners at the low and high end of a side
func cornersOf(s Side) (Corner, Corner) {
	switch s {
	case Left:
		return TopLeft, BottomLeft
	case Right:
		return TopRight, BottomRight
	case Top:
		return TopLeft, TopRight
	}
	return BottomLeft, BottomRight
}

// EdgeLabel marks a length-wise edge as facing into or away from the corner
type EdgeLabel int

const (
	Unlabelled EdgeLabel = iota
	Inner
	Outer
)

func (l EdgeLabel) String() string {
	switch l {
	case Inner:
		return "inner"
	case Outer:
		return "outer"
	}
	return "none"
}

// EdgeLabels holds the label of every side, indexed by Side
type EdgeLabels [4]EdgeLabel

// Labels builds edge labels for two sides
func Labels(a Side, la EdgeLabel, b Side, lb EdgeLabel) EdgeLabels {
	var l EdgeLabels
	l[a] = la
	l[b] = lb
	return l
}

// SideOf returns the first side carrying the label
func (l EdgeLabels) SideOf(label EdgeLabel) (Side, bool) {
	for _, s := range Sides {
		if l[s] == label {
			return s, true
		}
	}
	return Left, false
}

// Link is one recorded contact between an edge and an edge of another worktop
type Link struct {
	Peer       *Worktop
	PeerSide   Side
	Segment    geometry.Line
	OwnCorner  Corner
	PeerCorner Corner
	Label      string
}

// Edge is one side of a worktop together with its connection state
type Edge struct {
	Side     Side
	Original geometry.Line
	// Adjusted is trimmed by connection detection to the exposed part of the edge.
	Adjusted geometry.Line

	// The most recent connection recorded on this edge. ConnectedTo is nil when
	// the edge touches nothing.
	ConnectedTo       *Worktop
	ConnectedEdge     Side
	ConnectionSegment geometry.Line
	CornerA           Corner
	CornerB           Corner
	ConnectionLabel   string

	Links []Link
}

// IsConnected reports whether at least one connection was recorded
func (e *Edge) IsConnected() bool {
	return e.ConnectedTo != nil
}

// PeerCount returns the number of distinct worktops this edge touches
func (e *Edge) PeerCount() int {
	seen := make(map[*Worktop]struct{}, len(e.Links))
	for _, l := range e.Links {
		seen[l.Peer] = struct{}{}
	}
	return len(seen)
}

func (e *Edge) reset() {
	e.Adjusted = e.Original
	e.ConnectedTo = nil
	e.ConnectedEdge = Left
	e.ConnectionSegment = geometry.Line{}
	e.CornerA = Middle
	e.CornerB = Middle
	e.ConnectionLabel = ""
	e.Links = nil
}

// Worktop is a finalized, axis-aligned rectangular worktop piece
type Worktop struct {
	Label     string
	Rect      geometry.Rect
	Direction geometry.Direction

	// Start and End are the adjusted centerline, OriginalStart and
	// OriginalEnd the segment as drawn.
	Start         geometry.Point
	End           geometry.Point
	OriginalStart geometry.Point
	OriginalEnd   geometry.Point

	IsFirstSegment bool
	IsLastSegment  bool

	Edges      [4]Edge
	EdgeLabels EdgeLabels
}

// NewWorktop creates a worktop occupying rect and derives its four edges
func NewWorktop(rect geometry.Rect, dir geometry.Direction) *Worktop {
	w := &Worktop{Rect: rect, Direction: dir}
	x, y, wd, ht := rect.X, rect.Y, rect.Width, rect.Height
	lines := [4]geometry.Line{
		Left:   {X1: x, Y1: y, X2: x, Y2: y + ht},
		Right:  {X1: x + wd, Y1: y, X2: x + wd, Y2: y + ht},
		Top:    {X1: x, Y1: y, X2: x + wd, Y2: y},
		Bottom: {X1: x, Y1: y + ht, X2: x + wd, Y2: y + ht},
	}
	for _, s := range Sides {
		w.Edges[s] = Edge{Side: s, Original: lines[s], Adjusted: lines[s]}
	}
	return w
}

// Edge returns the edge on the given side
func (w *Worktop) Edge(s Side) *Edge {
	return &w.Edges[s]
}

// Axis returns the axis the worktop runs along
func (w *Worktop) Axis() geometry.Axis {
	return w.Direction.Axis()
}

// LengthSides returns the two sides running along the worktop
func (w *Worktop) LengthSides() (Side, Side) {
	if w.Axis() == geometry.Horizontal {
		return Top, Bottom
	}
	return Left, Right
}

// EndSides returns the two width-wise sides at the ends of the worktop
func (w *Worktop) EndSides() (Side, Side) {
	if w.Axis() == geometry.Horizontal {
		return Left, Right
	}
	return Top, Bottom
}

// IsLengthSide reports whether s runs along the worktop
func (w *Worktop) IsLengthSide(s Side) bool {
	return s.Axis() == w.Axis()
}

// LengthPx returns the length of the worktop along its direction
func (w *Worktop) LengthPx() int {
	if w.Axis() == geometry.Horizontal {
		return w.Rect.Width
	}
	return w.Rect.Height
}

// CornerPoint returns the coordinate of a rectangle corner. Middle yields the center.
func (w *Worktop) CornerPoint(c Corner) geometry.Point {
	r := w.Rect
	switch c {
	case TopLeft:
		return geometry.Point{X: r.X, Y: r.Y}
	case TopRight:
		return geometry.Point{X: r.X + r.Width, Y: r.Y}
	case BottomRight:
		return geometry.Point{X: r.X + r.Width, Y: r.Y + r.Height}
	case BottomLeft:
		return geometry.Point{X: r.X, Y: r.Y + r.Height}
	}
	return r.Center()
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (c Corner) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (l EdgeLabel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Corners lists every corner value
var Corners = []Corner{Middle, TopLeft, TopRight, BottomRight, BottomLeft}

func (s *Side) UnmarshalText(text []byte) error {
	return parseName(text, Sides[:], s)
}

func (c *Corner) UnmarshalText(text []byte) error {
	return parseName(text, Corners, c)
}

func (l *EdgeLabel) UnmarshalText(text []byte) error {
	return parseName(text, []EdgeLabel{Unlabelled, Inner, Outer}, l)
}

// parseName stores the value whose String() matches text
func parseName[T fmt.Stringer](text []byte, values []T, dst *T) error {
	for _, v := range values {
		if v.String() == string(text) {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("unknown value %q", text)
}
