package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/worktop"
)

const (
	// MillimetersPerPixel is the fixed drawing scale
	MillimetersPerPixel = 5
	// WorktopWidthMm is the depth of every worktop
	WorktopWidthMm = worktop.DefaultWidth * MillimetersPerPixel
	// LabelOffset is the distance in pixels between an edge and its measurement label
	LabelOffset = 25
	// FaceLabelOffset places exterior face labels outside the edge labels
	FaceLabelOffset = 45
)

// Counting strategies for connections on an inner edge
const (
	CountDistinct = "distinct"
	CountLegacy   = "legacy"
)

// EdgeMeasurement is the display measurement of one worktop edge
type EdgeMeasurement struct {
	Side        worktop.Side      `json:"side"`
	Label       worktop.EdgeLabel `json:"label"`
	LengthMm    int               `json:"lengthMm"`
	ExposedPx   int               `json:"exposedPx"`
	Connections int               `json:"connections"`
	Anchor      geometry.Point    `json:"anchor"`
	Rotation    int               `json:"rotation"`
}

// Text returns the label shown next to the edge
func (m EdgeMeasurement) Text() string {
	return FormatMillimeters(m.LengthMm)
}

// MeasurementResult contains the measurements of a single worktop
type MeasurementResult struct {
	Label     string             `json:"label"`
	Direction geometry.Direction `json:"direction"`
	LengthPx  int                `json:"lengthPx"`
	BaseMm    int                `json:"baseMm"`
	OuterMm   int                `json:"outerMm"`
	InnerMm   int                `json:"innerMm"`
	WidthMm   int                `json:"widthMm"`
	Edges     [4]EdgeMeasurement `json:"edges"`
}

// Calculator converts worktop geometry into millimetre measurements
type Calculator struct {
	Counting string
}

// NewCalculator creates a calculator for the given counting strategy
func NewCalculator(counting string) (Calculator, error) {
	switch counting {
	case "":
		return Calculator{Counting: CountDistinct}, nil
	case CountDistinct, CountLegacy:
		return Calculator{Counting: counting}, nil
	}
	return Calculator{}, fmt.Errorf("unknown connection counting %q", counting)
}

// PixelsToMm converts a pixel length to whole millimetres
func PixelsToMm(px float64) int {
	return int(math.Round(px * MillimetersPerPixel))
}

// BaseLengthMm returns the worktop's own length along its direction
func (c Calculator) BaseLengthMm(w *worktop.Worktop) int {
	return PixelsToMm(float64(w.LengthPx()))
}

// OuterLengthMm is the base length, plus one worktop width for every
// worktop that continues a drawing.
func (c Calculator) OuterLengthMm(w *worktop.Worktop) int {
	length := c.BaseLengthMm(w)
	if !w.IsFirstSegment {
		length += WorktopWidthMm
	}
	return length
}

// InnerLengthMm subtracts one worktop width per connection on the side
func (c Calculator) InnerLengthMm(w *worktop.Worktop, side worktop.Side) int {
	return max(0, c.OuterLengthMm(w)-WorktopWidthMm*c.Connections(w, side))
}

// Connections returns the number of connections counted against a side
func (c Calculator) Connections(w *worktop.Worktop, side worktop.Side) int {
	if c.Counting != CountLegacy {
		return w.Edge(side).PeerCount()
	}

	connected := 0
	for _, s := range worktop.Sides {
		if w.Edge(s).IsConnected() {
			connected++
		}
	}
	count := (connected + 1) / 2
	if w.IsLastSegment && count > 1 {
		count--
	}
	return count
}

// EdgeLengthMm returns the length displayed for a side: width sides show the
// worktop width, inner sides the inner length and all other length sides the
// outer length.
func (c Calculator) EdgeLengthMm(w *worktop.Worktop, side worktop.Side) int {
	if !w.IsLengthSide(side) {
		return WorktopWidthMm
	}
	if w.EdgeLabels[side] == worktop.Inner {
		return c.InnerLengthMm(w, side)
	}
	return c.OuterLengthMm(w)
}

// Measure computes all measurements of a worktop
func (c Calculator) Measure(w *worktop.Worktop) *MeasurementResult {
	result := &MeasurementResult{
		Label:     w.Label,
		Direction: w.Direction,
		LengthPx:  w.LengthPx(),
		BaseMm:    c.BaseLengthMm(w),
		OuterMm:   c.OuterLengthMm(w),
		WidthMm:   WorktopWidthMm,
	}
	result.InnerMm = result.OuterMm

	for _, s := range worktop.Sides {
		e := w.Edge(s)
		anchor, rotation := LabelPlacement(e.Original, s)
		m := EdgeMeasurement{
			Side:        s,
			Label:       w.EdgeLabels[s],
			LengthMm:    c.EdgeLengthMm(w, s),
			ExposedPx:   e.ExposedLength(),
			Connections: c.Connections(w, s),
			Anchor:      anchor,
			Rotation:    rotation,
		}
		if m.Label == worktop.Inner {
			result.InnerMm = m.LengthMm
		}
		result.Edges[s] = m
	}

	return result
}

// LabelPlacement returns the anchor outside the center of an edge and the
// text rotation in degrees.
func LabelPlacement(edge geometry.Line, side worktop.Side) (geometry.Point, int) {
	return placeOutside(edge, side, LabelOffset)
}

// FacePlacement is LabelPlacement for exterior faces
func FacePlacement(face worktop.ExteriorFace) (geometry.Point, int) {
	return placeOutside(face.Line(), face.Side, FaceLabelOffset)
}

// FaceLengthMm returns the length of an exterior face in millimeters
func FaceLengthMm(face worktop.ExteriorFace) int {
	return PixelsToMm(float64(face.LengthPx))
}

func placeOutside(edge geometry.Line, side worktop.Side, offset int) (geometry.Point, int) {
	anchor := edge.Midpoint().Add(side.Outward().Unit().Mul(offset))
	if side == worktop.Left || side == worktop.Right {
		return anchor, 90
	}
	return anchor, 0
}

// FormatMillimeters formats a length like "1300mm"
func FormatMillimeters(mm int) string {
	return fmt.Sprintf("%dmm", mm)
}

// FormatSummary formats a worktop list entry like "A: 1300mm x 600mm"
func FormatSummary(label string, lengthMm int) string {
	return fmt.Sprintf("%s: %dmm x %dmm", label, lengthMm, WorktopWidthMm)
}
