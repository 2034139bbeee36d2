package sketch

import (
	"github.com/philipparndt/workdraw/pkg/analysis"
	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/worktop"
)

// WorktopShape is a worktop rectangle ready for drawing
type WorktopShape struct {
	Label      string             `json:"label"`
	Rect       geometry.Rect      `json:"rect"`
	Direction  geometry.Direction `json:"direction"`
	EdgeLabels worktop.EdgeLabels `json:"edgeLabels"`
}

// MeasurementLabel is a length annotation placed next to an edge
type MeasurementLabel struct {
	Worktop  string            `json:"worktop"`
	Side     worktop.Side      `json:"side"`
	Kind     worktop.EdgeLabel `json:"kind"`
	Text     string            `json:"text"`
	Anchor   geometry.Point    `json:"anchor"`
	Rotation int               `json:"rotation"`
}

// RunLine is the dimension line of a straight run
type RunLine struct {
	Label string         `json:"label"`
	Start geometry.Point `json:"start"`
	End   geometry.Point `json:"end"`
	Text  string         `json:"text"`
}

// FaceLine is an exterior face with its total length
type FaceLine struct {
	Label      string         `json:"label"`
	Side       worktop.Side   `json:"side"`
	Start      geometry.Point `json:"start"`
	End        geometry.Point `json:"end"`
	Text       string         `json:"text"`
	Anchor     geometry.Point `json:"anchor"`
	Rotation   int            `json:"rotation"`
	Continuous bool           `json:"continuous"`
}

// FaceDimensionOffset is the distance in pixels between a face and its
// dimension line
const FaceDimensionOffset = 35

// DimensionLine returns the face shifted outwards to where its dimension
// line is drawn
func (f FaceLine) DimensionLine() (geometry.Point, geometry.Point) {
	shift := f.Side.Outward().Unit().Mul(FaceDimensionOffset)
	return f.Start.Add(shift), f.End.Add(shift)
}

// Scene is everything a renderer needs to draw the current sketch
type Scene struct {
	GridSize     int                       `json:"gridSize"`
	Worktops     []WorktopShape            `json:"worktops"`
	Measurements []MeasurementLabel        `json:"measurements"`
	Markers      []worktop.ConnectionPoint `json:"markers"`
	Runs         []RunLine                 `json:"runs"`
	Faces        []FaceLine                `json:"faces"`
	// Preview is the segment being drawn, nil when not dragging
	Preview *geometry.Rect `json:"preview,omitempty"`
	// Click is the position of the last click that drew nothing
	Click *geometry.Point `json:"click,omitempty"`
}

// Bounds returns the extent of everything in the scene
func (s Scene) Bounds() geometry.Bounds {
	var b geometry.Bounds
	for _, w := range s.Worktops {
		b.ExtendRect(w.Rect)
	}
	for _, m := range s.Measurements {
		b.Extend(m.Anchor)
	}
	for _, f := range s.Faces {
		if f.Continuous {
			b.Extend(f.Anchor)
		}
	}
	if s.Preview != nil {
		b.ExtendRect(*s.Preview)
	}
	if s.Click != nil {
		b.Extend(*s.Click)
	}
	return b
}

// WorktopSummary is a worktop list entry
type WorktopSummary struct {
	Label     string             `json:"label"`
	Direction geometry.Direction `json:"direction"`
	LengthMm  int                `json:"lengthMm"`
	WidthMm   int                `json:"widthMm"`
}

func (s WorktopSummary) String() string {
	return analysis.FormatSummary(s.Label, s.LengthMm)
}

// ConnectionSummary is a connection list entry
type ConnectionSummary struct {
	WorktopA string         `json:"worktopA"`
	CornerA  worktop.Corner `json:"cornerA"`
	WorktopB string         `json:"worktopB"`
	CornerB  worktop.Corner `json:"cornerB"`
	Label    string         `json:"label"`
}

func (c ConnectionSummary) String() string {
	s := c.WorktopA + " " + c.CornerA.String() + " - " + c.WorktopB + " " + c.CornerB.String()
	if c.Label != "" {
		s += " (" + c.Label + ")"
	}
	return s
}

// Renderer draws scenes
type Renderer interface {
	Render(scene Scene)
}

// ListSink shows the worktop and connection lists
type ListSink interface {
	UpdateLists(worktops []WorktopSummary, connections []ConnectionSummary)
}

func buildScene(s *Session) Scene {
	scene := Scene{
		GridSize:     s.cfg.GridSize,
		Worktops:     make([]WorktopShape, 0, len(s.worktops)),
		Measurements: make([]MeasurementLabel, 0, 4*len(s.worktops)),
		Markers:      append([]worktop.ConnectionPoint(nil), s.points...),
		Runs:         make([]RunLine, 0, len(s.runs)),
		Faces:        make([]FaceLine, 0, len(s.faces)),
	}

	for _, w := range s.worktops {
		scene.Worktops = append(scene.Worktops, WorktopShape{
			Label:      w.Label,
			Rect:       w.Rect,
			Direction:  w.Direction,
			EdgeLabels: w.EdgeLabels,
		})

		m := s.calc.Measure(w)
		for _, e := range m.Edges {
			scene.Measurements = append(scene.Measurements, MeasurementLabel{
				Worktop:  w.Label,
				Side:     e.Side,
				Kind:     e.Label,
				Text:     e.Text(),
				Anchor:   e.Anchor,
				Rotation: e.Rotation,
			})
		}
	}

	for _, r := range s.runs {
		scene.Runs = append(scene.Runs, RunLine{
			Label: r.Label(),
			Start: r.Start,
			End:   r.End,
			Text:  analysis.FormatMillimeters(analysis.PixelsToMm(float64(r.LengthPx))),
		})
	}

	for _, f := range s.faces {
		anchor, rotation := analysis.FacePlacement(f)
		scene.Faces = append(scene.Faces, FaceLine{
			Label:      f.Label(),
			Side:       f.Side,
			Start:      f.Start,
			End:        f.End,
			Text:       analysis.FormatMillimeters(analysis.FaceLengthMm(f)),
			Anchor:     anchor,
			Rotation:   rotation,
			Continuous: f.Continuous(),
		})
	}

	if seg, ok := s.detector.Preview(s.cursor); ok {
		start, end := s.builder.Adjust(seg)
		rect := s.builder.Rect(start, end, seg.Direction.Axis())
		scene.Preview = &rect
	}
	if s.click != nil {
		p := *s.click
		scene.Click = &p
	}

	return scene
}
