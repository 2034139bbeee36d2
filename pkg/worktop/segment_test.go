package worktop

import (
	"errors"
	"testing"

	"github.com/philipparndt/workdraw/pkg/geometry"
)

func TestBuildFirstSegmentUnadjusted(t *testing.T) {
	b := NewBuilder(DefaultWidth)
	w, err := b.Build(Segment{
		Start:          geometry.NewPoint(100, 100),
		End:            geometry.NewPoint(300, 100),
		Direction:      geometry.East,
		IsFirstSegment: true,
		IsCurrent:      true,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := geometry.Rect{X: 100, Y: 40, Width: 200, Height: 120}
	if w.Rect != expected {
		t.Errorf("Build failed: expected %v, got %v", expected, w.Rect)
	}
	if !w.IsFirstSegment || !w.IsLastSegment {
		t.Errorf("Build failed: expected first and last flags, got %v/%v", w.IsFirstSegment, w.IsLastSegment)
	}
}

func TestBuildPreviousExtendsEnd(t *testing.T) {
	b := NewBuilder(DefaultWidth)
	w, err := b.Build(Segment{
		Start:          geometry.NewPoint(100, 100),
		End:            geometry.NewPoint(300, 100),
		Direction:      geometry.East,
		IsFirstSegment: true,
		IsPrevious:     true,
		IsCurrent:      true,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := geometry.Rect{X: 100, Y: 40, Width: 260, Height: 120}
	if w.Rect != expected {
		t.Errorf("Build failed: expected %v, got %v", expected, w.Rect)
	}
	if w.End != geometry.NewPoint(360, 100) {
		t.Errorf("Build failed: expected adjusted end (360, 100), got %v", w.End)
	}
	if w.OriginalEnd != geometry.NewPoint(300, 100) {
		t.Errorf("Build failed: expected original end (300, 100), got %v", w.OriginalEnd)
	}
}

func TestBuildCurrentShortensStart(t *testing.T) {
	b := NewBuilder(DefaultWidth)
	w, err := b.Build(Segment{
		Start:     geometry.NewPoint(300, 100),
		End:       geometry.NewPoint(300, 300),
		Direction: geometry.South,
		IsCurrent: true,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := geometry.Rect{X: 240, Y: 160, Width: 120, Height: 140}
	if w.Rect != expected {
		t.Errorf("Build failed: expected %v, got %v", expected, w.Rect)
	}
}

func TestBuildWestAndNorth(t *testing.T) {
	b := NewBuilder(DefaultWidth)

	west, err := b.Build(Segment{
		Start:      geometry.NewPoint(400, 200),
		End:        geometry.NewPoint(200, 200),
		Direction:  geometry.West,
		IsPrevious: true,
		IsCurrent:  true,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// start shortened to 340, end extended to 140
	expected := geometry.Rect{X: 140, Y: 140, Width: 200, Height: 120}
	if west.Rect != expected {
		t.Errorf("Build west failed: expected %v, got %v", expected, west.Rect)
	}

	north, err := b.Build(Segment{
		Start:          geometry.NewPoint(200, 400),
		End:            geometry.NewPoint(200, 200),
		Direction:      geometry.North,
		IsFirstSegment: true,
		IsCurrent:      true,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	expected = geometry.Rect{X: 140, Y: 200, Width: 120, Height: 200}
	if north.Rect != expected {
		t.Errorf("Build north failed: expected %v, got %v", expected, north.Rect)
	}
}

func TestBuildPerpendicularDimensionIsWidth(t *testing.T) {
	for _, width := range []int{60, 120, 200} {
		b := NewBuilder(width)
		for _, d := range geometry.Directions {
			start := geometry.NewPoint(1000, 1000)
			end := start.Add(d.Unit().Mul(400))
			for _, prev := range []bool{false, true} {
				for _, first := range []bool{false, true} {
					w, err := b.Build(Segment{Start: start, End: end, Direction: d, IsPrevious: prev, IsCurrent: true, IsFirstSegment: first})
					if err != nil {
						t.Fatalf("Build failed: %v", err)
					}
					perp := w.Rect.Height
					if d.Axis() == geometry.Vertical {
						perp = w.Rect.Width
					}
					if perp != width {
						t.Errorf("Build failed for %v width %d: perpendicular dimension %d", d, width, perp)
					}
				}
			}
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	b := NewBuilder(DefaultWidth)

	_, err := b.Build(Segment{
		Start:     geometry.NewPoint(100, 100),
		End:       geometry.NewPoint(110, 100),
		Direction: geometry.East,
		IsCurrent: true,
	})
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Errorf("Build failed: expected ErrDegenerateSegment for 10px segment, got %v", err)
	}

	// 40px after a turn is consumed by the 60px shortening
	_, err = b.Build(Segment{
		Start:     geometry.NewPoint(100, 100),
		End:       geometry.NewPoint(100, 140),
		Direction: geometry.South,
		IsCurrent: true,
	})
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Errorf("Build failed: expected ErrDegenerateSegment for consumed segment, got %v", err)
	}
}

func TestEdgesFromRect(t *testing.T) {
	w := NewWorktop(geometry.Rect{X: 10, Y: 20, Width: 100, Height: 50}, geometry.East)

	tests := []struct {
		side Side
		want geometry.Line
	}{
		{Left, geometry.Line{X1: 10, Y1: 20, X2: 10, Y2: 70}},
		{Right, geometry.Line{X1: 110, Y1: 20, X2: 110, Y2: 70}},
		{Top, geometry.Line{X1: 10, Y1: 20, X2: 110, Y2: 20}},
		{Bottom, geometry.Line{X1: 10, Y1: 70, X2: 110, Y2: 70}},
	}

	for _, tt := range tests {
		e := w.Edge(tt.side)
		if e.Original != tt.want || e.Adjusted != tt.want {
			t.Errorf("Edge %v failed: expected %v, got %v / %v", tt.side, tt.want, e.Original, e.Adjusted)
		}
	}
}

func TestLabeler(t *testing.T) {
	var l Labeler
	var got []string
	for i := 0; i < 28; i++ {
		got = append(got, l.Next())
	}

	expected := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB"}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("Next failed at %d: expected %s, got %s", i, want, got[i])
		}
	}

	l.Reset()
	if l.Next() != "A" {
		t.Error("Reset failed: expected sequence to restart at A")
	}
}

func TestLabelForWraps(t *testing.T) {
	tests := map[int]string{51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for n, want := range tests {
		if got := LabelFor(n); got != want {
			t.Errorf("LabelFor(%d) failed: expected %s, got %s", n, want, got)
		}
	}
}
