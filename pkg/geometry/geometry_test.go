package geometry

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	p1 := NewPoint(0, 0)
	p2 := NewPoint(3, 4)
	distance := p1.Distance(p2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestPointNear(t *testing.T) {
	p := NewPoint(100, 100)
	if !p.Near(NewPoint(101, 99), 1) {
		t.Error("Near failed: expected points within 1px to be near")
	}
	if p.Near(NewPoint(102, 100), 1) {
		t.Error("Near failed: expected points 2px apart not to be near")
	}
}

func TestDirectionAxis(t *testing.T) {
	tests := []struct {
		dir  Direction
		axis Axis
	}{
		{North, Vertical},
		{East, Horizontal},
		{South, Vertical},
		{West, Horizontal},
	}

	for _, tt := range tests {
		if got := tt.dir.Axis(); got != tt.axis {
			t.Errorf("Axis failed for %v: expected %v, got %v", tt.dir, tt.axis, got)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite failed: %v is not its own double opposite", d)
		}
		if d.Opposite().Axis() != d.Axis() {
			t.Errorf("Opposite failed: %v changed axis", d)
		}
	}
	if North.Opposite() != South || East.Opposite() != West {
		t.Error("Opposite failed: unexpected pairing")
	}
}

func TestDirectionUnitScreenSpace(t *testing.T) {
	if North.Unit() != (Point{Y: -1}) {
		t.Errorf("Unit failed: expected north to point up, got %v", North.Unit())
	}
	if South.Unit() != (Point{Y: 1}) {
		t.Errorf("Unit failed: expected south to point down, got %v", South.Unit())
	}
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		axis  Axis
		delta int
		want  Direction
	}{
		{Horizontal, 10, East},
		{Horizontal, -10, West},
		{Vertical, 10, South},
		{Vertical, -10, North},
	}

	for _, tt := range tests {
		if got := DirectionOf(tt.axis, tt.delta); got != tt.want {
			t.Errorf("DirectionOf(%v, %d) failed: expected %v, got %v", tt.axis, tt.delta, tt.want, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) failed: expected %v, got %v", d.String(), d, got)
		}
		got, ok = ParseDirection(d.Short())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) failed: expected %v, got %v", d.Short(), d, got)
		}
	}
	if _, ok := ParseDirection("up"); ok {
		t.Error("ParseDirection failed: expected unknown name to be rejected")
	}
}

func TestLineSpan(t *testing.T) {
	l := Line{X1: 300, Y1: 40, X2: 100, Y2: 40}
	lo, hi := l.Span()
	if lo != 100 || hi != 300 {
		t.Errorf("Span failed: expected [100, 300], got [%d, %d]", lo, hi)
	}
	if !l.IsHorizontal() || l.Offset() != 40 || l.Length() != 200 {
		t.Errorf("Line failed: unexpected axis, offset or length for %v", l)
	}

	v := Line{X1: 240, Y1: 160, X2: 240, Y2: 300}
	if v.IsHorizontal() || v.Offset() != 240 || v.Length() != 140 {
		t.Errorf("Line failed: unexpected axis, offset or length for %v", v)
	}
}

func TestBoundsExtend(t *testing.T) {
	var b Bounds
	if !b.IsEmpty() {
		t.Error("Bounds failed: zero value should be empty")
	}

	b.ExtendRect(Rect{X: 100, Y: 40, Width: 260, Height: 120})
	b.ExtendRect(Rect{X: 240, Y: 160, Width: 120, Height: 140})

	expected := Rect{X: 100, Y: 40, Width: 260, Height: 260}
	if got := b.Rect(); got != expected {
		t.Errorf("ExtendRect failed: expected %v, got %v", expected, got)
	}
	if got := b.Center(); got != NewPoint(230, 170) {
		t.Errorf("Center failed: expected (230, 170), got %v", got)
	}
}

func TestSnap(t *testing.T) {
	s := NewSnapper(20)
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{9.9, 0},
		{10, 20},
		{29, 20},
		{30, 40},
		{-9, 0},
		{-10, 0},
		{-11, -20},
		{113, 120},
	}

	for _, tt := range tests {
		if got := s.Snap(tt.in); got != tt.want {
			t.Errorf("Snap(%v) failed: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestSnapIsMultipleOfGrid(t *testing.T) {
	s := NewSnapper(20)
	for v := -200.0; v <= 200; v += 0.75 {
		got := s.Snap(v)
		if got%20 != 0 {
			t.Errorf("Snap(%v) failed: %d is not a grid multiple", v, got)
		}
		if math.Abs(float64(got)-v) > 10 {
			t.Errorf("Snap(%v) failed: %d is more than half a grid away", v, got)
		}
	}
}

func TestSnapDisabled(t *testing.T) {
	s := Snapper{GridSize: 20, Enabled: false}
	if got := s.Snap(113.4); got != 113 {
		t.Errorf("Snap failed: expected 113, got %d", got)
	}
	if got := s.SnapPoint(10.5, 7.2); got != NewPoint(11, 7) {
		t.Errorf("SnapPoint failed: expected (11, 7), got %v", got)
	}
}

func TestDirectionTextRoundTrip(t *testing.T) {
	for _, d := range Directions {
		text, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		var got Direction
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) failed: %v", text, err)
		}
		if got != d {
			t.Errorf("round trip failed: expected %v, got %v", d, got)
		}
	}

	var d Direction
	if err := d.UnmarshalText([]byte("up")); err == nil {
		t.Error("expected an error for an unknown direction")
	}
}
