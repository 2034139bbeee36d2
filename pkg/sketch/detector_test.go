package sketch

import (
	"testing"

	"github.com/philipparndt/workdraw/pkg/geometry"
)

func newTestDetector(start geometry.Point) *Detector {
	d := NewDetector(DefaultInitialThreshold, DefaultDirectionChangeThreshold)
	d.Start(start)
	return d
}

func TestDetectorInitialThreshold(t *testing.T) {
	d := newTestDetector(geometry.NewPoint(100, 100))

	d.Move(geometry.NewPoint(160, 100))
	if _, ok := d.Direction(); ok {
		t.Fatal("Move failed: 60px must not commit a direction")
	}

	d.Move(geometry.NewPoint(161, 120))
	dir, ok := d.Direction()
	if !ok || dir != geometry.East {
		t.Errorf("Move failed: expected east, got %v (%v)", dir, ok)
	}
}

func TestDetectorInitialDirections(t *testing.T) {
	tests := []struct {
		to   geometry.Point
		want geometry.Direction
	}{
		{geometry.NewPoint(200, 130), geometry.East},
		{geometry.NewPoint(0, 70), geometry.West},
		{geometry.NewPoint(130, 200), geometry.South},
		{geometry.NewPoint(70, 0), geometry.North},
	}

	for _, tt := range tests {
		d := newTestDetector(geometry.NewPoint(100, 100))
		d.Move(tt.to)
		if dir, ok := d.Direction(); !ok || dir != tt.want {
			t.Errorf("Move to %v failed: expected %v, got %v", tt.to, tt.want, dir)
		}
	}
}

func TestDetectorTurn(t *testing.T) {
	d := newTestDetector(geometry.NewPoint(100, 100))
	d.Move(geometry.NewPoint(300, 100))

	if _, turned := d.Move(geometry.NewPoint(300, 170)); turned {
		t.Fatal("Move failed: 70px across must not turn")
	}

	seg, turned := d.Move(geometry.NewPoint(310, 180))
	if !turned {
		t.Fatal("Move failed: expected a turn after 80px across")
	}
	if seg.Start != geometry.NewPoint(100, 100) || seg.End != geometry.NewPoint(310, 100) {
		t.Errorf("Move failed: expected segment (100, 100)->(310, 100), got %v", seg)
	}
	if seg.Direction != geometry.East || !seg.IsFirstSegment || !seg.IsPrevious || !seg.IsCurrent {
		t.Errorf("Move failed: unexpected segment flags %+v", seg)
	}

	dir, _ := d.Direction()
	if dir != geometry.South {
		t.Errorf("Move failed: expected new direction south, got %v", dir)
	}
	if d.Anchor() != geometry.NewPoint(310, 100) {
		t.Errorf("Move failed: expected anchor at the corner, got %v", d.Anchor())
	}

	last, ok := d.End(geometry.NewPoint(330, 300))
	if !ok {
		t.Fatal("End failed: expected a final segment")
	}
	if last.Start != geometry.NewPoint(310, 100) || last.End != geometry.NewPoint(310, 300) {
		t.Errorf("End failed: expected projected segment (310, 100)->(310, 300), got %v", last)
	}
	if last.IsFirstSegment || last.IsPrevious || !last.IsCurrent {
		t.Errorf("End failed: unexpected segment flags %+v", last)
	}
}

func TestDetectorDiscardKeepsFirst(t *testing.T) {
	d := newTestDetector(geometry.NewPoint(100, 100))
	d.Move(geometry.NewPoint(180, 100))
	d.Move(geometry.NewPoint(100, 100))

	seg, turned := d.Move(geometry.NewPoint(100, 180))
	if !turned || !seg.IsFirstSegment {
		t.Fatalf("Move failed: expected a first segment turn, got %+v %v", seg, turned)
	}
	d.Discard(seg)

	last, ok := d.End(geometry.NewPoint(100, 240))
	if !ok {
		t.Fatal("End failed: expected a final segment")
	}
	if !last.IsFirstSegment {
		t.Errorf("End failed: expected the segment after a discarded one to stay first, got %+v", last)
	}
	if last.Start != geometry.NewPoint(100, 100) {
		t.Errorf("End failed: expected start (100, 100), got %v", last.Start)
	}
}

func TestDetectorEndWithoutDirection(t *testing.T) {
	d := newTestDetector(geometry.NewPoint(100, 100))
	d.Move(geometry.NewPoint(140, 120))

	if _, ok := d.End(geometry.NewPoint(140, 120)); ok {
		t.Error("End failed: expected no segment before a direction is detected")
	}
	if d.Active() {
		t.Error("End failed: drag should be over")
	}
}

func TestDetectorFollowsReversal(t *testing.T) {
	d := newTestDetector(geometry.NewPoint(300, 100))
	d.Move(geometry.NewPoint(400, 100))
	d.Move(geometry.NewPoint(200, 100))

	dir, _ := d.Direction()
	if dir != geometry.West {
		t.Errorf("Move failed: expected west after crossing back, got %v", dir)
	}

	seg, _ := d.End(geometry.NewPoint(200, 100))
	if seg.Direction != geometry.West {
		t.Errorf("End failed: expected west segment, got %v", seg.Direction)
	}
}

func TestDetectorPreview(t *testing.T) {
	d := newTestDetector(geometry.NewPoint(100, 100))
	if _, ok := d.Preview(geometry.NewPoint(120, 100)); ok {
		t.Error("Preview failed: expected nothing before a direction is detected")
	}

	d.Move(geometry.NewPoint(200, 100))
	seg, ok := d.Preview(geometry.NewPoint(240, 130))
	if !ok || seg.End != geometry.NewPoint(240, 100) {
		t.Errorf("Preview failed: expected end (240, 100), got %v", seg.End)
	}
	if !d.Active() {
		t.Error("Preview failed: must not end the drag")
	}
}
