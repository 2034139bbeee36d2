package viewer

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/sketch"
	"github.com/philipparndt/workdraw/pkg/worktop"
)

func singleWorktopScene(t *testing.T) sketch.Scene {
	t.Helper()
	s, err := sketch.New(sketch.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.PointerDown(100, 100)
	for x := 110.0; x <= 300; x += 10 {
		s.PointerMove(x, 100)
	}
	s.PointerUp(300, 100)
	return s.Scene()
}

func TestRasterizeSize(t *testing.T) {
	img := Rasterize(singleWorktopScene(t), DefaultRasterOptions())

	// content spans the measurement labels 25px outside the 200x120 rect
	b := img.Bounds()
	if b.Dx() != 250+120 || b.Dy() != 170+120 {
		t.Errorf("Rasterize size failed: expected 370x290, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRasterizeDrawsWorktop(t *testing.T) {
	img := Rasterize(singleWorktopScene(t), DefaultRasterOptions())

	if got := img.RGBAAt(1, 1); got != backgroundColor {
		t.Errorf("expected background in the margin, got %v", got)
	}
	// a point inside the worktop, away from its label
	if got := img.RGBAAt(100-75+60+10, 100-15+60); got == backgroundColor {
		t.Errorf("expected worktop fill inside the rect, got background")
	}
}

func faceScene(continuous bool) sketch.Scene {
	return sketch.Scene{
		Worktops: []sketch.WorktopShape{{Label: "A", Rect: geometry.Rect{Width: 100, Height: 120}}},
		Faces: []sketch.FaceLine{{
			Label:      "A+B",
			Side:       worktop.Top,
			Start:      geometry.NewPoint(0, 0),
			End:        geometry.NewPoint(100, 0),
			Text:       "500mm",
			Anchor:     geometry.NewPoint(50, -45),
			Continuous: continuous,
		}},
	}
}

func TestRasterizeDrawsContinuousFace(t *testing.T) {
	img := Rasterize(faceScene(true), RasterOptions{Margin: 60})

	// the dimension line runs 35px above the face, origin is (-60, -105)
	if got := img.RGBAAt(20+60, -35+105); got != faceColor {
		t.Errorf("expected face dimension line, got %v", got)
	}
}

func TestRasterizeSkipsSingleFace(t *testing.T) {
	img := Rasterize(faceScene(false), RasterOptions{Margin: 60})

	// without a continuous face the content starts at the worktop
	if img.Bounds().Dy() != 120+120 {
		t.Errorf("expected height 240, got %d", img.Bounds().Dy())
	}
	for y := 0; y < img.Bounds().Dy(); y++ {
		if got := img.RGBAAt(80, y); got == faceColor {
			t.Fatalf("expected no face line, found one at y=%d", y)
		}
	}
}

func TestRasterizeEmptyScene(t *testing.T) {
	img := Rasterize(sketch.Scene{GridSize: 20}, DefaultRasterOptions())
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 120 {
		t.Errorf("expected 120x120 for an empty scene, got %v", img.Bounds())
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, singleWorktopScene(t), DefaultRasterOptions()); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 370 {
		t.Errorf("expected width 370, got %d", img.Bounds().Dx())
	}
}

func TestFloorTo(t *testing.T) {
	tests := []struct {
		v, step, expected int
	}{
		{0, 20, 0},
		{15, 20, 0},
		{20, 20, 20},
		{-1, 20, -20},
		{-40, 20, -40},
		{-45, 20, -60},
	}
	for _, tt := range tests {
		if got := floorTo(tt.v, tt.step); got != tt.expected {
			t.Errorf("floorTo(%d, %d) failed: expected %d, got %d", tt.v, tt.step, tt.expected, got)
		}
	}
}
