package viewer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/sketch"
	"github.com/philipparndt/workdraw/pkg/worktop"
)

// EventHandler receives pointer events from the canvas
type EventHandler interface {
	Handle(ev sketch.PointerEvent)
}

// Canvas is the drawing surface. It forwards pointer input to a handler
// and draws whatever scene it was last given.
type Canvas struct {
	widget.BaseWidget
	handler EventHandler
	scene   sketch.Scene
	last    fyne.Position
	pressed bool
}

var (
	_ sketch.Renderer   = (*Canvas)(nil)
	_ fyne.Draggable    = (*Canvas)(nil)
	_ desktop.Mouseable = (*Canvas)(nil)
	_ desktop.Hoverable = (*Canvas)(nil)
)

// NewCanvas creates a canvas that sends pointer events to handler
func NewCanvas(handler EventHandler) *Canvas {
	c := &Canvas{handler: handler}
	c.ExtendBaseWidget(c)
	return c
}

// Render stores the scene and redraws
func (c *Canvas) Render(scene sketch.Scene) {
	c.scene = scene
	c.Refresh()
}

// Scene returns the scene currently shown
func (c *Canvas) Scene() sketch.Scene {
	return c.scene
}

// CreateRenderer creates the renderer for the widget
func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	return &canvasRenderer{canvas: c}
}

func (c *Canvas) send(kind sketch.EventKind, pos fyne.Position) {
	c.last = pos
	if c.handler == nil {
		return
	}
	c.handler.Handle(sketch.PointerEvent{Kind: kind, X: float64(pos.X), Y: float64(pos.Y)})
}

// MouseDown starts a drag
func (c *Canvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.pressed = true
	c.send(sketch.PointerDown, ev.Position)
}

// MouseUp ends the drag
func (c *Canvas) MouseUp(ev *desktop.MouseEvent) {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.send(sketch.PointerUp, ev.Position)
}

// Dragged forwards movement while the button is held
func (c *Canvas) Dragged(ev *fyne.DragEvent) {
	if !c.pressed {
		return
	}
	c.send(sketch.PointerMove, ev.Position)
}

// DragEnd releases the pointer if no MouseUp arrived, e.g. when the
// button was let go outside the widget
func (c *Canvas) DragEnd() {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.send(sketch.PointerUp, c.last)
}

// MouseIn is required by desktop.Hoverable
func (c *Canvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved forwards hover movement during a press
func (c *Canvas) MouseMoved(ev *desktop.MouseEvent) {
	if c.pressed {
		c.send(sketch.PointerMove, ev.Position)
	}
}

// MouseOut is required by desktop.Hoverable
func (c *Canvas) MouseOut() {}

// canvasRenderer implements fyne.WidgetRenderer
type canvasRenderer struct {
	canvas  *Canvas
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.size = size
	r.build()
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *canvasRenderer) Refresh() {
	r.build()
	canvas.Refresh(r.canvas)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *canvasRenderer) Destroy() {}

func (r *canvasRenderer) build() {
	scene := r.canvas.scene
	objects := make([]fyne.CanvasObject, 0, 64)

	bg := canvas.NewRectangle(backgroundColor)
	bg.Resize(r.size)
	objects = append(objects, bg)

	if scene.GridSize > 0 {
		for x := float32(0); x <= r.size.Width; x += float32(scene.GridSize) {
			objects = append(objects, newLine(fyne.NewPos(x, 0), fyne.NewPos(x, r.size.Height), gridColor, 1))
		}
		for y := float32(0); y <= r.size.Height; y += float32(scene.GridSize) {
			objects = append(objects, newLine(fyne.NewPos(0, y), fyne.NewPos(r.size.Width, y), gridColor, 1))
		}
	}

	for _, wt := range scene.Worktops {
		objects = append(objects, newRect(wt.Rect, worktopFill))
		objects = append(objects, edgeLines(wt)...)
		objects = append(objects, newText(wt.Rect.Center(), wt.Label, textColor, 16, true))
	}

	if scene.Preview != nil {
		preview := newRect(*scene.Preview, previewFill)
		preview.StrokeColor = outlineColor
		preview.StrokeWidth = 1
		objects = append(objects, preview)
	}

	// canvas.Text cannot rotate, vertical labels are drawn level
	for _, m := range scene.Measurements {
		objects = append(objects, newText(m.Anchor, m.Text, textColor, 11, false))
	}

	for _, run := range scene.Runs {
		objects = append(objects, newLine(toPos(run.Start), toPos(run.End), runColor, 2))
		mid := geometry.NewLine(run.Start, run.End).Midpoint().Add(geometry.Point{Y: -14})
		objects = append(objects, newText(mid, run.Label+" "+run.Text, runColor, 12, true))
	}

	for _, f := range scene.Faces {
		if !f.Continuous {
			continue
		}
		a, b := f.DimensionLine()
		objects = append(objects, newLine(toPos(a), toPos(b), faceColor, 1))
		objects = append(objects, newText(f.Anchor, f.Text, faceColor, 11, true))
	}

	for _, p := range scene.Markers {
		objects = append(objects, newDot(p.Point, 5, markerColor))
		objects = append(objects, newText(p.Point.Add(geometry.Point{X: 12, Y: -10}), p.Label, markerColor, 12, true))
	}

	if scene.Click != nil {
		objects = append(objects, newDot(*scene.Click, 3, markerColor))
	}

	r.objects = objects
}

func toPos(p geometry.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func newLine(a, b fyne.Position, col color.Color, width float32) *canvas.Line {
	l := canvas.NewLine(col)
	l.StrokeWidth = width
	l.Position1 = a
	l.Position2 = b
	return l
}

func newRect(rect geometry.Rect, fill color.Color) *canvas.Rectangle {
	r := canvas.NewRectangle(fill)
	r.Move(toPos(rect.Min()))
	r.Resize(fyne.NewSize(float32(rect.Width), float32(rect.Height)))
	return r
}

func newText(center geometry.Point, text string, col color.Color, size float32, bold bool) *canvas.Text {
	t := canvas.NewText(text, col)
	t.TextSize = size
	t.TextStyle = fyne.TextStyle{Bold: bold}
	ms := t.MinSize()
	t.Move(fyne.NewPos(float32(center.X)-ms.Width/2, float32(center.Y)-ms.Height/2))
	return t
}

func newDot(center geometry.Point, radius float32, col color.Color) *canvas.Circle {
	c := canvas.NewCircle(col)
	c.StrokeColor = color.White
	c.StrokeWidth = 1
	c.Resize(fyne.NewSize(2*radius, 2*radius))
	c.Move(fyne.NewPos(float32(center.X)-radius, float32(center.Y)-radius))
	return c
}

// edgeLines outlines a worktop, colouring inner and outer sides
func edgeLines(wt sketch.WorktopShape) []fyne.CanvasObject {
	tl := toPos(wt.Rect.Min())
	br := toPos(wt.Rect.Max())
	tr := fyne.NewPos(br.X, tl.Y)
	bl := fyne.NewPos(tl.X, br.Y)
	ends := map[worktop.Side][2]fyne.Position{
		worktop.Left:   {tl, bl},
		worktop.Right:  {tr, br},
		worktop.Top:    {tl, tr},
		worktop.Bottom: {bl, br},
	}

	lines := make([]fyne.CanvasObject, 0, len(worktop.Sides))
	for _, s := range worktop.Sides {
		col, width := color.Color(outlineColor), float32(1)
		switch wt.EdgeLabels[s] {
		case worktop.Inner:
			col, width = innerColor, 2
		case worktop.Outer:
			col, width = outerColor, 2
		}
		lines = append(lines, newLine(ends[s][0], ends[s][1], col, width))
	}
	return lines
}
