package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/sketch"
	"github.com/philipparndt/workdraw/pkg/worktop"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	gridColor       = color.RGBA{235, 235, 235, 255}
	worktopFill     = color.NRGBA{222, 184, 135, 160}
	previewFill     = color.NRGBA{150, 150, 150, 80}
	outlineColor    = color.RGBA{90, 60, 30, 255}
	innerColor      = color.RGBA{200, 40, 40, 255}
	outerColor      = color.RGBA{40, 80, 200, 255}
	textColor       = color.RGBA{30, 30, 30, 255}
	markerColor     = color.RGBA{220, 120, 0, 255}
	runColor        = color.RGBA{0, 140, 70, 255}
	faceColor       = color.RGBA{0, 128, 0, 255}
)

// RasterOptions controls PNG output
type RasterOptions struct {
	Margin int
	Grid   bool
}

// DefaultRasterOptions returns a 60px margin with the grid drawn
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{Margin: 60, Grid: true}
}

// Rasterize draws the scene into a new image sized to fit its content
func Rasterize(scene sketch.Scene, opts RasterOptions) *image.RGBA {
	bounds := scene.Bounds()
	if bounds.IsEmpty() {
		bounds = geometry.NewBounds(geometry.Point{})
	}
	w, h := bounds.Size()
	width := max(w+2*opts.Margin, 1)
	height := max(h+2*opts.Margin, 1)

	r := &raster{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		origin: bounds.Min.Sub(geometry.Point{X: opts.Margin, Y: opts.Margin}),
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	if opts.Grid && scene.GridSize > 0 {
		r.grid(scene.GridSize)
	}
	for _, wt := range scene.Worktops {
		r.fillRect(wt.Rect, worktopFill)
		r.outline(wt)
		r.textCentered(wt.Rect.Center(), wt.Label, textColor)
	}
	if scene.Preview != nil {
		r.fillRect(*scene.Preview, previewFill)
	}
	for _, m := range scene.Measurements {
		if m.Rotation == 90 {
			r.textVertical(m.Anchor, m.Text, textColor)
		} else {
			r.textCentered(m.Anchor, m.Text, textColor)
		}
	}
	for _, run := range scene.Runs {
		r.line(run.Start, run.End, runColor)
		mid := geometry.NewLine(run.Start, run.End).Midpoint()
		r.textCentered(mid.Add(geometry.Point{Y: -12}), run.Label+" "+run.Text, runColor)
	}
	for _, f := range scene.Faces {
		if !f.Continuous {
			continue
		}
		a, b := f.DimensionLine()
		r.line(a, b, faceColor)
		if f.Rotation == 90 {
			r.textVertical(f.Anchor, f.Text, faceColor)
		} else {
			r.textCentered(f.Anchor, f.Text, faceColor)
		}
	}
	for _, p := range scene.Markers {
		r.disc(p.Point, 5, markerColor)
		r.textCentered(p.Point.Add(geometry.Point{X: 12, Y: -10}), p.Label, markerColor)
	}
	if scene.Click != nil {
		c := *scene.Click
		r.line(c.Add(geometry.Point{X: -5}), c.Add(geometry.Point{X: 5}), markerColor)
		r.line(c.Add(geometry.Point{Y: -5}), c.Add(geometry.Point{Y: 5}), markerColor)
	}

	return r.img
}

// WritePNG encodes the scene as PNG
func WritePNG(w io.Writer, scene sketch.Scene, opts RasterOptions) error {
	if err := png.Encode(w, Rasterize(scene, opts)); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// raster draws in scene coordinates onto an image whose top left is origin
type raster struct {
	img    *image.RGBA
	origin geometry.Point
}

func (r *raster) toImage(p geometry.Point) image.Point {
	return image.Point{X: p.X - r.origin.X, Y: p.Y - r.origin.Y}
}

func (r *raster) grid(size int) {
	b := r.img.Bounds()
	for x := floorTo(r.origin.X, size); x-r.origin.X < b.Max.X; x += size {
		for y := 0; y < b.Max.Y; y++ {
			r.set(x-r.origin.X, y, gridColor)
		}
	}
	for y := floorTo(r.origin.Y, size); y-r.origin.Y < b.Max.Y; y += size {
		for x := 0; x < b.Max.X; x++ {
			r.set(x, y-r.origin.Y, gridColor)
		}
	}
}

// floorTo rounds v down to a multiple of step
func floorTo(v, step int) int {
	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}
	return q * step
}

func (r *raster) fillRect(rect geometry.Rect, col color.Color) {
	lo := r.toImage(rect.Min())
	hi := r.toImage(rect.Max())
	draw.Draw(r.img, image.Rectangle{Min: lo, Max: hi}, image.NewUniform(col), image.Point{}, draw.Over)
}

// outline draws each side of a worktop, coloured by its inner/outer label
func (r *raster) outline(wt sketch.WorktopShape) {
	tl := wt.Rect.Min()
	br := wt.Rect.Max()
	tr := geometry.Point{X: br.X, Y: tl.Y}
	bl := geometry.Point{X: tl.X, Y: br.Y}
	sides := map[worktop.Side][2]geometry.Point{
		worktop.Left:   {tl, bl},
		worktop.Right:  {tr, br},
		worktop.Top:    {tl, tr},
		worktop.Bottom: {bl, br},
	}
	for _, s := range worktop.Sides {
		col := outlineColor
		switch wt.EdgeLabels[s] {
		case worktop.Inner:
			col = innerColor
		case worktop.Outer:
			col = outerColor
		}
		r.line(sides[s][0], sides[s][1], col)
	}
}

// line draws an axis-aligned or diagonal line one pixel wide
func (r *raster) line(a, b geometry.Point, col color.RGBA) {
	p, q := r.toImage(a), r.toImage(b)
	dx, dy := q.X-p.X, q.Y-p.Y
	steps := max(geometry.Abs(dx), geometry.Abs(dy))
	if steps == 0 {
		r.set(p.X, p.Y, col)
		return
	}
	for i := 0; i <= steps; i++ {
		r.set(p.X+dx*i/steps, p.Y+dy*i/steps, col)
	}
}

func (r *raster) disc(center geometry.Point, radius int, col color.RGBA) {
	c := r.toImage(center)
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				r.set(c.X+x, c.Y+y, col)
			}
		}
	}
}

func (r *raster) set(x, y int, col color.RGBA) {
	if image.Pt(x, y).In(r.img.Bounds()) {
		r.img.SetRGBA(x, y, col)
	}
}

// textCentered draws text centered horizontally and vertically on p
func (r *raster) textCentered(p geometry.Point, text string, col color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Round()
	ip := r.toImage(p)
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(ip.X-width/2, ip.Y+face.Ascent/2),
	}
	d.DrawString(text)
}

// textVertical draws text rotated a quarter turn clockwise, centered on p
func (r *raster) textVertical(p geometry.Point, text string, col color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Round()
	height := face.Height

	tmp := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	ip := r.toImage(p)
	left := ip.X - height/2
	top := ip.Y - width/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := tmp.RGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			r.set(left+height-1-y, top+x, px)
		}
	}
}
