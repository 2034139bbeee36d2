package stl

import (
	"github.com/philipparndt/workdraw/pkg/analysis"
	"github.com/philipparndt/workdraw/pkg/worktop"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultThickness is the worktop thickness in millimetres
const DefaultThickness = 40.0

// Triangle is a single facet. Vertices are counter-clockwise seen from outside.
type Triangle struct {
	Normal r3.Vec
	V1     r3.Vec
	V2     r3.Vec
	V3     r3.Vec
}

// NewTriangle creates a facet and derives its normal from the winding
func NewTriangle(v1, v2, v3 r3.Vec) Triangle {
	n := r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1))
	if r3.Norm(n) > 0 {
		n = r3.Unit(n)
	}
	return Triangle{Normal: n, V1: v1, V2: v2, V3: v3}
}

// Area returns the area of the facet
func (t Triangle) Area() float64 {
	return r3.Norm(r3.Cross(r3.Sub(t.V2, t.V1), r3.Sub(t.V3, t.V1))) / 2
}

// Model is a triangle mesh
type Model struct {
	Name      string
	Triangles []Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// AddBox adds the twelve facets of an axis-aligned box
func (m *Model) AddBox(lo, hi r3.Vec) {
	x0, y0, z0 := lo.X, lo.Y, lo.Z
	x1, y1, z1 := hi.X, hi.Y, hi.Z
	v := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

	quads := [6][4]r3.Vec{
		{v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), v(x1, y0, z0)}, // bottom
		{v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1)}, // top
		{v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1)}, // front
		{v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0)}, // back
		{v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0)}, // left
		{v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), v(x1, y0, z1)}, // right
	}
	for _, q := range quads {
		m.AddTriangle(NewTriangle(q[0], q[1], q[2]))
		m.AddTriangle(NewTriangle(q[0], q[2], q[3]))
	}
}

// FromWorktops builds a model with one slab per worktop in millimetres.
// Screen y grows downwards, so it is flipped to keep the layout unmirrored
// when viewed from above.
func FromWorktops(name string, worktops []*worktop.Worktop, thickness float64) *Model {
	m := NewModel(name)
	mm := float64(analysis.MillimetersPerPixel)
	for _, w := range worktops {
		r := w.Rect
		lo := r3.Vec{X: float64(r.X) * mm, Y: -float64(r.Y+r.Height) * mm}
		hi := r3.Vec{X: float64(r.X+r.Width) * mm, Y: -float64(r.Y) * mm, Z: thickness}
		m.AddBox(lo, hi)
	}
	return m
}
