package worktop

import (
	"strings"

	"github.com/philipparndt/workdraw/pkg/geometry"
)

// ExteriorFace is a chain of collinear exposed edges on the same side of
// neighbouring worktops, forming one straight stretch of the outer boundary.
type ExteriorFace struct {
	Worktops []*Worktop
	Side     Side
	Start    geometry.Point
	End      geometry.Point
	LengthPx int
}

// Label joins the worktop labels in order along the face, e.g. "A+B"
func (f ExteriorFace) Label() string {
	labels := make([]string, len(f.Worktops))
	for i, w := range f.Worktops {
		labels[i] = w.Label
	}
	return strings.Join(labels, "+")
}

// Continuous reports whether the face spans more than one worktop
func (f ExteriorFace) Continuous() bool {
	return len(f.Worktops) > 1
}

// Line returns the face as a line segment
func (f ExteriorFace) Line() geometry.Line {
	return geometry.NewLine(f.Start, f.End)
}

type faceEdge struct {
	w *Worktop
	s Side
}

// FindExteriorFaces returns every exterior face. An adjusted edge is exterior
// when the point offset px outwards from its midpoint lies in no other
// worktop. Exterior edges on the same side and line join when a connection
// links the end of one to the start of the next. Faces shorter than offset
// are dropped. Connection detection must have run first.
func FindExteriorFaces(worktops []*Worktop, offset int) []ExteriorFace {
	exterior := make(map[faceEdge]bool)
	for _, w := range worktops {
		for _, s := range Sides {
			if isExterior(w, s, worktops, offset) {
				exterior[faceEdge{w, s}] = true
			}
		}
	}

	next := make(map[faceEdge]faceEdge)
	hasPrev := make(map[faceEdge]bool)
	for _, w := range worktops {
		for _, s := range Sides {
			fe := faceEdge{w, s}
			if !exterior[fe] {
				continue
			}
			if succ, ok := successor(fe, exterior); ok {
				next[fe] = succ
				hasPrev[succ] = true
			}
		}
	}

	var faces []ExteriorFace
	for _, w := range worktops {
		for _, s := range Sides {
			head := faceEdge{w, s}
			if !exterior[head] || hasPrev[head] {
				continue
			}

			f := ExteriorFace{Side: s}
			lo, _ := w.Edge(s).span()
			hi := lo
			for fe, ok := head, true; ok; fe, ok = next[fe] {
				_, eHi := fe.w.Edge(s).span()
				f.Worktops = append(f.Worktops, fe.w)
				f.LengthPx += fe.w.Edge(s).ExposedLength()
				hi = eHi
			}

			at := w.Edge(s).offset()
			if s.Axis() == geometry.Horizontal {
				f.Start, f.End = geometry.Point{X: lo, Y: at}, geometry.Point{X: hi, Y: at}
			} else {
				f.Start, f.End = geometry.Point{X: at, Y: lo}, geometry.Point{X: at, Y: hi}
			}
			if f.LengthPx >= offset {
				faces = append(faces, f)
			}
		}
	}
	return faces
}

// successor finds the exterior edge on the same side and line that starts
// where fe ends
func successor(fe faceEdge, exterior map[faceEdge]bool) (faceEdge, bool) {
	e := fe.w.Edge(fe.s)
	_, hi := e.span()
	for _, l := range e.Links {
		cand := faceEdge{l.Peer, fe.s}
		if l.PeerSide != fe.s || !exterior[cand] {
			continue
		}
		pe := l.Peer.Edge(fe.s)
		pLo, _ := pe.span()
		if geometry.Abs(pe.offset()-e.offset()) <= MatchTolerance && geometry.Abs(pLo-hi) <= MatchTolerance {
			return cand, true
		}
	}
	return faceEdge{}, false
}

// isExterior tests a point just outside the middle of the adjusted edge. Edges
// trimmed away completely are never exterior.
func isExterior(w *Worktop, s Side, worktops []*Worktop, offset int) bool {
	e := w.Edge(s)
	if e.ExposedLength() == 0 {
		return false
	}
	p := e.Adjusted.Midpoint().Add(s.Outward().Unit().Mul(offset))
	for _, other := range worktops {
		if other != w && other.Rect.Contains(p) {
			return false
		}
	}
	return true
}
