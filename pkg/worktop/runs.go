package worktop

import (
	"sort"
	"strings"

	"github.com/philipparndt/workdraw/pkg/geometry"
)

// Run is a straight line of worktops on the same axis joined end to end
type Run struct {
	Worktops []*Worktop
	Axis     geometry.Axis
	Start    geometry.Point
	End      geometry.Point
	// LengthPx is the summed worktop length plus one worktop width for every
	// member after the first.
	LengthPx int
}

// Label joins the worktop labels with "+"
func (r Run) Label() string {
	labels := make([]string, len(r.Worktops))
	for i, w := range r.Worktops {
		labels[i] = w.Label
	}
	return strings.Join(labels, "+")
}

// FindRuns groups worktops whose end edges touch a worktop on the same axis.
// Connection detection must have run first. Only runs of two or more
// worktops are returned; members are ordered by position along the run.
func FindRuns(worktops []*Worktop, width int) []Run {
	visited := make(map[*Worktop]bool, len(worktops))
	var runs []Run

	for _, w := range worktops {
		if visited[w] {
			continue
		}

		members := collectRun(w, visited)
		if len(members) < 2 {
			continue
		}

		axis := w.Axis()
		sort.Slice(members, func(i, j int) bool {
			return members[i].Rect.Min().Along(axis) < members[j].Rect.Min().Along(axis)
		})

		r := Run{Worktops: members, Axis: axis}
		for i, m := range members {
			r.LengthPx += m.LengthPx()
			if i > 0 {
				r.LengthPx += width
			}
		}
		first, last := members[0].Rect, members[len(members)-1].Rect
		if axis == geometry.Horizontal {
			r.Start = geometry.Point{X: first.X, Y: first.Y + first.Height/2}
			r.End = geometry.Point{X: last.X + last.Width, Y: last.Y + last.Height/2}
		} else {
			r.Start = geometry.Point{X: first.X + first.Width/2, Y: first.Y}
			r.End = geometry.Point{X: last.X + last.Width/2, Y: last.Y + last.Height}
		}
		runs = append(runs, r)
	}

	return runs
}

// collectRun walks end-edge links breadth first from w
func collectRun(w *Worktop, visited map[*Worktop]bool) []*Worktop {
	queue := []*Worktop{w}
	visited[w] = true
	var members []*Worktop

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		members = append(members, cur)

		a, b := cur.EndSides()
		for _, s := range []Side{a, b} {
			for _, l := range cur.Edge(s).Links {
				if visited[l.Peer] || l.Peer.Axis() != cur.Axis() {
					continue
				}
				pa, pb := l.Peer.EndSides()
				if l.PeerSide != pa && l.PeerSide != pb {
					continue
				}
				visited[l.Peer] = true
				queue = append(queue, l.Peer)
			}
		}
	}

	return members
}
