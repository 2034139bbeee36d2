package measurement

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/workdraw/pkg/analysis"
	"github.com/philipparndt/workdraw/pkg/worktop"
)

const header = "Worktop\tEdge\tType\tX1\tY1\tX2\tY2\tLength(px)\tLength(mm)\tDetails"

// Collect logs every edge of every worktop
func Collect(worktops []*worktop.Worktop, calc analysis.Calculator) *Log {
	l := NewLog()
	for _, w := range worktops {
		result := calc.Measure(w)
		for _, s := range worktop.Sides {
			e := w.Edge(s)
			m := result.Edges[s]

			kind := "width"
			if w.IsLengthSide(s) {
				kind = m.Label.String()
			}

			l.Add(Entry{
				Worktop:  w.Label,
				Edge:     s.String(),
				Type:     kind,
				Line:     e.Original,
				LengthPx: e.Original.Length(),
				LengthMm: m.LengthMm,
				Details:  details(w, e, m),
			})
		}
	}
	return l
}

// AddFaces logs every continuous exterior face
func (l *Log) AddFaces(faces []worktop.ExteriorFace) {
	for _, f := range faces {
		if !f.Continuous() {
			continue
		}
		l.Add(Entry{
			Worktop:  "ExteriorFace (" + f.Label() + ")",
			Edge:     f.Side.Axis().String(),
			Type:     "exterior-face",
			Line:     f.Line(),
			LengthPx: f.LengthPx,
			LengthMm: analysis.FaceLengthMm(f),
			Details:  "continuous-exterior-face",
		})
	}
}

func details(w *worktop.Worktop, e *worktop.Edge, m analysis.EdgeMeasurement) string {
	var parts []string
	if !w.IsFirstSegment {
		parts = append(parts, "continuation")
	}
	if e.Adjusted != e.Original {
		parts = append(parts, fmt.Sprintf("exposed=%dpx", m.ExposedPx))
	}
	if m.Label == worktop.Inner {
		parts = append(parts, fmt.Sprintf("connections=%d", m.Connections))
	}
	for _, link := range e.Links {
		peer := link.Peer.Label + "." + link.PeerSide.String()
		if link.Label != "" {
			peer += "@" + link.Label
		}
		parts = append(parts, peer)
	}
	return strings.Join(parts, " ")
}

// WriteTSV writes the log as a tab separated table
func (l *Log) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "=== MEASUREMENT LOGS ===")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, header)
	for _, e := range l.Entries {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			e.Worktop, e.Edge, e.Type,
			e.Line.X1, e.Line.Y1, e.Line.X2, e.Line.Y2,
			e.LengthPx, e.LengthMm, e.Details)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write measurement log: %w", err)
	}
	return nil
}
