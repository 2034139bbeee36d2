package sketch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/philipparndt/workdraw/internal/logging"
	"github.com/philipparndt/workdraw/pkg/analysis"
	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/worktop"
	"github.com/rs/zerolog"
)

// EventKind identifies a pointer event
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a raw pointer event in canvas coordinates
type PointerEvent struct {
	Kind EventKind
	X, Y float64
}

// Session owns the state of one sketch: the finalized worktops, their
// connections and the drag in progress. It is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	cfg       Config
	snapper   geometry.Snapper
	detector  *Detector
	builder   worktop.Builder
	connector worktop.ConnectionDetector
	resolver  worktop.EdgeResolver
	calc      analysis.Calculator
	labels    worktop.Labeler

	worktops []*worktop.Worktop
	points   []worktop.ConnectionPoint
	runs     []worktop.Run
	faces    []worktop.ExteriorFace

	// drag state
	cursor      geometry.Point
	previousDir geometry.Direction
	turned      bool
	click       *geometry.Point

	renderers []Renderer
	lists     []ListSink
	log       zerolog.Logger
}

// New creates a session for the given configuration
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sketch config: %w", err)
	}
	resolver, err := worktop.NewResolver(cfg.EdgeStrategy)
	if err != nil {
		return nil, err
	}
	calc, err := analysis.NewCalculator(cfg.ConnectionCounting)
	if err != nil {
		return nil, err
	}

	builder := worktop.NewBuilder(worktop.DefaultWidth)
	builder.MinLength = cfg.MinSegmentLength

	id := uuid.New()
	s := &Session{
		ID:        id,
		cfg:       cfg,
		snapper:   geometry.Snapper{GridSize: cfg.GridSize, Enabled: cfg.SnapToGrid},
		detector:  NewDetector(cfg.InitialThreshold, cfg.DirectionChangeThreshold),
		builder:   builder,
		connector: worktop.NewConnectionDetector(),
		resolver:  resolver,
		calc:      calc,
		log:       logging.Module("sketch").With().Str("session", id.String()).Logger(),
	}
	s.log.Debug().
		Int("grid", cfg.GridSize).
		Bool("snap", cfg.SnapToGrid).
		Str("edges", cfg.EdgeStrategy).
		Str("counting", cfg.ConnectionCounting).
		Msg("Session created")
	return s, nil
}

// Attach registers sinks that are updated after every change. Either may be nil.
func (s *Session) Attach(r Renderer, l ListSink) {
	if r != nil {
		s.renderers = append(s.renderers, r)
	}
	if l != nil {
		s.lists = append(s.lists, l)
	}
	s.publish(true)
}

// Handle dispatches a pointer event
func (s *Session) Handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		s.PointerDown(ev.X, ev.Y)
	case PointerMove:
		s.PointerMove(ev.X, ev.Y)
	case PointerUp:
		s.PointerUp(ev.X, ev.Y)
	}
}

// PointerDown starts a drag
func (s *Session) PointerDown(x, y float64) {
	p := s.snapper.SnapPoint(x, y)
	s.cursor = p
	s.turned = false
	s.click = nil
	s.detector.Start(p)
	s.log.Debug().Str("point", p.String()).Msg("Drag started")
	s.publish(false)
}

// PointerMove updates the drag. Moves without a pressed pointer are ignored.
func (s *Session) PointerMove(x, y float64) {
	if !s.detector.Active() {
		return
	}

	p := s.snapper.SnapPoint(x, y)
	if p == s.cursor {
		return
	}
	s.cursor = p

	_, had := s.detector.Direction()
	seg, turned := s.detector.Move(p)
	if dir, has := s.detector.Direction(); has && !had {
		s.log.Debug().Str("direction", dir.String()).Msg("Direction detected")
	}
	if !turned {
		s.publish(false)
		return
	}

	next, _ := s.detector.Direction()
	s.log.Debug().
		Str("from", seg.Direction.String()).
		Str("to", next.String()).
		Str("corner", seg.End.String()).
		Msg("Direction changed")

	w := s.finalize(seg)
	if w == nil {
		// nothing was built, so the next segment still starts the drag
		s.detector.Discard(seg)
		s.publish(false)
		return
	}
	w.EdgeLabels = s.resolver.Initial(seg.Direction)
	if prevLabels, _, ok := s.resolver.Turn(seg.Direction, next); ok {
		w.EdgeLabels = prevLabels
	}
	s.previousDir = seg.Direction
	s.turned = true
	s.refresh()
}

// PointerUp ends the drag, finalizing the last segment. A release without a
// detected direction draws nothing and leaves a click marker.
func (s *Session) PointerUp(x, y float64) {
	if !s.detector.Active() {
		return
	}

	p := s.snapper.SnapPoint(x, y)
	s.cursor = p
	seg, ok := s.detector.End(p)
	if !ok {
		s.click = &p
		s.log.Debug().Str("point", p.String()).Msg("Click without drag")
		s.publish(false)
		return
	}

	if w := s.finalize(seg); w != nil {
		w.EdgeLabels = s.resolver.Initial(seg.Direction)
		if s.turned {
			if _, nextLabels, ok := s.resolver.Turn(s.previousDir, seg.Direction); ok {
				w.EdgeLabels = nextLabels
			}
		}
	}
	s.turned = false
	s.refresh()
}

// finalize builds the worktop for a segment and appends it. Degenerate
// segments are dropped and nil is returned.
func (s *Session) finalize(seg worktop.Segment) *worktop.Worktop {
	w, err := s.builder.Build(seg)
	if err != nil {
		if errors.Is(err, worktop.ErrDegenerateSegment) {
			s.log.Debug().Err(err).Str("segment", seg.String()).Msg("Segment discarded")
		} else {
			s.log.Error().Err(err).Str("segment", seg.String()).Msg("Failed to build worktop")
		}
		return nil
	}

	w.Label = s.labels.Next()
	s.worktops = append(s.worktops, w)
	s.log.Info().
		Str("label", w.Label).
		Str("direction", w.Direction.String()).
		Str("rect", w.Rect.String()).
		Msg("Worktop added")
	return w
}

// refresh reruns connection, run and exterior face detection over all
// worktops and publishes
func (s *Session) refresh() {
	s.points = s.connector.Detect(s.worktops)
	s.runs = worktop.FindRuns(s.worktops, s.builder.Width)
	s.faces = worktop.FindExteriorFaces(s.worktops, s.faceOffset())
	s.log.Debug().
		Int("worktops", len(s.worktops)).
		Int("points", len(s.points)).
		Int("runs", len(s.runs)).
		Int("faces", len(s.faces)).
		Msg("Connections updated")
	s.publish(true)
}

// Clear removes every worktop and restarts labelling at A
func (s *Session) Clear() {
	s.worktops = nil
	s.points = nil
	s.runs = nil
	s.faces = nil
	s.labels.Reset()
	s.detector.Reset()
	s.turned = false
	s.click = nil
	s.log.Info().Msg("Sketch cleared")
	s.publish(true)
}

// SetSnap enables or disables grid snapping for subsequent events
func (s *Session) SetSnap(enabled bool) {
	s.snapper.Enabled = enabled
	s.cfg.SnapToGrid = enabled
}

// SnapEnabled reports whether grid snapping is on
func (s *Session) SnapEnabled() bool {
	return s.snapper.Enabled
}

// Config returns the session configuration
func (s *Session) Config() Config {
	return s.cfg
}

// Drawing reports whether a drag is in progress
func (s *Session) Drawing() bool {
	return s.detector.Active()
}

// Worktops returns the finalized worktops in creation order
func (s *Session) Worktops() []*worktop.Worktop {
	return s.worktops
}

// ConnectionPoints returns the labelled connection points
func (s *Session) ConnectionPoints() []worktop.ConnectionPoint {
	return s.points
}

// Runs returns the straight runs found in the last detection pass
func (s *Session) Runs() []worktop.Run {
	return s.runs
}

// ExteriorFaces returns the exterior faces found in the last detection pass,
// including single-edge ones
func (s *Session) ExteriorFaces() []worktop.ExteriorFace {
	return s.faces
}

// faceOffset is how far outside an edge the exterior test looks
func (s *Session) faceOffset() int {
	return max(s.cfg.GridSize/2, 1)
}

// Calculator returns the measurement calculator in use
func (s *Session) Calculator() analysis.Calculator {
	return s.calc
}

// Measurements returns the measurements of every worktop
func (s *Session) Measurements() []*analysis.MeasurementResult {
	results := make([]*analysis.MeasurementResult, 0, len(s.worktops))
	for _, w := range s.worktops {
		results = append(results, s.calc.Measure(w))
	}
	return results
}

// Scene returns the current drawing state for rendering
func (s *Session) Scene() Scene {
	return buildScene(s)
}

// WorktopSummaries returns the worktop list
func (s *Session) WorktopSummaries() []WorktopSummary {
	summaries := make([]WorktopSummary, 0, len(s.worktops))
	for _, w := range s.worktops {
		summaries = append(summaries, WorktopSummary{
			Label:     w.Label,
			Direction: w.Direction,
			LengthMm:  s.calc.BaseLengthMm(w),
			WidthMm:   analysis.WorktopWidthMm,
		})
	}
	return summaries
}

// ConnectionSummaries returns one entry per labelled connection point
// between each pair of worktops
func (s *Session) ConnectionSummaries() []ConnectionSummary {
	type pairKey struct {
		a, b  *worktop.Worktop
		label string
	}

	var summaries []ConnectionSummary
	seen := make(map[pairKey]bool)
	for _, w := range s.worktops {
		for _, side := range worktop.Sides {
			for _, l := range w.Edge(side).Links {
				if l.Label == "" {
					continue
				}
				key := pairKey{w, l.Peer, l.Label}
				if seen[key] || seen[pairKey{l.Peer, w, l.Label}] {
					continue
				}
				seen[key] = true
				summaries = append(summaries, ConnectionSummary{
					WorktopA: w.Label,
					CornerA:  l.OwnCorner,
					WorktopB: l.Peer.Label,
					CornerB:  l.PeerCorner,
					Label:    l.Label,
				})
			}
		}
	}
	return summaries
}

func (s *Session) publish(lists bool) {
	if len(s.renderers) > 0 {
		scene := s.Scene()
		for _, r := range s.renderers {
			r.Render(scene)
		}
	}
	if lists && len(s.lists) > 0 {
		worktops, connections := s.WorktopSummaries(), s.ConnectionSummaries()
		for _, l := range s.lists {
			l.UpdateLists(worktops, connections)
		}
	}
}
