package script

import (
	"github.com/philipparndt/workdraw/pkg/sketch"
)

// Action is a single scripted step
type Action int

const (
	Down Action = iota
	Move
	Up
	Clear
	Snap
)

func (a Action) String() string {
	switch a {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Clear:
		return "clear"
	case Snap:
		return "snap"
	}
	return "unknown"
}

// Step is one action of a script. X and Y are used by pointer actions,
// Enabled by Snap.
type Step struct {
	Action  Action
	X, Y    float64
	Enabled bool
	// Line is the source line, or the event index for JSON scripts
	Line int
}

// Script is an ordered list of steps replayed against a session
type Script struct {
	Name  string
	Steps []Step
}

// NewScript creates an empty script
func NewScript(name string) *Script {
	return &Script{
		Name:  name,
		Steps: make([]Step, 0),
	}
}

// AddStep appends a step
func (s *Script) AddStep(step Step) {
	s.Steps = append(s.Steps, step)
}

// StepCount returns the number of steps
func (s *Script) StepCount() int {
	return len(s.Steps)
}

// Counts returns how many steps of each action the script contains
func (s *Script) Counts() map[Action]int {
	counts := make(map[Action]int)
	for _, step := range s.Steps {
		counts[step.Action]++
	}
	return counts
}

// Replay feeds every step into the session in order
func (s *Script) Replay(session *sketch.Session) {
	for _, step := range s.Steps {
		switch step.Action {
		case Down:
			session.Handle(sketch.PointerEvent{Kind: sketch.PointerDown, X: step.X, Y: step.Y})
		case Move:
			session.Handle(sketch.PointerEvent{Kind: sketch.PointerMove, X: step.X, Y: step.Y})
		case Up:
			session.Handle(sketch.PointerEvent{Kind: sketch.PointerUp, X: step.X, Y: step.Y})
		case Clear:
			session.Clear()
		case Snap:
			session.SetSnap(step.Enabled)
		}
	}
}
