package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// StepSize is the spacing in pixels of the moves a drag is expanded into
const StepSize = 10

// ErrUnknownEvent is returned for an unrecognised action
var ErrUnknownEvent = errors.New("unknown event")

// Parse reads a script file. JSON is detected from a leading '{' or '[',
// anything else is read as the line format.
func Parse(filename string) (*Script, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	sc, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	sc.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return sc, nil
}

// ParseBytes parses a script from memory
func ParseBytes(data []byte) (*Script, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return parseJSON(trimmed)
	}
	return parseText(bytes.NewReader(data))
}

// parseText parses the line format:
//
//	# comment
//	down 100 100
//	move 180 100
//	up 300 100
//	drag 100,100 300,100 300,300
//	snap off
//	clear
func parseText(reader io.Reader) (*Script, error) {
	scanner := bufio.NewScanner(reader)
	sc := NewScript("")
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "down", "move", "up":
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: %s expects x and y", lineNo, fields[0])
			}
			x, y, err := parseCoords(fields[1], fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			action, _ := actionFor(strings.ToLower(fields[0]))
			sc.AddStep(Step{Action: action, X: x, Y: y, Line: lineNo})

		case "drag":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: drag expects at least two points", lineNo)
			}
			points := make([][2]float64, 0, len(fields)-1)
			for _, f := range fields[1:] {
				xs, ys, ok := strings.Cut(f, ",")
				if !ok {
					return nil, fmt.Errorf("line %d: point %q must be x,y", lineNo, f)
				}
				x, y, err := parseCoords(xs, ys)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				points = append(points, [2]float64{x, y})
			}
			expandDrag(sc, points, lineNo)

		case "clear":
			sc.AddStep(Step{Action: Clear, Line: lineNo})

		case "snap":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: snap expects on or off", lineNo)
			}
			enabled, err := parseSwitch(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			sc.AddStep(Step{Action: Snap, Enabled: enabled, Line: lineNo})

		default:
			return nil, fmt.Errorf("line %d: %w %q", lineNo, ErrUnknownEvent, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}

	return sc, nil
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonEvent struct {
	Type    string      `json:"type"`
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Enabled *bool       `json:"enabled,omitempty"`
	Points  []jsonPoint `json:"points,omitempty"`
}

type jsonScript struct {
	Name   string      `json:"name"`
	Events []jsonEvent `json:"events"`
}

// parseJSON accepts either {"name": ..., "events": [...]} or a bare event array
func parseJSON(data []byte) (*Script, error) {
	var doc jsonScript
	if data[0] == '[' {
		if err := sonic.Unmarshal(data, &doc.Events); err != nil {
			return nil, fmt.Errorf("failed to decode events: %w", err)
		}
	} else if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}

	sc := NewScript(doc.Name)
	for i, ev := range doc.Events {
		kind := strings.ToLower(ev.Type)
		switch kind {
		case "down", "move", "up":
			action, _ := actionFor(kind)
			sc.AddStep(Step{Action: action, X: ev.X, Y: ev.Y, Line: i})
		case "drag":
			if len(ev.Points) < 2 {
				return nil, fmt.Errorf("event %d: drag expects at least two points", i)
			}
			points := make([][2]float64, len(ev.Points))
			for j, p := range ev.Points {
				points[j] = [2]float64{p.X, p.Y}
			}
			expandDrag(sc, points, i)
		case "clear":
			sc.AddStep(Step{Action: Clear, Line: i})
		case "snap":
			if ev.Enabled == nil {
				return nil, fmt.Errorf("event %d: snap expects enabled", i)
			}
			sc.AddStep(Step{Action: Snap, Enabled: *ev.Enabled, Line: i})
		default:
			return nil, fmt.Errorf("event %d: %w %q", i, ErrUnknownEvent, ev.Type)
		}
	}

	return sc, nil
}

// expandDrag adds a press at the first point, moves every StepSize pixels
// along each leg and a release at the last point
func expandDrag(sc *Script, points [][2]float64, line int) {
	first := points[0]
	sc.AddStep(Step{Action: Down, X: first[0], Y: first[1], Line: line})

	cur := first
	for _, next := range points[1:] {
		dist := math.Hypot(next[0]-cur[0], next[1]-cur[1])
		steps := int(math.Ceil(dist / StepSize))
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			sc.AddStep(Step{
				Action: Move,
				X:      cur[0] + (next[0]-cur[0])*t,
				Y:      cur[1] + (next[1]-cur[1])*t,
				Line:   line,
			})
		}
		cur = next
	}

	sc.AddStep(Step{Action: Up, X: cur[0], Y: cur[1], Line: line})
}

func actionFor(name string) (Action, bool) {
	switch name {
	case "down":
		return Down, true
	case "move":
		return Move, true
	case "up":
		return Up, true
	case "clear":
		return Clear, true
	case "snap":
		return Snap, true
	}
	return Down, false
}

func parseCoords(xs, ys string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y %q: %w", ys, err)
	}
	return x, y, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch %q", s)
}
