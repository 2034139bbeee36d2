package geometry

import "fmt"

// Direction is one of the four compass directions a drawn segment can travel in.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Axis is the orientation a direction lies on.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Directions lists all directions in clockwise order starting at North
var Directions = []Direction{North, East, South, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// Short returns the single letter abbreviation (N, E, S, W)
func (d Direction) Short() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return "?"
}

// Axis returns Horizontal for East/West and Vertical for North/South
func (d Direction) Axis() Axis {
	if d == East || d == West {
		return Horizontal
	}
	return Vertical
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Unit returns the screen space step for one pixel of travel
func (d Direction) Unit() Point {
	switch d {
	case North:
		return Point{Y: -1}
	case East:
		return Point{X: 1}
	case South:
		return Point{Y: 1}
	case West:
		return Point{X: -1}
	}
	return Point{}
}

// IsPerpendicular reports whether the two directions lie on different axes
func (d Direction) IsPerpendicular(other Direction) bool {
	return d.Axis() != other.Axis()
}

// DirectionOf returns the direction along axis matching the sign of delta.
// A positive delta is East or South.
func DirectionOf(axis Axis, delta int) Direction {
	if axis == Horizontal {
		if delta < 0 {
			return West
		}
		return East
	}
	if delta < 0 {
		return North
	}
	return South
}

// ParseDirection parses a direction name or its abbreviation
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "n", "N", "north", "North":
		return North, true
	case "e", "E", "east", "East":
		return East, true
	case "s", "S", "south", "South":
		return South, true
	case "w", "W", "west", "West":
		return West, true
	}
	return North, false
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Perpendicular returns the other axis
func (a Axis) Perpendicular() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MarshalText encodes the axis by name
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	v, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("unknown direction %q", text)
	}
	*d = v
	return nil
}

// UnmarshalText decodes an axis name
func (a *Axis) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal":
		*a = Horizontal
	case "vertical":
		*a = Vertical
	default:
		return fmt.Errorf("unknown axis %q", text)
	}
	return nil
}
