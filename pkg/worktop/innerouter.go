package worktop

import (
	"fmt"

	"github.com/philipparndt/workdraw/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// EdgeResolver decides which length-wise edges of a worktop face into a corner
type EdgeResolver interface {
	// Initial returns the labels for a worktop drawn without a turn
	Initial(dir geometry.Direction) EdgeLabels
	// Turn returns the labels for the worktops before and after a turn.
	// ok is false for straight or reversing direction pairs.
	Turn(prev, next geometry.Direction) (prevLabels, nextLabels EdgeLabels, ok bool)
}

// Resolver names
const (
	StrategyTable   = "table"
	StrategyWinding = "winding"
)

// NewResolver returns the resolver for a strategy name
func NewResolver(strategy string) (EdgeResolver, error) {
	switch strategy {
	case "", StrategyTable:
		return TableResolver{}, nil
	case StrategyWinding:
		return WindingResolver{}, nil
	}
	return nil, fmt.Errorf("unknown edge strategy %q", strategy)
}

type turn struct {
	prev, next geometry.Direction
}

type turnLabels struct {
	prev, next EdgeLabels
}

var turnTable = map[turn]turnLabels{
	{geometry.North, geometry.East}: {Labels(Left, Outer, Right, Inner), Labels(Top, Outer, Bottom, Inner)},
	{geometry.North, geometry.West}: {Labels(Left, Inner, Right, Outer), Labels(Top, Outer, Bottom, Inner)},
	{geometry.South, geometry.East}: {Labels(Left, Outer, Right, Inner), Labels(Top, Inner, Bottom, Outer)},
	{geometry.South, geometry.West}: {Labels(Left, Inner, Right, Outer), Labels(Top, Inner, Bottom, Outer)},
	{geometry.East, geometry.North}: {Labels(Top, Inner, Bottom, Outer), Labels(Left, Inner, Right, Outer)},
	{geometry.East, geometry.South}: {Labels(Top, Outer, Bottom, Inner), Labels(Left, Inner, Right, Outer)},
	{geometry.West, geometry.North}: {Labels(Top, Inner, Bottom, Outer), Labels(Left, Outer, Right, Inner)},
	{geometry.West, geometry.South}: {Labels(Top, Outer, Bottom, Inner), Labels(Left, Outer, Right, Inner)},
}

// initialLabels covers a worktop that never turned
func initialLabels(dir geometry.Direction) EdgeLabels {
	switch dir {
	case geometry.South:
		return Labels(Left, Inner, Right, Outer)
	case geometry.North:
		return Labels(Left, Outer, Right, Inner)
	}
	return Labels(Top, Outer, Bottom, Inner)
}

// TableResolver looks labels up in a fixed table of the eight possible turns
type TableResolver struct{}

func (TableResolver) Initial(dir geometry.Direction) EdgeLabels {
	return initialLabels(dir)
}

func (TableResolver) Turn(prev, next geometry.Direction) (EdgeLabels, EdgeLabels, bool) {
	l, ok := turnTable[turn{prev, next}]
	return l.prev, l.next, ok
}

// WindingResolver derives labels from the turn's winding: the side of each
// worktop toward the turn is inner.
type WindingResolver struct{}

func (WindingResolver) Initial(dir geometry.Direction) EdgeLabels {
	return initialLabels(dir)
}

func (WindingResolver) Turn(prev, next geometry.Direction) (EdgeLabels, EdgeLabels, bool) {
	a, b := vec(prev), vec(next)
	// Screen y grows downward, so a positive cross product is a clockwise turn.
	cross := r2.Cross(a, b)
	if cross == 0 {
		return EdgeLabels{}, EdgeLabels{}, false
	}
	clockwise := cross > 0
	return sideLabels(a, clockwise), sideLabels(b, clockwise), true
}

func vec(d geometry.Direction) r2.Vec {
	u := d.Unit()
	return r2.Vec{X: float64(u.X), Y: float64(u.Y)}
}

// sideLabels marks the side of travel direction v facing the turn as inner
func sideLabels(v r2.Vec, clockwise bool) EdgeLabels {
	var toward r2.Vec
	if clockwise {
		toward = r2.Vec{X: -v.Y, Y: v.X}
	} else {
		toward = r2.Vec{X: v.Y, Y: -v.X}
	}
	inner := sideFacing(toward)
	away := sideFacing(r2.Scale(-1, toward))
	return Labels(inner, Inner, away, Outer)
}

func sideFacing(v r2.Vec) Side {
	switch {
	case v.X < 0:
		return Left
	case v.X > 0:
		return Right
	case v.Y < 0:
		return Top
	}
	return Bottom
}
