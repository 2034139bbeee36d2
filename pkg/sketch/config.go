package sketch

import (
	"errors"
	"fmt"

	"github.com/philipparndt/workdraw/pkg/analysis"
	"github.com/philipparndt/workdraw/pkg/geometry"
	"github.com/philipparndt/workdraw/pkg/worktop"
)

const (
	// DefaultInitialThreshold is the travel in pixels needed to commit a direction
	DefaultInitialThreshold = 60
	// DefaultDirectionChangeThreshold is the perpendicular travel that starts a new segment
	DefaultDirectionChangeThreshold = 70
)

// Config holds the tunable parameters of a drawing session
type Config struct {
	GridSize                 int     `yaml:"gridSize" json:"gridSize"`
	SnapToGrid               bool    `yaml:"snapToGrid" json:"snapToGrid"`
	InitialThreshold         int     `yaml:"initialThreshold" json:"initialThreshold"`
	DirectionChangeThreshold int     `yaml:"directionChangeThreshold" json:"directionChangeThreshold"`
	MinSegmentLength         float64 `yaml:"minSegmentLength" json:"minSegmentLength"`
	EdgeStrategy             string  `yaml:"edgeStrategy" json:"edgeStrategy"`
	ConnectionCounting       string  `yaml:"connectionCounting" json:"connectionCounting"`
}

// DefaultConfig returns the standard drawing parameters
func DefaultConfig() Config {
	return Config{
		GridSize:                 geometry.DefaultGridSize,
		SnapToGrid:               true,
		InitialThreshold:         DefaultInitialThreshold,
		DirectionChangeThreshold: DefaultDirectionChangeThreshold,
		MinSegmentLength:         worktop.MinSegmentLength,
		EdgeStrategy:             worktop.StrategyTable,
		ConnectionCounting:       analysis.CountDistinct,
	}
}

// Validate reports every invalid parameter
func (c Config) Validate() error {
	var errs []error
	if c.GridSize <= 0 {
		errs = append(errs, fmt.Errorf("grid size must be positive, got %d", c.GridSize))
	}
	if c.InitialThreshold <= 0 {
		errs = append(errs, fmt.Errorf("initial threshold must be positive, got %d", c.InitialThreshold))
	}
	if c.DirectionChangeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("direction change threshold must be positive, got %d", c.DirectionChangeThreshold))
	}
	if c.MinSegmentLength < 0 {
		errs = append(errs, fmt.Errorf("minimum segment length must not be negative, got %v", c.MinSegmentLength))
	}
	if _, err := worktop.NewResolver(c.EdgeStrategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := analysis.NewCalculator(c.ConnectionCounting); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
