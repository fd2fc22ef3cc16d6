// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the LED matrix flappy game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Walls      FlappyWalls      `yaml:"walls"`
	Bird       FlappyBird       `yaml:"bird"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines the bird's vertical motion.
// All values are in display heights per tick, so 1.0 is the full matrix.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`        // Subtracted from vy every tick without input
	FlapImpulse  float64 `yaml:"flap_impulse"`   // Speed set by a flap, multiplied by the direction
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal downward speed
	StartY       float64 `yaml:"start_y"`        // Bird height on reset, 0 = bottom, 1 = top
}

// FlappyWalls defines how walls scroll and where their gaps are.
type FlappyWalls struct {
	TicksPerColumn int `yaml:"ticks_per_column"` // Ticks between one-column scroll steps
	Spacing        int `yaml:"spacing"`          // Empty columns between the two walls
	GapSize        int `yaml:"gap_size"`         // Open rows in a fresh wall
	MinGapSize     int `yaml:"min_gap_size"`     // Smallest gap difficulty may shrink to
}

// FlappyBird defines the bird's fixed column.
type FlappyBird struct {
	Column int `yaml:"column"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Extra scroll speed at max difficulty (1.0 = twice as fast)
	GapReduction     int     `yaml:"gap_reduction"`     // Rows removed from the gap at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Columns removed between walls at max difficulty
}

// matrixRows mirrors the display height; kept here so config has no display import.
const matrixRows = 8

// maxSpacing keeps two queued walls apart within a byte-sized x position.
const maxSpacing = 255 - 2*matrixRows

// Validate reports every impossible value in the config.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity))
	}
	if c.Physics.FlapImpulse <= 0 {
		errs = append(errs, fmt.Errorf("physics.flap_impulse must be positive, got %v", c.Physics.FlapImpulse))
	}
	if c.Physics.MaxFallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_fall_speed must be positive, got %v", c.Physics.MaxFallSpeed))
	}
	if c.Physics.StartY < 0 || c.Physics.StartY > 1 {
		errs = append(errs, fmt.Errorf("physics.start_y must be within [0, 1], got %v", c.Physics.StartY))
	}
	if c.Walls.TicksPerColumn < 1 {
		errs = append(errs, fmt.Errorf("walls.ticks_per_column must be at least 1, got %d", c.Walls.TicksPerColumn))
	}
	if c.Walls.Spacing < 1 || c.Walls.Spacing > maxSpacing {
		errs = append(errs, fmt.Errorf("walls.spacing must be within [1, %d], got %d", maxSpacing, c.Walls.Spacing))
	}
	if c.Walls.MinGapSize < 1 || c.Walls.MinGapSize >= matrixRows {
		errs = append(errs, fmt.Errorf("walls.min_gap_size must be within [1, %d], got %d", matrixRows-1, c.Walls.MinGapSize))
	}
	if c.Walls.GapSize < c.Walls.MinGapSize || c.Walls.GapSize >= matrixRows {
		errs = append(errs, fmt.Errorf("walls.gap_size must be within [min_gap_size, %d], got %d", matrixRows-1, c.Walls.GapSize))
	}
	if c.Bird.Column < 0 || c.Bird.Column >= matrixRows {
		errs = append(errs, fmt.Errorf("bird.column must be within [0, %d], got %d", matrixRows-1, c.Bird.Column))
	}
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not score, time or none", c.Difficulty.Progression.Type))
	}
	d := c.Difficulty
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be within [0, 1], got %v", d.InitialLevel))
	}
	if d.Progression.MaxAt < 0 {
		errs = append(errs, fmt.Errorf("difficulty.progression.max_at must not be negative, got %d", d.Progression.MaxAt))
	}
	if d.Scaling.SpeedMultiplier < 0 {
		errs = append(errs, fmt.Errorf("difficulty.scaling.speed_multiplier must not be negative, got %v", d.Scaling.SpeedMultiplier))
	}
	if d.Scaling.GapReduction < 0 {
		errs = append(errs, fmt.Errorf("difficulty.scaling.gap_reduction must not be negative, got %d", d.Scaling.GapReduction))
	}
	if d.Scaling.SpacingReduction < 0 {
		errs = append(errs, fmt.Errorf("difficulty.scaling.spacing_reduction must not be negative, got %d", d.Scaling.SpacingReduction))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name; the empty string means "use the file as is".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
