package config

import "math"

// DifficultyManager maps a run's progress onto a level in [0, 1] and scales
// wall speed, gap size and spacing by it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64 // level at the start of a run
}

// NewDifficultyManager returns a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		floor: math.Min(math.Max(cfg.InitialLevel, 0), 1),
	}
}

// IsEnabled reports whether the level moves during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level interpolates from the initial level to 1 as score or ticks, depending
// on the progression type, approach MaxAt.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}

	var done float64
	switch d.cfg.Progression.Type {
	case "score":
		done = float64(score)
	case "time":
		done = float64(ticks)
	default:
		return d.floor
	}

	span := float64(max(d.cfg.Progression.MaxAt, 1))
	frac := math.Min(math.Max(done/span, 0), 1)
	return d.floor + frac*(1-d.floor)
}

// TicksPerColumn divides base by 1+level*SpeedMultiplier. It never returns
// less than 1.
func (d *DifficultyManager) TicksPerColumn(base, score, ticks int) int {
	speed := 1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
	return max(int(math.Round(float64(base)/speed)), 1)
}

// GapSize shrinks base by up to GapReduction rows, stopping at minGap.
func (d *DifficultyManager) GapSize(base, minGap, score, ticks int) int {
	return d.shrink(base, minGap, d.cfg.Scaling.GapReduction, score, ticks)
}

// Spacing shrinks base by up to SpacingReduction columns, stopping at 1.
func (d *DifficultyManager) Spacing(base, score, ticks int) int {
	return d.shrink(base, 1, d.cfg.Scaling.SpacingReduction, score, ticks)
}

func (d *DifficultyManager) shrink(base, floor, by, score, ticks int) int {
	cut := int(d.Level(score, ticks) * float64(by))
	return max(base-cut, floor)
}
