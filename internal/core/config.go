package core

// RuntimeConfig is what a front end hands a game on Reset. The screen size
// scales the drawing and Seed fixes the random sequence.
type RuntimeConfig struct {
	ScreenW  int   // columns
	ScreenH  int   // rows
	TickRate int   // steps per second
	Seed     int64 // 0 lets the front end pick one
}

// DefaultConfig is an 80×24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is what front ends need to know about a game after a step.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by every Step.
type StepResult struct {
	State GameState
}
