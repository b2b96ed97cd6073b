package core

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one from the wall clock
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary the platform polls after every step.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool

	// Game-specific counters shown on the scoreboard; zero when unused.
	Pieces  int
	Cleared int
	Level   int
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Locked and Cleared count what this step fixed into the well.
	Locked  int
	Cleared int
}
