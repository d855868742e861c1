package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Platform ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	ConfigPath string // Optional game config file
	Preset     string // Optional difficulty preset
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Length   int   // Current snake length
	GameOver bool  // Whether the game has ended
	Won      bool  // Whether the game ended with a full board
	Paused   bool  // Whether the game is paused
	Err      error // Error that stopped the game, if any
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State GameState
	Moved bool // Whether the simulation advanced this tick
}
