package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic generation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second
	Seed     int64 // RNG seed; 0 means pick one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 24,
		Seed:     0,
	}
}

// SceneState represents the current state of a scene.
type SceneState struct {
	Completed  int  // Mazes finished since Reset
	Generation int  // Generation currently being carved
	Paused     bool // Whether the animation is paused
}

// Completion describes one finished maze generation.
type Completion struct {
	SceneID        string
	Generation     int
	Dimension      int
	CarveSteps     int
	BacktrackSteps int
	MaxStackDepth  int
	Seed           int64
	Ticks          uint64 // Frames spent on this generation
}

// StepResult is returned by Scene.Step after each frame.
type StepResult struct {
	State SceneState
	// Completions lists the generations that finished during this frame.
	Completions []Completion
}
