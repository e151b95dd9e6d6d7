package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the built-in configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Grid: GridConfig{
			BlockWiseCount: 55,
			MinBlocks:      3,
			MaxBlocks:      201,
		},
		Start: StartConfig{
			Strategy:  "random",
			Highlight: true,
		},
		Animation: AnimationConfig{
			FPS:          24,
			StepsPerTick: 1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
