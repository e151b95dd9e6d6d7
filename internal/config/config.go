// Package config provides YAML-based configuration loading and size presets
// for the maze generator.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-mazegen/internal/maze"
)

// MazeConfig contains all configuration for maze generation and animation.
type MazeConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Start     StartConfig     `yaml:"start"`
	Animation AnimationConfig `yaml:"animation"`
}

// GridConfig defines the grid size and the range the user may resize within.
type GridConfig struct {
	BlockWiseCount int `yaml:"block_wise_count"`
	MinBlocks      int `yaml:"min_blocks"`
	MaxBlocks      int `yaml:"max_blocks"`
}

// StartConfig defines how the start cell is chosen and shown.
type StartConfig struct {
	Strategy  string `yaml:"strategy"` // "random" or "corner"
	Highlight bool   `yaml:"highlight"`
}

// AnimationConfig defines the frame rate and generator steps per frame.
type AnimationConfig struct {
	FPS          int `yaml:"fps"`
	StepsPerTick int `yaml:"steps_per_tick"`
}

// MaxStepsPerTick caps the speed-up control.
const MaxStepsPerTick = 64

// StartStrategy parses Start.Strategy.
func (c MazeConfig) StartStrategy() (maze.StartStrategy, error) {
	return maze.ParseStartStrategy(c.Start.Strategy)
}

// Validate checks the configuration for values the generator cannot use.
func (c MazeConfig) Validate() error {
	if _, err := maze.Dimension(c.Grid.BlockWiseCount); err != nil {
		return fmt.Errorf("config: grid.block_wise_count: %w", err)
	}
	if c.Grid.MinBlocks < 1 || c.Grid.MinBlocks%2 == 0 {
		return fmt.Errorf("config: grid.min_blocks must be odd and positive, got %d", c.Grid.MinBlocks)
	}
	if c.Grid.MaxBlocks < c.Grid.MinBlocks {
		return fmt.Errorf("config: grid.max_blocks (%d) is below grid.min_blocks (%d)",
			c.Grid.MaxBlocks, c.Grid.MinBlocks)
	}
	if c.Grid.BlockWiseCount < c.Grid.MinBlocks || c.Grid.BlockWiseCount > c.Grid.MaxBlocks {
		return fmt.Errorf("config: grid.block_wise_count %d outside [%d, %d]",
			c.Grid.BlockWiseCount, c.Grid.MinBlocks, c.Grid.MaxBlocks)
	}
	if _, err := c.StartStrategy(); err != nil {
		return fmt.Errorf("config: start.strategy: %w", err)
	}
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("config: animation.fps must be positive, got %d", c.Animation.FPS)
	}
	if c.Animation.StepsPerTick < 1 || c.Animation.StepsPerTick > MaxStepsPerTick {
		return fmt.Errorf("config: animation.steps_per_tick must be in [1, %d], got %d",
			MaxStepsPerTick, c.Animation.StepsPerTick)
	}
	return nil
}

// SizePreset represents a named grid size.
type SizePreset string

const (
	SizeSmall  SizePreset = "small"
	SizeMedium SizePreset = "medium"
	SizeLarge  SizePreset = "large"
	SizeHuge   SizePreset = "huge"
)

// BlocksForPreset returns the block-wise count for a size preset.
func BlocksForPreset(preset SizePreset) (int, bool) {
	switch preset {
	case SizeSmall:
		return 21, true
	case SizeMedium:
		return 55, true
	case SizeLarge:
		return 75, true
	case SizeHuge:
		return 101, true
	default:
		return 0, false
	}
}

// ApplySizePreset sets the grid size from a preset name.
func ApplySizePreset(cfg *MazeConfig, preset SizePreset) error {
	blocks, ok := BlocksForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown size preset %q", preset)
	}
	cfg.Grid.BlockWiseCount = blocks
	if cfg.Grid.MaxBlocks < blocks {
		cfg.Grid.MaxBlocks = blocks
	}
	return nil
}
