package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the loaded configuration.
const (
	EnvBlocks = "MAZEGEN_BLOCKS"
	EnvStart  = "MAZEGEN_START"
	EnvFPS    = "MAZEGEN_FPS"
)

// ApplyEnv overrides cfg from the process environment and, for variables
// not set there, from envFile (a .env file; a missing file is ignored).
func ApplyEnv(cfg *MazeConfig, envFile string) error {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("config: cannot read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	if v, ok := lookup(EnvBlocks); ok {
		blocks, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvBlocks, err)
		}
		cfg.Grid.BlockWiseCount = blocks
		if cfg.Grid.MaxBlocks < blocks {
			cfg.Grid.MaxBlocks = blocks
		}
	}
	if v, ok := lookup(EnvStart); ok {
		cfg.Start.Strategy = v
	}
	if v, ok := lookup(EnvFPS); ok {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvFPS, err)
		}
		cfg.Animation.FPS = fps
	}

	return cfg.Validate()
}
