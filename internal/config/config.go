// Package config provides YAML-based snake configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/engine"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// SnakeConfig contains all configuration for a snake round.
type SnakeConfig struct {
	Board    BoardConfig `yaml:"board"`
	Food     FoodConfig  `yaml:"food"`
	Topology string      `yaml:"topology"`
	Speed    SpeedConfig `yaml:"speed"`
}

// BoardConfig sets the board size. Zero rows and cols fit the board to the
// screen.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Fit reports whether the board should be sized from the screen.
func (b BoardConfig) Fit() bool {
	return b.Rows == 0 && b.Cols == 0
}

// FoodConfig sets how many food items are kept on the board.
type FoodConfig struct {
	Count int `yaml:"count"`
}

// SpeedConfig sets the simulation pace.
type SpeedConfig struct {
	StepsPerSecond int `yaml:"steps_per_second"`
}

// Validate checks that the configuration can build an engine.
func (c SnakeConfig) Validate() error {
	if c.Board.Rows < 0 || c.Board.Cols < 0 {
		return fmt.Errorf("%w: board %dx%d has a negative side", ErrInvalid, c.Board.Rows, c.Board.Cols)
	}
	if (c.Board.Rows == 0) != (c.Board.Cols == 0) {
		return fmt.Errorf("%w: board %dx%d must set both sides or neither", ErrInvalid, c.Board.Rows, c.Board.Cols)
	}
	if c.Food.Count < 0 {
		return fmt.Errorf("%w: food count %d is negative", ErrInvalid, c.Food.Count)
	}
	if c.Speed.StepsPerSecond <= 0 {
		return fmt.Errorf("%w: steps_per_second %d must be positive", ErrInvalid, c.Speed.StepsPerSecond)
	}
	if _, err := engine.ParseTopology(c.Topology); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// EngineConfig converts the rule fields into an engine configuration.
// rng may be nil for a time-seeded source.
func (c SnakeConfig) EngineConfig(rng engine.Source) (engine.Config, error) {
	topo, err := engine.ParseTopology(c.Topology)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config: %w", err)
	}
	return engine.Config{
		Foods:    c.Food.Count,
		Topology: topo,
		Rand:     rng,
	}, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
	}
}

// StepsForPreset returns the steps per second for a preset, or 0 when the
// preset keeps the configured speed.
func StepsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 8
	case DifficultyNormal:
		return 15
	case DifficultyHard:
		return 25
	default:
		return 0
	}
}
