package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hardcoded snake configuration, used when
// no YAML source can be read.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Food:     FoodConfig{Count: 1},
		Topology: "walls",
		Speed:    SpeedConfig{StepsPerSecond: 15},
	}
}
