package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in each search directory.
const FileName = "snake.yaml"

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
// Fields missing from a file keep their default values. A custom path must
// exist and parse; the other locations are skipped when unreadable.
func LoadSnake(customPath string) (SnakeConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	if p := userConfigPath(FileName); p != "" {
		if cfg, err := loadFile(p); err == nil {
			return cfg, cfg.Validate()
		}
	}

	if cfg, err := loadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, cfg.Validate()
	}

	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil
	}
	return cfg, nil
}

func loadFile(path string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Only the speed changes; board and food settings are left alone.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if steps := StepsForPreset(preset); steps > 0 {
		cfg.Speed.StepsPerSecond = steps
	}
}

// ConfigDir returns the user config directory (~/.snake/configs).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs")
}

func userConfigPath(filename string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// WriteDefault writes the embedded default configuration to path,
// creating parent directories. Existing files are not overwritten.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(defaultSnakeYAML); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
