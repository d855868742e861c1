// snake is a terminal snake game with SSH and websocket front ends.
//
// Usage:
//
//	snake list              - List available boards
//	snake play [game]       - Play a board (default: snake)
//	snake menu              - Pick a board and speed interactively
//	snake serve             - Start SSH server for remote play
//	snake web               - Stream games to browsers over websockets
//	snake sim               - Run a headless game with a random policy
//	snake config init       - Write the default snake.yaml
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a custom snake.yaml
//	--difficulty <preset> - Speed preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - a turn-based snake game for your terminal",
	Long: `Snake runs a grid snake game in the terminal, over SSH or in the browser.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board and speed picker
  serve    - Start SSH server for remote play
  web      - Start websocket server for browser renderers
  sim      - Run a headless game
  config   - Write the default configuration

Examples:
  snake play
  snake play snake_torus --difficulty hard
  snake serve --ssh :2222
  snake web --addr :8080
  snake sim --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Speed preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the snake configuration from the global flags.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)
	return cfg, nil
}

// applyGameFlags hands the global flags to the game package before any
// game is created.
func applyGameFlags() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	snake.SetConfigPath(flagConfig)
	snake.SetDifficultyPreset(preset)
	return nil
}
