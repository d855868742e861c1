package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagConfigOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the snake configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default snake.yaml",
	Long: `Writes the built-in default configuration so it can be edited.
An existing file is never overwritten.

Examples:
  snake config init                      # ~/.snake/configs/snake.yaml
  snake config init --out ./configs/snake.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfig(flagConfigOut)
		if err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&flagConfigOut, "out", "", "Destination file (default: ~/.snake/configs/snake.yaml)")
	configCmd.AddCommand(configInitCmd)
}

// initConfig writes the default configuration to path, or to the user
// config directory when path is empty, and checks that it loads back.
func initConfig(path string) (string, error) {
	if path == "" {
		dir := config.ConfigDir()
		if dir == "" {
			return "", fmt.Errorf("config: cannot resolve home directory, use --out")
		}
		path = filepath.Join(dir, config.FileName)
	}
	if err := config.WriteDefault(path); err != nil {
		return "", err
	}
	if _, err := config.LoadSnake(path); err != nil {
		return "", err
	}
	return path, nil
}
