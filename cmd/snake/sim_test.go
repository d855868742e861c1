package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

func simConfig(rows, cols int, topology string) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Rows: rows, Cols: cols}
	cfg.Topology = topology
	cfg.Food.Count = 2
	return cfg
}

func TestSimulateIsDeterministic(t *testing.T) {
	logger := log.New(io.Discard)
	cfg := simConfig(8, 8, "torus")

	a, err := simulate(cfg, 42, 5000, logger)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := simulate(cfg, 42, 5000, logger)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if a != b {
		t.Errorf("same seed gave different runs: %+v vs %+v", a, b)
	}
}

func TestSimulateStopsAtMaxSteps(t *testing.T) {
	// With no food on a torus the snake never grows and never dies.
	cfg := simConfig(6, 6, "torus")
	cfg.Food.Count = 0

	res, err := simulate(cfg, 1, 250, log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Ticks != 250 || res.Status != engine.Ongoing || res.Length != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestSimulateWallsTerminates(t *testing.T) {
	res, err := simulate(simConfig(5, 5, "walls"), 7, 100000, log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !res.Status.Terminal() {
		t.Errorf("random play on a walled board should end, got %+v", res)
	}
}

func TestSimulateFitBoard(t *testing.T) {
	res, err := simulate(simConfig(0, 0, "torus"), 3, 10, log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Rows != 20 || res.Cols != 30 {
		t.Errorf("board = %dx%d, expected 20x30", res.Rows, res.Cols)
	}
}

func TestSimulateRejectsInvalidConfig(t *testing.T) {
	cfg := simConfig(5, 5, "moebius")
	if _, err := simulate(cfg, 1, 10, log.New(io.Discard)); err == nil {
		t.Error("expected error for unknown topology")
	}
}
