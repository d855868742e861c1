// Package snake adapts the simulation engine to the platform's Game
// interface: input buffering, pacing and diff-driven rendering.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const (
	hudHeight = 2 // HUD line plus separator
	minSide   = 4 // Smallest board side that still fits a round
)

// Game runs one engine round at a time on a fixed topology.
type Game struct {
	id       string
	title    string
	topology engine.Topology

	override *config.SnakeConfig
	cfg      config.SnakeConfig
	rng      *rand.Rand
	eng      *engine.Engine

	// board mirrors the engine grid and is only ever updated from diffs.
	board []engine.Occupant
	head  engine.Coord

	pending      engine.Direction
	ticksPerStep int
	ticker       int
	tick         uint64

	screenW  int
	screenH  int
	tickRate int
	offsetX  int
	offsetY  int
	paused   bool
	tooSmall bool
	err      error // last failed restart
}

// Package-level settings shared by every instance, set from the command line.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML file used by subsequent resets.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the speed preset used by subsequent resets.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// NewWalls creates a game whose board edges are fatal.
func NewWalls() *Game {
	return &Game{id: "snake", title: "Snake", topology: engine.TopologyWalls}
}

// NewTorus creates a game whose board wraps at the edges.
func NewTorus() *Game {
	return &Game{id: "snake_torus", title: "Snake (Torus)", topology: engine.TopologyTorus}
}

func init() {
	registry.Register("snake", func() registry.Game { return NewWalls() })
	registry.Register("snake_torus", func() registry.Game { return NewTorus() })
}

// UseConfig pins the configuration instead of loading it on every reset.
func (g *Game) UseConfig(c config.SnakeConfig) {
	g.override = &c
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a new round.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := g.loadConfig(rc)
	if err != nil {
		return err
	}

	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.err = nil
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.ticksPerStep = max(1, (g.tickRate+cfg.Speed.StepsPerSecond/2)/cfg.Speed.StepsPerSecond)

	return g.start()
}

func (g *Game) loadConfig(rc core.RuntimeConfig) (config.SnakeConfig, error) {
	if g.override != nil {
		return *g.override, g.override.Validate()
	}

	path := configPath
	if rc.ConfigPath != "" {
		path = rc.ConfigPath
	}
	cfg, err := config.LoadSnake(path)
	if err != nil {
		return cfg, fmt.Errorf("snake: %w", err)
	}

	preset := difficultyPreset
	if rc.Preset != "" {
		if preset, err = config.ParsePreset(rc.Preset); err != nil {
			return cfg, fmt.Errorf("snake: %w", err)
		}
	}
	config.ApplySnakePreset(&cfg, preset)
	return cfg, nil
}

// start builds a fresh engine from the current settings and paints the
// initial placement.
func (g *Game) start() error {
	g.eng = nil
	g.board = nil
	g.pending = engine.DirNone
	g.ticker = 0
	g.tick = 0
	g.paused = false

	rows, cols := g.boardSize()
	g.tooSmall = rows < 1 || cols < 1 || rows+2 > g.screenH-hudHeight || cols+2 > g.screenW
	if g.cfg.Board.Fit() {
		g.tooSmall = rows < minSide || cols < minSide
	}
	if g.tooSmall {
		return nil
	}

	ecfg, err := g.cfg.EngineConfig(g.rng)
	if err != nil {
		return err
	}
	ecfg.Topology = g.topology

	eng, changes, err := engine.New(rows, cols, ecfg)
	if err != nil {
		return fmt.Errorf("snake: %w", err)
	}

	g.eng = eng
	g.board = make([]engine.Occupant, rows*cols)
	g.offsetX = (g.screenW - cols) / 2
	g.offsetY = hudHeight + 1 + (g.screenH-hudHeight-rows-2)/2
	g.apply(changes)
	return nil
}

// boardSize returns the configured size, or the largest board that fits
// inside a border below the HUD.
func (g *Game) boardSize() (rows, cols int) {
	if !g.cfg.Board.Fit() {
		return g.cfg.Board.Rows, g.cfg.Board.Cols
	}
	return g.screenH - hudHeight - 2, g.screenW - 2
}

// apply paints a diff into the board buffer.
func (g *Game) apply(changes []engine.Change) {
	cols := g.eng.Cols()
	for _, ch := range changes {
		g.board[ch.Coord.Row*cols+ch.Coord.Col] = ch.Occupant
		if ch.Occupant == engine.Snake {
			g.head = ch.Coord
		}
	}
}

// Step advances by one platform tick. The engine moves once every
// ticksPerStep ticks using the last steering request since its previous move.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	over := g.eng.Status().Terminal()
	if in.Has(core.ActionRestart) && over {
		g.err = g.start()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if over || g.paused {
		return core.StepResult{State: g.State()}
	}

	if d := directionFor(in.Steer); d != engine.DirNone {
		g.pending = d
	}

	g.ticker++
	if g.ticker < g.ticksPerStep {
		return core.StepResult{State: g.State()}
	}
	g.ticker = 0

	changes, err := g.eng.Step(g.pending)
	g.pending = engine.DirNone
	if err != nil {
		return core.StepResult{State: g.State()}
	}
	g.apply(changes)
	return core.StepResult{State: g.State(), Moved: true}
}

func directionFor(a core.Action) engine.Direction {
	switch a {
	case core.ActionUp:
		return engine.DirUp
	case core.ActionDown:
		return engine.DirDown
	case core.ActionLeft:
		return engine.DirLeft
	case core.ActionRight:
		return engine.DirRight
	default:
		return engine.DirNone
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{Err: g.err}
	}
	st := g.eng.Status()
	return core.GameState{
		Length:   g.eng.Len(),
		GameOver: st.Terminal(),
		Won:      st == engine.Win,
		Paused:   g.paused,
		Err:      g.err,
	}
}

// overridesConfig reports whether the pinned topology differs from the
// configured one.
func (g *Game) overridesConfig() bool {
	topo, err := engine.ParseTopology(g.cfg.Topology)
	return err == nil && topo != g.topology
}
