package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// helpHeight is the number of rows reserved below the game screen.
const helpHeight = 1

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	status     string // One-off message shown in place of help
	err        error
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game. The game is reset on
// Init.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	h := help.New()
	h.ShowAll = false

	m := GameModel{
		game:       game,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}
	m.screen = core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-helpHeight))
	m.err = m.reset()
	return m
}

// reset restarts the game for the current screen size.
func (m *GameModel) reset() error {
	cfg := m.config
	cfg.ScreenH = max(0, cfg.ScreenH-helpHeight)
	if err := m.game.Reset(cfg); err != nil {
		return err
	}
	m.gameState = m.game.State()
	return nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.game.Render(m.screen)
		path, err := SaveScreenshot(ScreenshotDir(), m.game.ID(), m.screen, time.Now())
		if err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused || m.err != nil) {
		m.backToMenu = true
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-helpHeight))

	// Resizing restarts a running round so the board fits again.
	if !m.gameState.GameOver {
		m.err = m.reset()
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.err == nil {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.err = result.State.Err
	}
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// View renders the game screen and a help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("\n  %s could not start: %v\n\n  esc: menu  q: quit\n", m.game.Title(), m.err)
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	footer := m.status
	if footer == "" {
		footer = m.help.View(m.keyMapper.Keys())
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that prevented the game from starting, if any.
func (m GameModel) Err() error {
	return m.err
}

// ScreenshotDir returns ~/.snake/screenshots.
func ScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".snake", "screenshots")
	}
	return filepath.Join(home, ".snake", "screenshots")
}

// SaveScreenshot writes the plain-text screen to dir and returns the file path.
func SaveScreenshot(dir, gameID string, s *core.Screen, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: create screenshot dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.txt", gameID, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(s.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("tui: write screenshot: %w", err)
	}
	return path, nil
}

// Run plays a single game in the local terminal.
func Run(game registry.Game, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, cfg)
	if err := model.Err(); err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
