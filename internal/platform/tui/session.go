package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

type sessionStage int

const (
	stageMenu sessionStage = iota
	stageDifficulty
	stageGame
)

// SessionModel manages the full flow: menu -> speed -> game -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	id         string
	username   string
	config     core.RuntimeConfig
	stage      sessionStage
	menu       MenuModel
	difficulty DifficultyModel
	gameID     string
	gameModel  *GameModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		id:       uuid.New().String(),
		username: username,
		config:   cfg,
		menu:     NewMenuModel(cfg),
	}
}

// ID returns the session identifier.
func (m SessionModel) ID() string {
	return m.id
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.stage {
	case stageGame:
		return m.updateGame(msg)
	case stageDifficulty:
		return m.updateDifficulty(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Selection makes the menu return tea.Quit; it is dropped here so the
	// session keeps running.
	if selected := m.menu.Selected(); selected != nil {
		m.gameID = selected.GameID
		m.difficulty = NewDifficultyModel(selected.Title, m.config.ScreenW, m.config.ScreenH)
		m.stage = stageDifficulty
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.difficulty.Update(msg)
	if d, ok := next.(DifficultyModel); ok {
		m.difficulty = d
	}

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.difficulty.WantsBack():
		return m.toMenu()
	case m.difficulty.Selected() != nil:
		game, err := registry.Create(m.gameID)
		if err != nil {
			return m.toMenu()
		}
		cfg := m.config
		cfg.Preset = string(*m.difficulty.Selected())
		gm := NewGameModel(game, cfg)
		m.gameModel = &gm
		m.stage = stageGame
		return m, gm.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.gameModel = &gm
	}

	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.stage = stageMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the current stage.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.stage {
	case stageGame:
		return m.gameModel.View()
	case stageDifficulty:
		return m.difficulty.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu flow in the local terminal.
func RunSession(cfg core.RuntimeConfig, username string) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, username),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
