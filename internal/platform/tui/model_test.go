package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7}
}

func newSnake(t *testing.T) *snake.Game {
	t.Helper()
	g := snake.NewTorus()
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Rows: 6, Cols: 6}
	cfg.Food.Count = 0
	g.UseConfig(cfg)
	return g
}

func send(m GameModel, msgs ...tea.Msg) GameModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(GameModel)
	}
	return m
}

func TestGameModelStartsGame(t *testing.T) {
	m := NewGameModel(newSnake(t), testRuntime())
	if err := m.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	view := m.View()
	if !strings.Contains(view, "O") {
		t.Errorf("expected the snake head in view:\n%s", view)
	}
	if !strings.Contains(view, "pause") {
		t.Errorf("expected help line in view:\n%s", view)
	}
}

func TestGameModelPauseAndBack(t *testing.T) {
	m := NewGameModel(newSnake(t), testRuntime())

	// Back is ignored while playing.
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc}, TickMsg(time.Now()))
	if m.BackToMenu() {
		t.Fatal("back should be ignored during play")
	}

	m = send(m, runeKey('p'), TickMsg(time.Now()))
	if !m.gameState.Paused {
		t.Fatal("expected paused state")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should be accepted while paused")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(newSnake(t), testRuntime())
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(GameModel).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelReportsConfigError(t *testing.T) {
	g := snake.NewWalls()
	cfg := config.DefaultSnakeConfig()
	cfg.Speed.StepsPerSecond = 0
	g.UseConfig(cfg)

	m := NewGameModel(g, testRuntime())
	if m.Err() == nil {
		t.Fatal("expected config error")
	}
	if !strings.Contains(m.View(), "could not start") {
		t.Errorf("expected error view, got %q", m.View())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a failed game")
	}
}

// failingGame starts normally and reports err from its first step.
type failingGame struct {
	err error
}

func (g *failingGame) ID() string                     { return "failing" }
func (g *failingGame) Title() string                  { return "Failing" }
func (g *failingGame) Reset(core.RuntimeConfig) error { return nil }
func (g *failingGame) Render(*core.Screen)            {}
func (g *failingGame) State() core.GameState          { return core.GameState{Err: g.err} }

func (g *failingGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.State()}
}

func TestGameModelReportsStepError(t *testing.T) {
	g := &failingGame{}
	m := NewGameModel(g, testRuntime())
	if m.Err() != nil {
		t.Fatalf("Err: %v", m.Err())
	}

	g.err = errors.New("restart failed")
	m = send(m, TickMsg(time.Now()))
	if m.Err() == nil {
		t.Fatal("expected the step error to stop the model")
	}
	if !strings.Contains(m.View(), "restart failed") {
		t.Errorf("expected error view, got %q", m.View())
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "abc")

	path, err := SaveScreenshot(dir, "snake", s, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))
	if err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}
	if filepath.Base(path) != "snake_20240506_070809.txt" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "abc\n   \n" {
		t.Errorf("content = %q", data)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 1)
	s.SetColored(0, 0, 'O', core.ColorSnakeHead)
	s.SetColored(1, 0, 'o', core.ColorSnakeBody)
	s.SetColored(3, 0, '*', core.ColorFood)

	out := RenderScreen(s)
	for _, want := range []string{"O", "o", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output %q missing %q", out, want)
		}
	}
}
