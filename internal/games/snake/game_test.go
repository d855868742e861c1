package snake

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func testConfig(rows, cols, foods int) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Rows: rows, Cols: cols}
	cfg.Food.Count = foods
	cfg.Speed.StepsPerSecond = 15
	return cfg
}

func runtime(w, h int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 60, Seed: seed}
}

func newGame(t *testing.T, g *Game, cfg config.SnakeConfig, rc core.RuntimeConfig) *Game {
	t.Helper()
	g.UseConfig(cfg)
	if err := g.Reset(rc); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// stepMoves runs platform ticks until the engine has moved n times.
func stepMoves(g *Game, n int, in core.InputFrame) {
	for moved := 0; moved < n; {
		if g.Step(in).Moved {
			moved++
		}
		in = core.NewInputFrame()
	}
}

func TestRegisteredVariants(t *testing.T) {
	tests := []struct {
		id       string
		topology engine.Topology
	}{
		{"snake", engine.TopologyWalls},
		{"snake_torus", engine.TopologyTorus},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			rg, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			g := newGame(t, rg.(*Game), testConfig(6, 6, 1), runtime(40, 20, 1))
			if g.ID() != tc.id {
				t.Errorf("ID() = %q", g.ID())
			}
			if g.eng.Topology() != tc.topology {
				t.Errorf("topology = %v, expected %v", g.eng.Topology(), tc.topology)
			}
		})
	}
}

func TestResetFitsBoardToScreen(t *testing.T) {
	g := newGame(t, NewTorus(), testConfig(0, 0, 1), runtime(30, 14, 1))

	if g.eng.Rows() != 10 || g.eng.Cols() != 28 {
		t.Errorf("board = %dx%d, expected 10x28", g.eng.Rows(), g.eng.Cols())
	}
}

func TestResetTooSmall(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SnakeConfig
	}{
		{"fit", testConfig(0, 0, 1)},
		{"fixed", testConfig(20, 20, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, NewWalls(), tc.cfg, runtime(30, 7, 1))
			if !g.Snapshot().TooSmall {
				t.Fatal("expected too small")
			}
			if res := g.Step(frame(core.ActionUp)); res.Moved {
				t.Error("too small game should not move")
			}

			dst := core.NewScreen(30, 7)
			g.Render(dst)
			if !strings.Contains(dst.String(), "Window") {
				t.Errorf("expected too small overlay, got:\n%s", dst.String())
			}
		})
	}
}

func TestResetRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(5, 5, 1)
	cfg.Speed.StepsPerSecond = 0

	g := NewWalls()
	g.UseConfig(cfg)
	if err := g.Reset(runtime(40, 20, 1)); err == nil {
		t.Error("expected error for zero speed")
	}
}

func TestPacing(t *testing.T) {
	g := newGame(t, NewTorus(), testConfig(6, 6, 0), runtime(40, 20, 1))

	if g.Snapshot().TicksPerStep != 4 {
		t.Fatalf("TicksPerStep = %d, expected 4", g.Snapshot().TicksPerStep)
	}
	for i := range 3 {
		if g.Step(core.NewInputFrame()).Moved {
			t.Fatalf("moved early on tick %d", i+1)
		}
	}
	if !g.Step(core.NewInputFrame()).Moved {
		t.Fatal("expected a move on tick 4")
	}
	if g.eng.Tick() != 1 {
		t.Errorf("engine tick = %d, expected 1", g.eng.Tick())
	}
}

func TestSteeringLastRequestWins(t *testing.T) {
	g := newGame(t, NewTorus(), testConfig(7, 7, 0), runtime(40, 20, 1))

	// Up then Left inside one move window: Left is the one handed over and,
	// being a reversal of Right, is rejected.
	g.Step(frame(core.ActionUp))
	g.Step(frame(core.ActionLeft))
	if g.Snapshot().Pending != engine.DirLeft {
		t.Fatalf("pending = %v, expected Left", g.Snapshot().Pending)
	}
	stepMoves(g, 1, core.NewInputFrame())

	if g.eng.Direction() != engine.DirRight {
		t.Errorf("direction = %v, expected Right", g.eng.Direction())
	}
	if g.Snapshot().Pending != engine.DirNone {
		t.Error("request should be cleared after the move")
	}

	stepMoves(g, 1, frame(core.ActionDown))
	if g.eng.Direction() != engine.DirDown {
		t.Errorf("direction = %v, expected Down", g.eng.Direction())
	}
	if g.eng.Head() != engine.C(4, 4) {
		t.Errorf("head = %v, expected (4, 4)", g.eng.Head())
	}
}

func TestPauseStopsMotion(t *testing.T) {
	g := newGame(t, NewTorus(), testConfig(6, 6, 0), runtime(40, 20, 1))

	g.Step(frame(core.ActionPause))
	for range 20 {
		g.Step(core.NewInputFrame())
	}
	if g.eng.Tick() != 0 || !g.State().Paused {
		t.Fatalf("paused game advanced: tick %d", g.eng.Tick())
	}

	g.Step(frame(core.ActionPause))
	stepMoves(g, 1, core.NewInputFrame())
	if g.eng.Tick() != 1 {
		t.Errorf("engine tick = %d after unpause, expected 1", g.eng.Tick())
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newGame(t, NewWalls(), testConfig(5, 5, 0), runtime(40, 20, 1))

	// Head starts at (2, 2) heading right; the third move leaves the board.
	stepMoves(g, 3, core.NewInputFrame())
	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("expected loss, got %+v", st)
	}

	g.Step(frame(core.ActionRestart))
	st = g.State()
	if st.GameOver || st.Length != 1 {
		t.Errorf("restart should start a new round, got %+v", st)
	}
	if g.eng.Tick() != 0 {
		t.Errorf("engine tick = %d after restart", g.eng.Tick())
	}
}

func TestRestartFailureIsReported(t *testing.T) {
	g := newGame(t, NewWalls(), testConfig(5, 5, 0), runtime(40, 20, 1))
	stepMoves(g, 3, core.NewInputFrame())

	g.cfg.Food.Count = -1
	res := g.Step(frame(core.ActionRestart))
	if res.State.Err == nil {
		t.Fatal("expected the failed restart to be reported")
	}
	if st := g.State(); st.Err == nil {
		t.Errorf("State() dropped the restart error: %+v", st)
	}
	if res := g.Step(core.NewInputFrame()); res.Moved || res.State.Err == nil {
		t.Errorf("a failed game should stay stopped, got %+v", res)
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newGame(t, NewTorus(), testConfig(6, 6, 0), runtime(40, 20, 1))

	stepMoves(g, 2, core.NewInputFrame())
	g.Step(frame(core.ActionRestart))
	if g.eng.Tick() != 2 {
		t.Errorf("restart during play should be ignored, tick = %d", g.eng.Tick())
	}
}

func TestBufferTracksEngine(t *testing.T) {
	for _, g := range []*Game{NewTorus(), NewWalls()} {
		t.Run(g.ID(), func(t *testing.T) {
			newGame(t, g, testConfig(6, 7, 3), runtime(40, 20, 11))
			rng := rand.New(rand.NewSource(3))
			steer := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

			for tick := range 4000 {
				in := core.NewInputFrame()
				if rng.Intn(3) == 0 {
					in.Set(steer[rng.Intn(len(steer))])
				}
				if g.State().GameOver {
					in.Set(core.ActionRestart)
				}
				g.Step(in)

				want := strings.SplitN(g.eng.Snapshot().String(), "\n", 2)[1]
				if got := g.BoardString(); got != want {
					t.Fatalf("tick %d: buffer diverged\n%s\nengine:\n%s", tick, got, want)
				}
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newGame(t, NewTorus(), testConfig(8, 8, 2), runtime(40, 20, 99))
		steer := []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}
		for i := range 600 {
			in := core.NewInputFrame()
			if i%9 == 0 {
				in.Set(steer[(i/9)%len(steer)])
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !a.Engine.Equal(b.Engine) || a.Tick != b.Tick {
		t.Errorf("runs diverged:\n%s\n%s", a.Engine, b.Engine)
	}
}

func TestRenderDrawsBoard(t *testing.T) {
	g := newGame(t, NewWalls(), testConfig(5, 5, 0), runtime(20, 12, 1))
	dst := core.NewScreen(20, 12)
	g.Render(dst)

	// Board is centered: x offset 7, y offset 4; head sits at (2, 2).
	if cell := dst.GetCell(9, 6); cell.Rune != 'O' || cell.Color != core.ColorSnakeHead {
		t.Errorf("head cell = %+v", cell)
	}
	if dst.Get(6, 3) != '┌' || dst.Get(12, 9) != '┘' {
		t.Errorf("border misplaced:\n%s", dst.String())
	}
	if !strings.Contains(dst.Row(0), "Length: 1") {
		t.Errorf("HUD = %q", dst.Row(0))
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, NewWalls(), testConfig(5, 5, 0), runtime(30, 14, 1))

	g.Step(frame(core.ActionPause))
	dst := core.NewScreen(30, 14)
	g.Render(dst)
	if !strings.Contains(dst.String(), "Paused") {
		t.Errorf("expected pause overlay:\n%s", dst.String())
	}

	g.Step(frame(core.ActionPause))
	stepMoves(g, 3, core.NewInputFrame())
	dst.Clear()
	g.Render(dst)
	if !strings.Contains(dst.String(), "Game Over") {
		t.Errorf("expected game over overlay:\n%s", dst.String())
	}
}

func TestHUDNotesTopologyOverride(t *testing.T) {
	tests := []struct {
		game     *Game
		topology string
		note     bool
	}{
		{NewWalls(), "walls", false},
		{NewWalls(), "torus", true},
		{NewTorus(), "walls", true},
		{NewTorus(), "wrap", false},
	}

	for _, tc := range tests {
		t.Run(tc.game.ID()+"/"+tc.topology, func(t *testing.T) {
			cfg := testConfig(5, 5, 0)
			cfg.Topology = tc.topology
			g := newGame(t, tc.game, cfg, runtime(80, 12, 1))

			dst := core.NewScreen(80, 12)
			g.Render(dst)
			hud := dst.Row(0)
			if got := strings.Contains(hud, "(config: "+tc.topology+")"); got != tc.note {
				t.Errorf("HUD = %q, expected override note %v", hud, tc.note)
			}
		})
	}
}
