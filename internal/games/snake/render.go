package snake

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

// Render draws the HUD, the board buffer and any overlay.
func (g *Game) Render(dst *core.Screen) {
	g.renderHUD(dst)

	if g.eng == nil {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	rows, cols := g.eng.Rows(), g.eng.Cols()
	border := core.ColorWhite
	if g.topology == engine.TopologyTorus {
		border = core.ColorBoard
	}
	dst.DrawBox(core.NewRect(g.offsetX-1, g.offsetY-1, cols+2, rows+2), border)

	for i, occ := range g.board {
		x, y := g.offsetX+i%cols, g.offsetY+i/cols
		switch occ {
		case engine.Food:
			dst.SetColored(x, y, '*', core.ColorFood)
		case engine.Snake:
			if i == g.head.Row*cols+g.head.Col {
				dst.SetColored(x, y, 'O', core.ColorSnakeHead)
			} else {
				dst.SetColored(x, y, 'o', core.ColorSnakeBody)
			}
		}
	}

	switch {
	case g.eng.Status() == engine.Win:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Length %d. Press R to restart", g.eng.Len()))
	case g.eng.Status() == engine.Loose:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := " " + g.title
	if g.eng != nil {
		hud = fmt.Sprintf(" %s | Length: %d | %s | %dx%d %s",
			g.title, g.eng.Len(), g.eng.Status(), g.eng.Rows(), g.eng.Cols(), g.eng.Topology())
		if g.overridesConfig() {
			hud += fmt.Sprintf(" (config: %s)", g.cfg.Topology)
		}
	}
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).CenterIn(w, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
