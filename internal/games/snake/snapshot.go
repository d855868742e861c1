package snake

import (
	"strings"

	"github.com/vovakirdan/tui-snake/internal/engine"
)

// Snapshot captures the adapter state for determinism testing.
type Snapshot struct {
	Tick         uint64
	TicksPerStep int
	Paused       bool
	TooSmall     bool
	Pending      engine.Direction
	Engine       engine.Snapshot
}

// Snapshot returns the current adapter snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         g.tick,
		TicksPerStep: g.ticksPerStep,
		Paused:       g.paused,
		TooSmall:     g.tooSmall,
		Pending:      g.pending,
	}
	if g.eng != nil {
		s.Engine = g.eng.Snapshot()
	}
	return s
}

// BoardString renders the paint buffer with 'O' for the head, 'o' for the
// body, '*' for food and '.' for empty cells.
func (g *Game) BoardString() string {
	if g.eng == nil {
		return ""
	}
	cols := g.eng.Cols()
	var b strings.Builder
	for i, occ := range g.board {
		switch {
		case occ == engine.Food:
			b.WriteByte('*')
		case occ == engine.Snake && i == g.head.Row*cols+g.head.Col:
			b.WriteByte('O')
		case occ == engine.Snake:
			b.WriteByte('o')
		default:
			b.WriteByte('.')
		}
		if i%cols == cols-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
