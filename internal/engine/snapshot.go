package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Snapshot captures the complete engine state for determinism testing and
// debugging.
type Snapshot struct {
	Tick   uint64
	Rows   int
	Cols   int
	Status Status
	Dir    Direction
	Body   []Coord // Head first
	Foods  []Coord // Sorted by row, then col
	Free   int
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	foods := e.Foods()
	slices.SortFunc(foods, compareCoords)
	return Snapshot{
		Tick:   e.tick,
		Rows:   e.rows,
		Cols:   e.cols,
		Status: e.status,
		Dir:    e.Direction(),
		Body:   e.Body(),
		Foods:  foods,
		Free:   e.free.len(),
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Tick == o.Tick &&
		s.Rows == o.Rows &&
		s.Cols == o.Cols &&
		s.Status == o.Status &&
		s.Dir == o.Dir &&
		s.Free == o.Free &&
		slices.Equal(s.Body, o.Body) &&
		slices.Equal(s.Foods, o.Foods)
}

// String renders the board with 'O' for the head, 'o' for the body, '*' for
// food and '.' for empty cells.
func (s Snapshot) String() string {
	board := make([][]byte, s.Rows)
	for r := range board {
		board[r] = []byte(strings.Repeat(".", s.Cols))
	}
	for _, f := range s.Foods {
		board[f.Row][f.Col] = '*'
	}
	for i, seg := range s.Body {
		if i == 0 {
			board[seg.Row][seg.Col] = 'O'
		} else {
			board[seg.Row][seg.Col] = 'o'
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Status: %s, Dir: %s, Len: %d\n", s.Tick, s.Status, s.Dir, len(s.Body))
	for _, row := range board {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func compareCoords(a, b Coord) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}
