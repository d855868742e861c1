package engine

// cell is a grid index entry: the occupant and its slot in the occupant's
// pool. Snake cells carry no meaningful slot.
type cell struct {
	occ  Occupant
	slot int
}

// grid maps every coordinate to its cell in O(1).
// Cells are stored in row-major order: index = row*cols + col.
type grid struct {
	rows  int
	cols  int
	cells []cell
}

func newGrid(rows, cols int) *grid {
	return &grid{
		rows:  rows,
		cols:  cols,
		cells: make([]cell, rows*cols),
	}
}

func (g *grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

func (g *grid) inBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// get returns the cell at c. The caller ensures c is in bounds.
func (g *grid) get(c Coord) cell {
	return g.cells[g.index(c)]
}

func (g *grid) set(c Coord, occ Occupant, slot int) {
	g.cells[g.index(c)] = cell{occ: occ, slot: slot}
}

func (g *grid) setSlot(c Coord, slot int) {
	g.cells[g.index(c)].slot = slot
}
