package engine

// Source is the random source used for food placement.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// pool is an unordered dense collection of coordinates that share one
// occupant class. Each member's slot is mirrored in the grid so membership,
// insert and delete are O(1).
type pool struct {
	occ   Occupant
	grid  *grid
	items []Coord
}

func newPool(occ Occupant, g *grid, capacity int) *pool {
	return &pool{
		occ:   occ,
		grid:  g,
		items: make([]Coord, 0, capacity),
	}
}

func (p *pool) len() int {
	return len(p.items)
}

// insert appends c and marks it as a member in the grid.
func (p *pool) insert(c Coord) {
	p.grid.set(c, p.occ, len(p.items))
	p.items = append(p.items, c)
}

// removeAt swap-removes the member at slot i and returns it. The grid entry
// of the element moved into slot i is updated; the removed coordinate's
// grid entry is left for the caller to reassign.
func (p *pool) removeAt(i int) Coord {
	last := len(p.items) - 1
	removed := p.items[i]
	if i != last {
		moved := p.items[last]
		p.items[i] = moved
		p.grid.setSlot(moved, i)
	}
	p.items = p.items[:last]
	return removed
}

// remove deletes c, which must be a member.
func (p *pool) remove(c Coord) {
	p.removeAt(p.grid.get(c).slot)
}

// pick returns a uniformly random slot using a single draw.
// The pool must be non-empty.
func (p *pool) pick(rng Source) int {
	return rng.Intn(len(p.items))
}
