package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// MaxCells bounds rows*cols. Every pool and the snake path are sized to
// the full board up front.
const MaxCells = 1 << 24

// Config holds the rule parameters of a game. Start from DefaultConfig.
type Config struct {
	Foods    int      // Maximum number of food items on the board
	Topology Topology // Edge behavior
	Rand     Source   // Food placement source; nil means time-seeded
}

// DefaultConfig returns one food item on a torus board.
func DefaultConfig() Config {
	return Config{
		Foods:    1,
		Topology: TopologyTorus,
	}
}

// Engine owns the board state and advances it one tick per Step call.
type Engine struct {
	rows     int
	cols     int
	foods    int
	topology Topology
	rng      Source

	grid *grid
	free *pool
	food *pool
	body *path

	velocity Velocity
	status   Status
	tick     uint64
}

// New builds an engine on a rows x cols board, places a single snake segment
// at the center cell heading right, and places the initial food. It returns
// the initial diff: the head placement followed by every placed food item.
func New(rows, cols int, cfg Config) (*Engine, []Change, error) {
	if rows <= 0 || cols <= 0 {
		return nil, nil, fmt.Errorf("%w: board must be positive, got %dx%d", ErrInvalidConfig, rows, cols)
	}
	if rows > MaxCells/cols {
		return nil, nil, fmt.Errorf("%w: board %dx%d exceeds %d cells", ErrInvalidConfig, rows, cols, MaxCells)
	}
	if cfg.Foods < 0 {
		return nil, nil, fmt.Errorf("%w: food count must not be negative, got %d", ErrInvalidConfig, cfg.Foods)
	}
	if cfg.Topology != TopologyTorus && cfg.Topology != TopologyWalls {
		return nil, nil, fmt.Errorf("%w: unknown topology %d", ErrInvalidConfig, cfg.Topology)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	size := rows * cols
	g := newGrid(rows, cols)
	e := &Engine{
		rows:     rows,
		cols:     cols,
		foods:    cfg.Foods,
		topology: cfg.Topology,
		rng:      rng,
		grid:     g,
		free:     newPool(Empty, g, size),
		food:     newPool(Food, g, min(cfg.Foods, size)),
		body:     newPath(size),
		velocity: velocities[DirRight],
		status:   Ongoing,
	}

	for r := range rows {
		for c := range cols {
			e.free.insert(C(r, c))
		}
	}

	head := C(rows/2, cols/2)
	e.free.remove(head)
	e.grid.set(head, Snake, -1)
	e.body.pushFront(head)

	changes := make([]Change, 0, 1+min(cfg.Foods, size))
	changes = append(changes, Change{Coord: head, Occupant: Snake})
	changes = e.replenish(changes)

	return e, changes, nil
}

// Step advances the game by one tick. dir is the requested direction, or
// DirNone. A request is applied only when it is perpendicular to the current
// velocity. The returned diff lists every cell whose occupant changed; it is
// empty on the terminal tick. Calling Step after the game ended returns
// ErrGameOver and leaves the state untouched.
func (e *Engine) Step(dir Direction) ([]Change, error) {
	if e.status.Terminal() {
		return nil, ErrGameOver
	}
	e.tick++
	e.turn(dir)

	head, ok := e.advance(e.body.front())
	if !ok {
		e.finish()
		return nil, nil
	}

	switch e.grid.get(head).occ {
	case Empty:
		e.free.remove(head)
		e.grid.set(head, Snake, -1)
		e.body.pushFront(head)

		tail := e.body.popBack()
		e.free.insert(tail)
		return []Change{
			{Coord: head, Occupant: Snake},
			{Coord: tail, Occupant: Empty},
		}, nil

	case Food:
		e.food.remove(head)
		e.grid.set(head, Snake, -1)
		e.body.pushFront(head)

		changes := make([]Change, 0, 1+e.foods)
		changes = append(changes, Change{Coord: head, Occupant: Snake})
		return e.replenish(changes), nil

	default:
		e.finish()
		return nil, nil
	}
}

// turn applies dir if it is perpendicular to the current velocity.
func (e *Engine) turn(dir Direction) {
	v, ok := dir.Velocity()
	if !ok {
		return
	}
	if v.perpendicular(e.velocity) {
		e.velocity = v
	}
}

// advance returns the cell one step from c. ok is false when the move leaves
// a walled board.
func (e *Engine) advance(c Coord) (Coord, bool) {
	next := C(c.Row+e.velocity.DRow, c.Col+e.velocity.DCol)
	if e.topology == TopologyTorus {
		next.Row = mod(next.Row, e.rows)
		next.Col = mod(next.Col, e.cols)
		return next, true
	}
	return next, e.grid.inBounds(next)
}

// finish resolves a fatal collision. A board with no free cells left is a win.
func (e *Engine) finish() {
	if e.free.len() > 0 {
		e.status = Loose
	} else {
		e.status = Win
	}
}

// replenish moves random free cells to the food pool until the food count
// reaches its maximum or no free cell is left.
func (e *Engine) replenish(changes []Change) []Change {
	n := min(e.foods-e.food.len(), e.free.len())
	for range n {
		c := e.free.removeAt(e.free.pick(e.rng))
		e.food.insert(c)
		changes = append(changes, Change{Coord: c, Occupant: Food})
	}
	return changes
}

func mod(n, m int) int {
	return ((n % m) + m) % m
}

// Status returns the current game status.
func (e *Engine) Status() Status {
	return e.status
}

// Rows returns the board height.
func (e *Engine) Rows() int {
	return e.rows
}

// Cols returns the board width.
func (e *Engine) Cols() int {
	return e.cols
}

// Topology returns the edge behavior.
func (e *Engine) Topology() Topology {
	return e.topology
}

// Occupant returns the occupant of c. ok is false when c lies outside the
// board, which is fatal on a walled board and unreachable on a torus.
func (e *Engine) Occupant(c Coord) (occ Occupant, ok bool) {
	if !e.grid.inBounds(c) {
		return Empty, false
	}
	return e.grid.get(c).occ, true
}

// Head returns the snake's head.
func (e *Engine) Head() Coord {
	return e.body.front()
}

// Len returns the snake length.
func (e *Engine) Len() int {
	return e.body.len()
}

// Body returns a head-first copy of the snake segments.
func (e *Engine) Body() []Coord {
	out := make([]Coord, e.body.len())
	for i := range out {
		out[i] = e.body.at(i)
	}
	return out
}

// Foods returns a copy of the food coordinates in no particular order.
func (e *Engine) Foods() []Coord {
	return append([]Coord(nil), e.food.items...)
}

// FoodCount returns the number of food items on the board.
func (e *Engine) FoodCount() int {
	return e.food.len()
}

// FreeCount returns the number of empty cells.
func (e *Engine) FreeCount() int {
	return e.free.len()
}

// Velocity returns the current velocity.
func (e *Engine) Velocity() Velocity {
	return e.velocity
}

// Direction returns the current heading.
func (e *Engine) Direction() Direction {
	return directionOf(e.velocity)
}

// Tick returns the number of Step calls that advanced the game.
func (e *Engine) Tick() uint64 {
	return e.tick
}
