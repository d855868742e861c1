// Package engine implements the turn-based snake simulation: a grid index,
// swap-remove pools for free cells and food, the snake path, and the step
// function that yields incremental diffs of changed cells.
//
// The engine has no external dependencies and holds no external resources.
// It is not safe for concurrent use; callers serialize Step calls.
package engine

import (
	"fmt"
	"strings"
)

// Coord is a 0-indexed (row, col) position on the board.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Occupant is the class of entity occupying a cell.
type Occupant uint8

const (
	Empty Occupant = iota
	Food
	Snake
)

func (o Occupant) String() string {
	switch o {
	case Empty:
		return "empty"
	case Food:
		return "food"
	case Snake:
		return "snake"
	default:
		return "unknown"
	}
}

// Change records the new occupant of a single cell.
type Change struct {
	Coord    Coord
	Occupant Occupant
}

// Status is the overall game status.
type Status int8

const (
	Loose   Status = -1
	Ongoing Status = 0
	Win     Status = 1
)

func (s Status) String() string {
	switch s {
	case Loose:
		return "loose"
	case Ongoing:
		return "ongoing"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further steps are allowed.
func (s Status) Terminal() bool {
	return s != Ongoing
}

// Velocity is a unit (row, col) delta applied every tick.
type Velocity struct {
	DRow int
	DCol int
}

// perpendicular reports whether v and o are at right angles.
func (v Velocity) perpendicular(o Velocity) bool {
	return v.DRow*o.DRow+v.DCol*o.DCol == 0
}

// Direction is a requested heading. DirNone means no request.
type Direction int

const (
	DirNone Direction = iota
	DirRight
	DirUp
	DirLeft
	DirDown
)

var velocities = [...]Velocity{
	DirRight: {0, 1},
	DirUp:    {-1, 0},
	DirLeft:  {0, -1},
	DirDown:  {1, 0},
}

// Velocity returns the unit vector for d. ok is false for DirNone and
// out-of-range values.
func (d Direction) Velocity() (v Velocity, ok bool) {
	if d <= DirNone || int(d) >= len(velocities) {
		return Velocity{}, false
	}
	return velocities[d], true
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// ParseDirection maps a direction token to a Direction. Unknown tokens are
// treated as no request.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return DirRight
	case "up":
		return DirUp
	case "left":
		return DirLeft
	case "down":
		return DirDown
	default:
		return DirNone
	}
}

// directionOf returns the Direction for a unit velocity.
func directionOf(v Velocity) Direction {
	for d := DirRight; d <= DirDown; d++ {
		if velocities[d] == v {
			return d
		}
	}
	return DirNone
}

// Topology selects how moves past the board edge are resolved.
type Topology int

const (
	// TopologyTorus wraps around the edges.
	TopologyTorus Topology = iota
	// TopologyWalls treats the edges as lethal walls.
	TopologyWalls
)

func (t Topology) String() string {
	switch t {
	case TopologyTorus:
		return "torus"
	case TopologyWalls:
		return "walls"
	default:
		return "unknown"
	}
}

// ParseTopology parses "torus" or "walls". An empty string is the default
// torus topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "torus", "wrap":
		return TopologyTorus, nil
	case "walls", "wall":
		return TopologyWalls, nil
	default:
		return 0, fmt.Errorf("%w: unknown topology %q", ErrInvalidConfig, s)
	}
}
