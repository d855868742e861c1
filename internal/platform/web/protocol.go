// Package web streams engine diffs to browser renderers over websockets.
//
// Messages are JSON objects tagged by a single-character "t" field.
//
//	Client -> Server:
//	  "i" = input   {"t":"i","d":"Up"}
//	  "r" = restart {"t":"r"}
//	Server -> Client:
//	  "w" = welcome {"t":"w","id":"uuid","rows":20,"cols":30,"topology":"walls"}
//	  "d" = diff    {"t":"d","c":[[10,15,"snake"],[10,14,"empty"]],"s":"ongoing","n":1}
//	  "e" = end     {"t":"e","s":"win"}
//
// The first diff after a welcome (n = 0) is the initial placement.
package web

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/engine"
)

// Message type identifiers.
const (
	MsgInput   = "i"
	MsgRestart = "r"
	MsgWelcome = "w"
	MsgDiff    = "d"
	MsgEnd     = "e"
)

// ClientMessage is an incoming message from the browser.
type ClientMessage struct {
	Type string `json:"t"`
	Dir  string `json:"d,omitempty"`
}

// WelcomeMsg starts a round.
type WelcomeMsg struct {
	Type     string `json:"t"`
	ID       string `json:"id"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Topology string `json:"topology"`
}

// DiffMsg carries the cells changed by one tick.
type DiffMsg struct {
	Type    string    `json:"t"`
	Changes []CellDTO `json:"c"`
	Status  string    `json:"s"`
	Tick    uint64    `json:"n"`
}

// EndMsg reports the final status of a round.
type EndMsg struct {
	Type   string `json:"t"`
	Status string `json:"s"`
}

// CellDTO is one changed cell, encoded as [row, col, "occupant"].
type CellDTO struct {
	Row      int
	Col      int
	Occupant string
}

// MarshalJSON encodes the cell as a three-element array.
func (c CellDTO) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{c.Row, c.Col, c.Occupant})
}

// UnmarshalJSON decodes a three-element array.
func (c *CellDTO) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("web: cell needs 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &c.Row); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &c.Col); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &c.Occupant)
}

func diffMsg(changes []engine.Change, status engine.Status, tick uint64) DiffMsg {
	cells := make([]CellDTO, len(changes))
	for i, ch := range changes {
		cells[i] = CellDTO{Row: ch.Coord.Row, Col: ch.Coord.Col, Occupant: ch.Occupant.String()}
	}
	return DiffMsg{Type: MsgDiff, Changes: cells, Status: status.String(), Tick: tick}
}
