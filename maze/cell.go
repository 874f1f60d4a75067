package maze

import (
	"fmt"
	"strings"
)

// CellKind classifies a single cell of a maze grid.
type CellKind uint8

const (
	Wall  CellKind = iota // Wall blocks movement.
	Open                  // Open is a walkable path cell.
	Start                 // Start is where the agent begins.
	End                   // End is the goal cell.
)

var kindNames = map[CellKind]string{
	Wall:  "wall",
	Open:  "open",
	Start: "start",
	End:   "end",
}

// ParseCellKind converts the textual form of a cell into a CellKind.
// "path" is accepted as an alias of "open".
func ParseCellKind(s string) (CellKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wall":
		return Wall, nil
	case "open", "path":
		return Open, nil
	case "start":
		return Start, nil
	case "end":
		return End, nil
	}
	return Wall, fmt.Errorf("%w: unknown cell kind %q", ErrMalformedGrid, s)
}

// String returns the textual form of the cell kind.
func (k CellKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CellKind(%d)", k)
}

// Walkable reports whether an agent may step onto a cell of this kind.
func (k CellKind) Walkable() bool {
	return k != Wall
}

// Position represents the coordinate of a cell in the maze grid.
type Position struct {
	Row int `json:"row" bson:"row" yaml:"row"` // Row index of the cell
	Col int `json:"col" bson:"col" yaml:"col"` // Column index of the cell
}

// String formats the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// directions lists the neighbor offsets in the order the traversal explores
// them: up, right, down, left.
var directions = [4]Position{
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
}
