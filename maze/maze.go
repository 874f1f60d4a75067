/*
Package maze provides the immutable grid model walked by the traversal engine.

A Grid is a rectangle of CellKind values (wall, open, start, end). It answers
bounds, classification and adjacency queries and is never mutated once built.
Neighbors are always produced in the order up, right, down, left, which is what
makes a depth-first walk over the grid deterministic.
*/
package maze

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	ErrOutOfBounds   = errors.New("position is out of the maze")
	ErrMalformedGrid = errors.New("malformed maze grid")
)

// Grid is a rectangular, read-only maze.
type Grid struct {
	width  int          // Number of columns
	height int          // Number of rows
	cells  [][]CellKind // Row-major cell kinds
	start  *Position    // Start cell, nil if the maze has none
	end    *Position    // End cell, nil if the maze has none
}

// New builds a Grid from rows of cell kinds. The rows are copied.
// All rows must have the same non-zero length and the grid may contain at
// most one start and at most one end cell.
func New(rows [][]CellKind) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and one column", ErrMalformedGrid)
	}

	g := &Grid{
		height: len(rows),
		width:  len(rows[0]),
		cells:  make([][]CellKind, len(rows)),
	}

	for r, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, r, len(row), g.width)
		}
		g.cells[r] = make([]CellKind, g.width)
		for c, kind := range row {
			if _, ok := kindNames[kind]; !ok {
				return nil, fmt.Errorf("%w: unknown cell kind %d at (%d,%d)", ErrMalformedGrid, kind, r, c)
			}
			g.cells[r][c] = kind

			pos := Position{Row: r, Col: c}
			switch kind {
			case Start:
				if g.start != nil {
					return nil, fmt.Errorf("%w: second start cell at %s", ErrMalformedGrid, pos)
				}
				g.start = &pos
			case End:
				if g.end != nil {
					return nil, fmt.Errorf("%w: second end cell at %s", ErrMalformedGrid, pos)
				}
				g.end = &pos
			}
		}
	}

	return g, nil
}

// Parse builds a Grid from the textual cell names used by maze documents.
func Parse(rows [][]string) (*Grid, error) {
	kinds := make([][]CellKind, len(rows))
	for r, row := range rows {
		kinds[r] = make([]CellKind, len(row))
		for c, name := range row {
			kind, err := ParseCellKind(name)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", r, c, err)
			}
			kinds[r][c] = kind
		}
	}
	return New(kinds)
}

// Dimensions returns the height and width of the grid.
func (g *Grid) Dimensions() (height, width int) {
	return g.height, g.width
}

// InBound reports whether (row, col) lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// KindAt returns the kind of the cell at (row, col).
func (g *Grid) KindAt(row, col int) (CellKind, error) {
	if !g.InBound(row, col) {
		return Wall, fmt.Errorf("%w: (%d,%d) outside %dx%d grid", ErrOutOfBounds, row, col, g.height, g.width)
	}
	return g.cells[row][col], nil
}

// Neighbors yields the in-bounds neighbors of (row, col) in the order
// up, right, down, left.
func (g *Grid) Neighbors(row, col int) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, d := range directions {
			nr, nc := row+d.Row, col+d.Col
			if !g.InBound(nr, nc) {
				continue
			}
			if !yield(Position{Row: nr, Col: nc}) {
				return
			}
		}
	}
}

// Start returns the start cell, if the maze has one.
func (g *Grid) Start() (Position, bool) {
	if g.start == nil {
		return Position{}, false
	}
	return *g.start, true
}

// End returns the goal cell, if the maze has one.
func (g *Grid) End() (Position, bool) {
	if g.end == nil {
		return Position{}, false
	}
	return *g.end, true
}

// Rows returns a copy of the grid's cell kinds.
func (g *Grid) Rows() [][]CellKind {
	rows := make([][]CellKind, g.height)
	for r := range g.cells {
		rows[r] = append([]CellKind(nil), g.cells[r]...)
	}
	return rows
}

// Names returns the grid as rows of textual cell kinds.
func (g *Grid) Names() [][]string {
	rows := make([][]string, g.height)
	for r, row := range g.cells {
		rows[r] = make([]string, g.width)
		for c, kind := range row {
			rows[r][c] = kind.String()
		}
	}
	return rows
}

// String provides an ASCII rendering of the grid: '#' wall, '.' open,
// 'S' start and 'E' end.
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for _, kind := range row {
			switch kind {
			case Wall:
				b.WriteByte('#')
			case Start:
				b.WriteByte('S')
			case End:
				b.WriteByte('E')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
