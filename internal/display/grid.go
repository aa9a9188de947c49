package display

import "strings"

// Grid is an in-memory character grid with a cursor.
type Grid struct {
	cols, rows int
	cells      [][]rune
	col, row   int
}

// NewGrid creates a blank grid.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for i := range g.cells {
		g.cells[i] = make([]rune, cols)
	}
	g.Clear()
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Clear blanks every cell and homes the cursor.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for i := range row {
			row[i] = ' '
		}
	}
	g.col, g.row = 0, 0
}

// SetCursor moves the cursor, clamped to the grid.
func (g *Grid) SetCursor(col, row int) {
	g.col = min(max(col, 0), g.cols)
	g.row = min(max(row, 0), g.rows-1)
}

// Write stores s at the cursor and advances it. Overflow is dropped.
func (g *Grid) Write(s string) {
	for _, r := range s {
		if g.col >= g.cols {
			return
		}
		g.cells[g.row][g.col] = r
		g.col++
	}
}

// Line returns one row with trailing blanks trimmed.
func (g *Grid) Line(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}
	return strings.TrimRight(string(g.cells[row]), " ")
}

// Lines returns every row, trimmed.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	for i := range out {
		out[i] = g.Line(i)
	}
	return out
}
