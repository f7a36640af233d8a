package level

import (
	"strings"
	"unicode/utf8"

	"vimaze/internal/core"
)

// Maze is the immutable character grid of a level. Cells are addressed in
// 1-indexed character positions; the maze also converts to and from the
// host's byte-column addressing, which differs whenever a row contains
// multi-byte runes (the wall rune is 3 bytes in UTF-8 but one cell).
type Maze struct {
	rows     [][]rune
	wallRune rune
}

// NewMaze builds a maze from row strings. Short rows are padded with floor
// so every row has the same character width.
func NewMaze(rows []string, wallRune rune) *Maze {
	width := 0
	for _, r := range rows {
		if n := utf8.RuneCountInString(r); n > width {
			width = n
		}
	}
	grid := make([][]rune, len(rows))
	for i, r := range rows {
		cells := []rune(r)
		for len(cells) < width {
			cells = append(cells, FloorRune)
		}
		grid[i] = cells
	}
	return &Maze{rows: grid, wallRune: wallRune}
}

// Rows returns the maze height in cells.
func (m *Maze) Rows() int {
	return len(m.rows)
}

// Cols returns the maze width in cells.
func (m *Maze) Cols() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows[0])
}

// WallRune returns the rune that classifies a cell as a wall.
func (m *Maze) WallRune() rune {
	return m.wallRune
}

// At returns the rune at a 1-indexed position. Out-of-bounds positions
// report the wall rune: the world outside the grid is solid.
func (m *Maze) At(p core.Pos) rune {
	if !p.Within(m.Rows(), m.Cols()) {
		return m.wallRune
	}
	return m.rows[p.Row-1][p.Col-1]
}

// IsWall reports whether the cell at p holds the wall rune.
func (m *Maze) IsWall(p core.Pos) bool {
	return m.At(p) == m.wallRune
}

// Row returns the 1-indexed row as a string.
func (m *Maze) Row(row int) string {
	if row < 1 || row > m.Rows() {
		return ""
	}
	return string(m.rows[row-1])
}

// Lines returns every row as a string slice, top to bottom.
func (m *Maze) Lines() []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = string(r)
	}
	return out
}

// String renders the maze joined with newlines.
func (m *Maze) String() string {
	return strings.Join(m.Lines(), "\n")
}

// ByteCol translates a 1-indexed character column in the given row to the
// host's 1-indexed byte column. Positions past the end of the row continue
// in single-byte cells, matching how hosts address padded floor.
func (m *Maze) ByteCol(row, charCol int) int {
	if row < 1 || row > m.Rows() || charCol < 1 {
		return charCol
	}
	cells := m.rows[row-1]
	byteCol := 1
	for i := 0; i < charCol-1; i++ {
		if i < len(cells) {
			byteCol += utf8.RuneLen(cells[i])
		} else {
			byteCol++
		}
	}
	return byteCol
}

// CharCol translates a 1-indexed byte column in the given row back to the
// character column of the cell containing that byte.
func (m *Maze) CharCol(row, byteCol int) int {
	if row < 1 || row > m.Rows() || byteCol < 1 {
		return byteCol
	}
	cells := m.rows[row-1]
	remaining := byteCol
	for i, r := range cells {
		n := utf8.RuneLen(r)
		if remaining <= n {
			return i + 1
		}
		remaining -= n
	}
	// Past the end of the row: one byte per cell.
	return len(cells) + remaining
}
