package session

import (
	"vimaze/internal/core"
	"vimaze/internal/level"
)

// Document is the mutable text buffer of one gameplay session, seeded
// from the level's maze. The patrol system draws and erases its entities
// here; the renderer reads it every frame.
//
// Byte-column translation keeps using the immutable maze: validated
// routes never cross walls, so spies only ever replace single-byte floor
// runes and row byte widths stay stable.
type Document struct {
	maze *level.Maze
	rows [][]rune
}

// NewDocument copies the maze grid into a fresh buffer.
func NewDocument(m *level.Maze) *Document {
	d := &Document{maze: m, rows: make([][]rune, m.Rows())}
	for r := 1; r <= m.Rows(); r++ {
		d.rows[r-1] = []rune(m.Row(r))
	}
	return d
}

// RuneAt returns the rune at a 1-indexed cell; out of range is a space.
func (d *Document) RuneAt(pos core.Pos) rune {
	if pos.Row < 1 || pos.Row > len(d.rows) {
		return ' '
	}
	row := d.rows[pos.Row-1]
	if pos.Col < 1 || pos.Col > len(row) {
		return ' '
	}
	return row[pos.Col-1]
}

// SetRune overwrites a cell; out of range is ignored.
func (d *Document) SetRune(pos core.Pos, r rune) {
	if pos.Row < 1 || pos.Row > len(d.rows) {
		return
	}
	row := d.rows[pos.Row-1]
	if pos.Col < 1 || pos.Col > len(row) {
		return
	}
	row[pos.Col-1] = r
}

// Rows returns the number of lines.
func (d *Document) Rows() int {
	return len(d.rows)
}

// Line returns one 1-indexed line as a string.
func (d *Document) Line(row int) string {
	if row < 1 || row > len(d.rows) {
		return ""
	}
	return string(d.rows[row-1])
}

// Lines returns every line, top to bottom.
func (d *Document) Lines() []string {
	out := make([]string, len(d.rows))
	for i, r := range d.rows {
		out[i] = string(r)
	}
	return out
}

// Contains reports whether any line contains the given text. Used by the
// secondary win predicate of editing-style levels.
func (d *Document) Contains(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range d.rows {
		if containsRunes(r, text) {
			return true
		}
	}
	return false
}

// ByteCol translates a character column to the host's byte column for
// that row.
func (d *Document) ByteCol(pos core.Pos) int {
	return d.maze.ByteCol(pos.Row, pos.Col)
}

func containsRunes(row []rune, text string) bool {
	want := []rune(text)
	if len(want) == 0 || len(want) > len(row) {
		return false
	}
	for i := 0; i+len(want) <= len(row); i++ {
		match := true
		for j, r := range want {
			if row[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
