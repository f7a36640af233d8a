// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep
// game logic pure and testable.
package core

// Pos is a grid position in character cells, 1-indexed in both axes to
// match the maze authoring convention (row 1 is the top row, col 1 is the
// leftmost column). Character cells are not byte columns: a wall rune may
// occupy several bytes in the rendered row.
type Pos struct {
	Row, Col int
}

// Zero reports whether the position is the unset sentinel (0, 0).
func (p Pos) Zero() bool {
	return p.Row == 0 && p.Col == 0
}

// Chebyshev returns the Chebyshev (chessboard) distance to another
// position: the number of king moves between the two cells.
func (p Pos) Chebyshev(other Pos) int {
	return Max(Abs(p.Row-other.Row), Abs(p.Col-other.Col))
}

// Within reports whether the position lies inside a grid of the given
// dimensions (1-indexed, inclusive).
func (p Pos) Within(rows, cols int) bool {
	return p.Row >= 1 && p.Row <= rows && p.Col >= 1 && p.Col <= cols
}

// Direction is a cardinal movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Step returns the position one cell from p in direction d.
func (d Direction) Step(p Pos) Pos {
	switch d {
	case DirUp:
		return Pos{Row: p.Row - 1, Col: p.Col}
	case DirDown:
		return Pos{Row: p.Row + 1, Col: p.Col}
	case DirLeft:
		return Pos{Row: p.Row, Col: p.Col - 1}
	case DirRight:
		return Pos{Row: p.Row, Col: p.Col + 1}
	}
	return p
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a route-file direction name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return DirUp, false
}
