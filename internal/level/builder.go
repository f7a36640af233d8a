package level

// buildGrid generates the maze rows from a definition: floor everywhere,
// solid outer border, wall primitives, openings carved back to floor, and
// the exit marker placed last. Primitives outside the grid are clipped
// silently; validation flags out-of-bounds start/exit/spies separately.
func buildGrid(def Definition) []string {
	rows := def.Dimensions[0]
	cols := def.Dimensions[1]
	wall := def.wallRune()

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			grid[r][c] = FloorRune
		}
	}

	// Outer border
	for c := 0; c < cols; c++ {
		grid[0][c] = wall
		grid[rows-1][c] = wall
	}
	for r := 0; r < rows; r++ {
		grid[r][0] = wall
		grid[r][cols-1] = wall
	}

	set := func(r, c int, ch rune) {
		if r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = ch
		}
	}

	paint := func(defs []WallDef, ch rune) {
		for _, w := range defs {
			switch w.Type {
			case "rect":
				if len(w.Rect) != 4 {
					continue
				}
				// [top, left, height, width], 1-indexed
				top, left, height, width := w.Rect[0]-1, w.Rect[1]-1, w.Rect[2], w.Rect[3]
				for r := top; r < top+height; r++ {
					for c := left; c < left+width; c++ {
						set(r, c, ch)
					}
				}
			case "hline":
				if len(w.Line) != 3 {
					continue
				}
				// [row, col_start, col_end], 1-indexed, inclusive
				row, c0, c1 := w.Line[0]-1, w.Line[1]-1, w.Line[2]-1
				for c := c0; c <= c1; c++ {
					set(row, c, ch)
				}
			case "vline":
				if len(w.Line) != 3 {
					continue
				}
				// [col, row_start, row_end], 1-indexed, inclusive
				col, r0, r1 := w.Line[0]-1, w.Line[1]-1, w.Line[2]-1
				for r := r0; r <= r1; r++ {
					set(r, col, ch)
				}
			case "point":
				if len(w.Pos) != 2 {
					continue
				}
				set(w.Pos[0]-1, w.Pos[1]-1, ch)
			}
		}
	}

	paint(def.Walls, wall)
	paint(def.Openings, FloorRune)

	// Exit marker replaces floor only. An exit authored inside a wall is
	// left as wall for validation to reject.
	er, ec := def.Exit[0]-1, def.Exit[1]-1
	if er >= 0 && er < rows && ec >= 0 && ec < cols && grid[er][ec] == FloorRune {
		grid[er][ec] = ExitRune
	}

	out := make([]string, rows)
	for r := range grid {
		out[r] = string(grid[r])
	}
	return out
}
