package tui

import (
	"fmt"
	"strings"

	"vimaze/internal/art"
	"vimaze/internal/core"
	"vimaze/internal/game/patrol"
	"vimaze/internal/game/player"
	"vimaze/internal/level"
)

// PlayerRune marks the player's cell on the gameplay screen.
const PlayerRune = '@'

// drawCentered draws one line horizontally centered with a color.
func (m Model) drawCentered(y int, text string, c core.Color) {
	x := (m.screen.Width() - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	m.screen.DrawTextColored(x, y, text, c)
}

// drawBlockCentered draws a multiline block centered line by line and
// returns the next free row.
func (m Model) drawBlockCentered(startY int, block string, c core.Color) int {
	y := startY
	for _, line := range strings.Split(strings.Trim(block, "\n"), "\n") {
		m.drawCentered(y, line, c)
		y++
	}
	return y
}

func (m Model) drawLore() {
	y := m.drawBlockCentered(1, art.Banner, core.ColorTitle)
	m.drawCentered(y, "escape the archive before the spies find you", core.ColorDim)
	y += 2

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := "[ ]"
		if m.done[lvl.ID] {
			mark = "[*]"
		}
		tag := ""
		if lvl.Ticked() {
			tag = "  (patrolled)"
		}

		line := fmt.Sprintf("%s%s %s%s", cursor, mark, lvl.Name, tag)
		color := core.ColorDefault
		if i == m.cursor {
			color = core.ColorAccent
		}
		m.drawCentered(y, line, color)
		y++
	}

	if len(m.levels) > 0 {
		y++
		y = m.drawBlockCentered(y, m.levels[m.cursor].Lore, core.ColorDim)
	}

	m.drawCentered(m.screen.Height()-1, "j/k choose · enter begin · :q leave", core.ColorDim)
}

func (m Model) drawGameplay() {
	lvl := m.sess.Level()
	doc := m.sess.Doc()
	if lvl == nil || doc == nil {
		return
	}

	ox := core.Max((m.screen.Width()-lvl.Cols)/2, 0)
	oy := core.Max((m.screen.Height()-1-lvl.Rows)/2, 0)

	if ox > 0 && oy > 0 {
		m.screen.DrawBox(core.Rect{X: ox - 1, Y: oy - 1, W: lvl.Cols + 2, H: lvl.Rows + 2})
	}

	for row := 1; row <= lvl.Rows; row++ {
		for col := 1; col <= lvl.Cols; col++ {
			pos := core.Pos{Row: row, Col: col}
			r := doc.RuneAt(pos)
			m.screen.SetCell(ox+col-1, oy+row-1, r, cellColor(lvl, r))
		}
	}

	p := m.sess.Player().Pos()
	m.screen.SetCell(ox+p.Col-1, oy+p.Row-1, PlayerRune, core.ColorPlayer)

	if m.flash.active {
		f := m.flash.pos
		m.screen.Recolor(ox+f.Col-1, oy+f.Row-1, core.ColorFlash)
	}

	mode := ""
	if m.sess.Player().Mode() == player.ModeTicked {
		mode = "  [patrolled]"
	}
	status := fmt.Sprintf("%s · %.1fs · %d moves%s", lvl.Name, m.sess.ElapsedSecs(), m.sess.Moves(), mode)
	m.screen.DrawTextColored(1, m.screen.Height()-1, status, core.ColorDim)
}

// cellColor classifies a document rune for display.
func cellColor(lvl *level.Level, r rune) core.Color {
	switch r {
	case lvl.Maze.WallRune():
		return core.ColorWall
	case patrol.SpyRune:
		return core.ColorSpy
	case level.ExitRune:
		return core.ColorExit
	}
	return core.ColorDefault
}

func (m Model) drawFireworks() {
	frames := art.FireworkFrames
	frame := frames[m.sess.FrameIndex()%len(frames)]

	y := core.Max(m.screen.Height()/2-6, 1)
	y = m.drawBlockCentered(y, frame, core.ColorAccent)
	y++
	m.drawCentered(y, art.WinCaption, core.ColorSuccess)
	m.drawCentered(y+2, m.sess.LastResult().LevelName, core.ColorDefault)
}

func (m Model) drawResults() {
	res := m.sess.LastResult()

	y := core.Max(m.screen.Height()/2-5, 1)
	m.drawCentered(y, "E S C A P E D", core.ColorSuccess)
	y += 2
	m.drawCentered(y, res.LevelName, core.ColorTitle)
	y++
	m.screen.DrawHLine(core.Max(m.screen.Width()/2-12, 0), y, 24, '─')
	y++
	m.drawCentered(y, fmt.Sprintf("time   %.1fs", res.ElapsedSecs), core.ColorDefault)
	y++
	m.drawCentered(y, fmt.Sprintf("moves  %d", res.Moves), core.ColorDefault)
	if m.best != nil {
		y += 2
		m.drawCentered(y, fmt.Sprintf("best   %.1fs / %d moves", m.best.ElapsedSecs, m.best.Moves), core.ColorAccent)
	}

	m.drawCentered(m.screen.Height()-1, "enter to continue", core.ColorDim)
}

func (m Model) drawDefeat() {
	y := core.Max(m.screen.Height()/2-7, 1)
	y = m.drawBlockCentered(y, art.DefeatArt, core.ColorDanger)
	y++
	m.drawCentered(y, art.DefeatCaption, core.ColorDim)
}
