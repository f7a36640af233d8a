package level

import (
	"fmt"

	"vimaze/internal/core"
)

// Validate checks a built level for the content-error classes that the
// runtime assumes away: dimension mismatch, out-of-bounds or walled
// start/exit, spy spawns on walls, routes that leave the grid, cross
// walls, stall, or fail to close back to spawn. A non-empty result means
// the level must not be played.
func Validate(l *Level) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("level %s: "+format, append([]any{l.ID}, args...)...))
	}

	if l.Maze.Rows() != l.Rows || l.Maze.Cols() != l.Cols {
		fail("maze is %dx%d, metadata says %dx%d", l.Maze.Rows(), l.Maze.Cols(), l.Rows, l.Cols)
	}

	checkCell := func(what string, p core.Pos) bool {
		if !p.Within(l.Rows, l.Cols) {
			fail("%s %v out of bounds (1-%d, 1-%d)", what, p, l.Rows, l.Cols)
			return false
		}
		if l.Maze.IsWall(p) {
			fail("%s %v is on a wall", what, p)
			return false
		}
		return true
	}

	checkCell("start", l.Start)
	checkCell("exit", l.Exit)

	for _, spy := range l.Spies {
		validateSpy(l, spy, fail)
	}

	if l.HasFeature(FeatureSpies) && len(l.Spies) == 0 {
		fail("spies feature enabled but no spies defined")
	}

	return errs
}

// validateSpy walks the full route one cell at a time from spawn, exactly
// as the runtime will, and checks every visited cell.
func validateSpy(l *Level, spy Spy, fail func(string, ...any)) {
	prefix := fmt.Sprintf("spy %s", spy.ID)

	if !spy.Spawn.Within(l.Rows, l.Cols) {
		fail("%s: spawn %v out of bounds", prefix, spy.Spawn)
		return
	}
	if l.Maze.IsWall(spy.Spawn) {
		fail("%s: spawn %v is on a wall", prefix, spy.Spawn)
	}
	if len(spy.Route) == 0 {
		fail("%s: empty route", prefix)
		return
	}
	if spy.Speed <= 0 {
		fail("%s: speed %v must be positive", prefix, spy.Speed)
	}

	// A leg whose direction never reaches its end would walk forever at
	// runtime; cap the walk so validation always terminates.
	maxSteps := l.Rows * l.Cols * 4

	pos := spy.Spawn
	steps := 0
	for i, vec := range spy.Route {
		for pos != vec.End {
			pos = vec.Dir.Step(pos)
			steps++
			if steps > maxSteps {
				fail("%s: route leg %d (%s to %v) never reaches its end", prefix, i, vec.Dir, vec.End)
				return
			}
			if !pos.Within(l.Rows, l.Cols) {
				fail("%s: route goes out of bounds at %v", prefix, pos)
				return
			}
			if l.Maze.IsWall(pos) {
				fail("%s: route hits wall at %v", prefix, pos)
				return
			}
		}
	}

	if pos != spy.Spawn {
		fail("%s: route ends at %v instead of spawn %v", prefix, pos, spy.Spawn)
	}
}
