package level

import (
	"fmt"

	"vimaze/internal/core"
)

// expandRoute turns an authored patrol pattern into the runtime vector
// list, and resolves the spawn position. The result is a closed loop by
// construction for horizontal/vertical patterns and by waypoint wrapping
// for loops; validation still walks it against the maze afterwards.
func expandRoute(def SpyDef) (spawn core.Pos, route []Vector, err error) {
	toPos := func(pair []int) core.Pos {
		return core.Pos{Row: pair[0], Col: pair[1]}
	}

	switch def.Pattern {
	case "horizontal":
		start, end := toPos(def.Endpoints[0]), toPos(def.Endpoints[1])
		if start.Row != end.Row {
			return core.Pos{}, nil, fmt.Errorf("spy %s: horizontal endpoints on different rows", def.ID)
		}
		if end.Col > start.Col {
			route = []Vector{
				{End: end, Dir: core.DirRight},
				{End: start, Dir: core.DirLeft},
			}
		} else {
			route = []Vector{
				{End: end, Dir: core.DirLeft},
				{End: start, Dir: core.DirRight},
			}
		}
		spawn = start

	case "vertical":
		start, end := toPos(def.Endpoints[0]), toPos(def.Endpoints[1])
		if start.Col != end.Col {
			return core.Pos{}, nil, fmt.Errorf("spy %s: vertical endpoints on different columns", def.ID)
		}
		if end.Row > start.Row {
			route = []Vector{
				{End: end, Dir: core.DirDown},
				{End: start, Dir: core.DirUp},
			}
		} else {
			route = []Vector{
				{End: end, Dir: core.DirUp},
				{End: start, Dir: core.DirDown},
			}
		}
		spawn = start

	case "loop":
		waypoints := make([]core.Pos, len(def.Waypoints))
		for i, wp := range def.Waypoints {
			if len(wp) != 2 {
				return core.Pos{}, nil, fmt.Errorf("spy %s: waypoint %d must be [row, col]", def.ID, i)
			}
			waypoints[i] = toPos(wp)
		}
		if def.Direction == "ccw" {
			for i, j := 0, len(waypoints)-1; i < j; i, j = i+1, j-1 {
				waypoints[i], waypoints[j] = waypoints[j], waypoints[i]
			}
		}
		for i := range waypoints {
			cur := waypoints[i]
			next := waypoints[(i+1)%len(waypoints)]
			dir, derr := legDirection(cur, next)
			if derr != nil {
				return core.Pos{}, nil, fmt.Errorf("spy %s: %w", def.ID, derr)
			}
			route = append(route, Vector{End: next, Dir: dir})
		}
		spawn = waypoints[0]

	default:
		return core.Pos{}, nil, fmt.Errorf("spy %s: unknown pattern %q", def.ID, def.Pattern)
	}

	if len(def.Spawn) == 2 {
		spawn = toPos(def.Spawn)
	}
	return spawn, route, nil
}

// legDirection derives the cardinal direction from one waypoint to the
// next. Diagonal legs are content errors: patrol movement is axis-aligned.
func legDirection(from, to core.Pos) (core.Direction, error) {
	switch {
	case to.Row < from.Row && to.Col == from.Col:
		return core.DirUp, nil
	case to.Row > from.Row && to.Col == from.Col:
		return core.DirDown, nil
	case to.Col < from.Col && to.Row == from.Row:
		return core.DirLeft, nil
	case to.Col > from.Col && to.Row == from.Row:
		return core.DirRight, nil
	}
	return core.DirUp, fmt.Errorf("waypoints %v -> %v are not axis-aligned", from, to)
}
