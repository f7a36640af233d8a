package level

import (
	"testing"

	"vimaze/internal/core"
)

func TestExpandHorizontal(t *testing.T) {
	spawn, route, err := expandRoute(SpyDef{
		ID:        "g",
		Pattern:   "horizontal",
		Endpoints: [][]int{{4, 11}, {4, 81}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if spawn != (core.Pos{Row: 4, Col: 11}) {
		t.Errorf("spawn = %v, expected (4,11)", spawn)
	}
	if len(route) != 2 {
		t.Fatalf("route has %d legs, expected 2", len(route))
	}
	if route[0].End != (core.Pos{Row: 4, Col: 81}) || route[0].Dir != core.DirRight {
		t.Errorf("leg 0 = %+v, expected right to (4,81)", route[0])
	}
	if route[1].End != (core.Pos{Row: 4, Col: 11}) || route[1].Dir != core.DirLeft {
		t.Errorf("leg 1 = %+v, expected left back to (4,11)", route[1])
	}
}

func TestExpandHorizontalReversed(t *testing.T) {
	_, route, err := expandRoute(SpyDef{
		ID:        "g",
		Pattern:   "horizontal",
		Endpoints: [][]int{{4, 81}, {4, 11}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if route[0].Dir != core.DirLeft || route[1].Dir != core.DirRight {
		t.Errorf("reversed endpoints should walk left first: %+v", route)
	}
}

func TestExpandHorizontalRowMismatch(t *testing.T) {
	_, _, err := expandRoute(SpyDef{
		ID:        "g",
		Pattern:   "horizontal",
		Endpoints: [][]int{{4, 11}, {5, 81}},
	})
	if err == nil {
		t.Fatal("expected error for endpoints on different rows")
	}
}

func TestExpandVertical(t *testing.T) {
	spawn, route, err := expandRoute(SpyDef{
		ID:        "w",
		Pattern:   "vertical",
		Endpoints: [][]int{{3, 30}, {9, 30}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if spawn != (core.Pos{Row: 3, Col: 30}) {
		t.Errorf("spawn = %v", spawn)
	}
	if route[0].Dir != core.DirDown || route[1].Dir != core.DirUp {
		t.Errorf("route = %+v, expected down then up", route)
	}
}

func TestExpandLoopClockwise(t *testing.T) {
	spawn, route, err := expandRoute(SpyDef{
		ID:        "r",
		Pattern:   "loop",
		Waypoints: [][]int{{10, 10}, {10, 30}, {18, 30}, {18, 10}},
		Direction: "cw",
	})
	if err != nil {
		t.Fatal(err)
	}
	if spawn != (core.Pos{Row: 10, Col: 10}) {
		t.Errorf("spawn = %v", spawn)
	}
	expected := []Vector{
		{End: core.Pos{Row: 10, Col: 30}, Dir: core.DirRight},
		{End: core.Pos{Row: 18, Col: 30}, Dir: core.DirDown},
		{End: core.Pos{Row: 18, Col: 10}, Dir: core.DirLeft},
		{End: core.Pos{Row: 10, Col: 10}, Dir: core.DirUp},
	}
	if len(route) != len(expected) {
		t.Fatalf("route has %d legs, expected %d", len(route), len(expected))
	}
	for i := range expected {
		if route[i] != expected[i] {
			t.Errorf("leg %d = %+v, expected %+v", i, route[i], expected[i])
		}
	}
}

func TestExpandLoopCounterClockwise(t *testing.T) {
	_, route, err := expandRoute(SpyDef{
		ID:        "r",
		Pattern:   "loop",
		Waypoints: [][]int{{10, 10}, {10, 30}, {18, 30}, {18, 10}},
		Direction: "ccw",
	})
	if err != nil {
		t.Fatal(err)
	}
	// Reversed waypoint order: first leg walks from (18,10) to (18,30)
	if route[0].End != (core.Pos{Row: 18, Col: 30}) || route[0].Dir != core.DirRight {
		t.Errorf("ccw leg 0 = %+v", route[0])
	}
}

func TestExpandLoopDiagonalRejected(t *testing.T) {
	_, _, err := expandRoute(SpyDef{
		ID:        "r",
		Pattern:   "loop",
		Waypoints: [][]int{{10, 10}, {12, 12}},
	})
	if err == nil {
		t.Fatal("expected error for diagonal waypoint leg")
	}
}

func TestExpandExplicitSpawn(t *testing.T) {
	spawn, _, err := expandRoute(SpyDef{
		ID:        "g",
		Pattern:   "horizontal",
		Endpoints: [][]int{{4, 11}, {4, 81}},
		Spawn:     []int{4, 40},
	})
	if err != nil {
		t.Fatal(err)
	}
	if spawn != (core.Pos{Row: 4, Col: 40}) {
		t.Errorf("explicit spawn ignored: %v", spawn)
	}
}

func TestRouteClosure(t *testing.T) {
	// Replaying the full route from spawn, step by step, must return to
	// spawn with zero remainder, whatever the pattern.
	defs := []SpyDef{
		{ID: "h", Pattern: "horizontal", Endpoints: [][]int{{4, 11}, {4, 81}}},
		{ID: "v", Pattern: "vertical", Endpoints: [][]int{{9, 30}, {3, 30}}},
		{ID: "l", Pattern: "loop", Waypoints: [][]int{{3, 40}, {3, 50}, {9, 50}, {9, 40}}, Direction: "cw"},
		{ID: "lr", Pattern: "loop", Waypoints: [][]int{{3, 40}, {3, 50}, {9, 50}, {9, 40}}, Direction: "ccw"},
	}
	for _, def := range defs {
		t.Run(def.ID, func(t *testing.T) {
			spawn, route, err := expandRoute(def)
			if err != nil {
				t.Fatal(err)
			}
			pos := spawn
			steps := 0
			for _, vec := range route {
				for pos != vec.End {
					pos = vec.Dir.Step(pos)
					if steps++; steps > 10000 {
						t.Fatal("route does not terminate")
					}
				}
			}
			if pos != spawn {
				t.Errorf("route ends at %v, expected spawn %v", pos, spawn)
			}
		})
	}
}
