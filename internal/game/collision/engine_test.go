package collision

import (
	"testing"
	"time"

	"vimaze/internal/core"
	"vimaze/internal/game/tick"
	"vimaze/internal/level"
)

type recordingHighlighter struct {
	flashed []core.Pos
	cleared int
}

func (h *recordingHighlighter) FlashWall(pos core.Pos) { h.flashed = append(h.flashed, pos) }
func (h *recordingHighlighter) ClearFlash()            { h.cleared++ }

// testMaze builds an 8x12 bordered maze with a vertical wall at col 6,
// rows 2-7 (a gap at row 4, col 6).
func testMaze(t *testing.T) *level.Maze {
	t.Helper()
	grid := buildTestGrid(level.Definition{
		ID:         "t",
		Dimensions: []int{8, 12},
		Start:      []int{2, 2},
		Exit:       []int{7, 11},
		Walls:      []level.WallDef{{Type: "vline", Line: []int{6, 2, 7}}},
		Openings:   []level.WallDef{{Type: "point", Pos: []int{4, 6}}},
	})
	return grid
}

func buildTestGrid(def level.Definition) *level.Maze {
	lvl, err := level.Build(def)
	if err != nil {
		panic(err)
	}
	return lvl.Maze
}

func TestIsWall(t *testing.T) {
	e := NewEngine(testMaze(t), nil, nil)

	cases := []struct {
		pos  core.Pos
		wall bool
	}{
		{core.Pos{Row: 1, Col: 1}, true},   // border
		{core.Pos{Row: 2, Col: 2}, false},  // floor
		{core.Pos{Row: 3, Col: 6}, true},   // interior wall
		{core.Pos{Row: 4, Col: 6}, false},  // opening
		{core.Pos{Row: 0, Col: 5}, true},   // out of bounds
		{core.Pos{Row: 9, Col: 5}, true},   // out of bounds
		{core.Pos{Row: 7, Col: 11}, false}, // exit marker is floor
	}
	for _, tc := range cases {
		if got := e.IsWall(tc.pos); got != tc.wall {
			t.Errorf("IsWall(%v) = %v, expected %v", tc.pos, got, tc.wall)
		}
	}
}

func TestOnMoveAcceptsFloor(t *testing.T) {
	e := NewEngine(testMaze(t), nil, nil)
	e.SetLastValid(core.Pos{Row: 2, Col: 2})

	res := e.OnMove(core.Pos{Row: 2, Col: 3})
	if res.Blocked {
		t.Fatal("floor move blocked")
	}
	if res.Pos != (core.Pos{Row: 2, Col: 3}) {
		t.Errorf("resolved pos = %v", res.Pos)
	}
	if e.LastValid() != (core.Pos{Row: 2, Col: 3}) {
		t.Errorf("anchor not advanced: %v", e.LastValid())
	}
}

func TestOnMoveBouncesOffWall(t *testing.T) {
	sched := tick.NewScheduler()
	sched.Start()
	hl := &recordingHighlighter{}
	e := NewEngine(testMaze(t), sched, hl)
	e.SetLastValid(core.Pos{Row: 3, Col: 5})

	res := e.OnMove(core.Pos{Row: 3, Col: 6})
	if !res.Blocked {
		t.Fatal("wall move not blocked")
	}
	if res.Pos != (core.Pos{Row: 3, Col: 5}) {
		t.Errorf("bounce pos = %v, expected last valid", res.Pos)
	}
	if len(hl.flashed) != 1 || hl.flashed[0] != (core.Pos{Row: 3, Col: 6}) {
		t.Errorf("flashed = %v, expected the wall cell", hl.flashed)
	}
	if !e.InErrorState() {
		t.Error("error state should be active after a wall hit")
	}
}

func TestErrorStateSuppressesMovement(t *testing.T) {
	sched := tick.NewScheduler()
	sched.Start()
	hl := &recordingHighlighter{}
	e := NewEngine(testMaze(t), sched, hl)
	e.SetLastValid(core.Pos{Row: 3, Col: 5})

	e.OnMove(core.Pos{Row: 3, Col: 6}) // wall, enters error state

	// A legal move during the error window is inert
	res := e.OnMove(core.Pos{Row: 3, Col: 4})
	if !res.Blocked || res.Pos != (core.Pos{Row: 3, Col: 5}) {
		t.Errorf("movement should be inert while flashing: %+v", res)
	}
	// A second wall hit does not re-trigger the flash
	e.OnMove(core.Pos{Row: 3, Col: 6})
	if len(hl.flashed) != 1 {
		t.Errorf("flash re-triggered: %d flashes", len(hl.flashed))
	}
}

func TestErrorStateClearsAfterFlashTicks(t *testing.T) {
	sched := tick.NewScheduler()
	sched.Start()
	hl := &recordingHighlighter{}
	e := NewEngine(testMaze(t), sched, hl)
	e.SetLastValid(core.Pos{Row: 3, Col: 5})

	e.OnMove(core.Pos{Row: 3, Col: 6})
	for i := 0; i < DefaultFlashTicks; i++ {
		sched.Advance()
	}
	if e.InErrorState() {
		t.Fatal("error state should clear after the flash duration")
	}
	if hl.cleared != 1 {
		t.Errorf("ClearFlash called %d times, expected 1", hl.cleared)
	}

	// Movement works again
	res := e.OnMove(core.Pos{Row: 3, Col: 4})
	if res.Blocked {
		t.Error("movement still blocked after clear")
	}
}

func TestErrorStateWallClockFallback(t *testing.T) {
	// No running scheduler: the clear must come from the wall-clock
	// deadline instead.
	hl := &recordingHighlighter{}
	e := NewEngine(testMaze(t), nil, hl)
	e.SetFlashTicks(1, 100) // 10ms, keeps the test fast
	e.SetLastValid(core.Pos{Row: 3, Col: 5})

	e.OnMove(core.Pos{Row: 3, Col: 6})
	if !e.InErrorState() {
		t.Fatal("error state not raised")
	}
	time.Sleep(30 * time.Millisecond)
	if e.InErrorState() {
		t.Fatal("deadline fallback did not clear the error state")
	}
	if hl.cleared != 1 {
		t.Errorf("ClearFlash called %d times, expected 1", hl.cleared)
	}
}

func TestOnWallHitHook(t *testing.T) {
	sched := tick.NewScheduler()
	sched.Start()
	e := NewEngine(testMaze(t), sched, nil)
	e.SetLastValid(core.Pos{Row: 3, Col: 5})

	var hits []core.Pos
	e.OnWallHit(func(pos core.Pos) { hits = append(hits, pos) })

	e.OnMove(core.Pos{Row: 3, Col: 6})
	e.OnMove(core.Pos{Row: 3, Col: 6}) // suppressed, no second call
	if len(hits) != 1 || hits[0] != (core.Pos{Row: 3, Col: 6}) {
		t.Errorf("hits = %v, expected one hit at the wall", hits)
	}
}

func TestCheckCollisionRadius(t *testing.T) {
	e := NewEngine(testMaze(t), nil, nil)
	spy := core.Pos{Row: 4, Col: 8}
	e.SetEntitySource(func() []core.Pos { return []core.Pos{spy} })

	cases := []struct {
		pos core.Pos
		hit bool
	}{
		{core.Pos{Row: 4, Col: 8}, true},  // same cell
		{core.Pos{Row: 3, Col: 7}, true},  // diagonal neighbor
		{core.Pos{Row: 4, Col: 9}, true},  // orthogonal neighbor
		{core.Pos{Row: 4, Col: 10}, false},
		{core.Pos{Row: 2, Col: 8}, false},
	}
	for _, tc := range cases {
		if got := e.CheckCollision(tc.pos); got != tc.hit {
			t.Errorf("CheckCollision(%v) = %v, expected %v", tc.pos, got, tc.hit)
		}
	}
}

func TestCheckCollisionCustomRadius(t *testing.T) {
	e := NewEngine(testMaze(t), nil, nil)
	spy := core.Pos{Row: 4, Col: 8}
	e.SetEntitySource(func() []core.Pos { return []core.Pos{spy} })
	e.SetRadius(2)

	if !e.CheckCollision(core.Pos{Row: 4, Col: 10}) {
		t.Error("distance 2 should hit with radius 2")
	}
	if e.CheckCollision(core.Pos{Row: 4, Col: 11}) {
		t.Error("distance 3 should miss with radius 2")
	}
}

func TestCheckCollisionNoEntities(t *testing.T) {
	e := NewEngine(testMaze(t), nil, nil)
	if e.CheckCollision(core.Pos{Row: 4, Col: 8}) {
		t.Error("no entity source registered, nothing to collide with")
	}
}

func TestCustomWallRune(t *testing.T) {
	lvl, err := level.Build(level.Definition{
		ID:         "hash",
		Dimensions: []int{6, 10},
		Start:      []int{2, 2},
		Exit:       []int{5, 9},
		WallChar:   "#",
	})
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(lvl.Maze, nil, nil)
	if !e.IsWall(core.Pos{Row: 1, Col: 1}) {
		t.Error("'#' border should classify as wall")
	}
	if e.IsWall(core.Pos{Row: 3, Col: 5}) {
		t.Error("floor misclassified")
	}
}

func TestCleanup(t *testing.T) {
	sched := tick.NewScheduler()
	sched.Start()
	hl := &recordingHighlighter{}
	e := NewEngine(testMaze(t), sched, hl)
	e.SetLastValid(core.Pos{Row: 3, Col: 5})
	e.SetEntitySource(func() []core.Pos { return []core.Pos{{Row: 3, Col: 5}} })
	e.OnMove(core.Pos{Row: 3, Col: 6})

	e.Cleanup()

	if e.InErrorState() {
		t.Error("error state survived cleanup")
	}
	if hl.cleared != 1 {
		t.Errorf("cleanup should clear an active flash, cleared = %d", hl.cleared)
	}
	if sched.Has("collision:flash") {
		t.Error("pending flash clear survived cleanup")
	}
	if e.CheckCollision(core.Pos{Row: 3, Col: 5}) {
		t.Error("entity source survived cleanup")
	}

	// Advancing past the old deadline must not double-clear
	for i := 0; i < DefaultFlashTicks+1; i++ {
		sched.Advance()
	}
	if hl.cleared != 1 {
		t.Errorf("stale clear fired after cleanup, cleared = %d", hl.cleared)
	}
}
