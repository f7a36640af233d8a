package player

import (
	"testing"

	"vimaze/internal/core"
	"vimaze/internal/game/collision"
	"vimaze/internal/game/tick"
	"vimaze/internal/level"
)

// openRoom is a bordered 8x12 room with no interior walls.
func openRoom(t *testing.T) *level.Maze {
	t.Helper()
	lvl, err := level.Build(level.Definition{
		ID:         "room",
		Dimensions: []int{8, 12},
		Start:      []int{2, 2},
		Exit:       []int{7, 11},
	})
	if err != nil {
		t.Fatal(err)
	}
	return lvl.Maze
}

func newNative(t *testing.T) (*Controller, *collision.Engine) {
	t.Helper()
	sched := tick.NewScheduler()
	eng := collision.NewEngine(openRoom(t), sched, nil)
	c := NewController(eng, sched, core.Pos{Row: 2, Col: 2}, ModeNative)
	return c, eng
}

func newTicked(t *testing.T) (*Controller, *tick.Scheduler) {
	t.Helper()
	sched := tick.NewScheduler()
	sched.Start()
	eng := collision.NewEngine(openRoom(t), sched, nil)
	c := NewController(eng, sched, core.Pos{Row: 2, Col: 2}, ModeTicked)
	c.Attach()
	return c, sched
}

func TestNativeCommitAcceptsFloor(t *testing.T) {
	c, eng := newNative(t)

	got := c.Commit(core.Pos{Row: 2, Col: 3})
	if got != (core.Pos{Row: 2, Col: 3}) {
		t.Errorf("resolved = %v", got)
	}
	if c.Pos() != got {
		t.Error("controller position out of sync")
	}
	if eng.LastValid() != got {
		t.Error("anchor not advanced")
	}
}

func TestNativeCommitBouncesOffWall(t *testing.T) {
	c, _ := newNative(t)

	got := c.Commit(core.Pos{Row: 1, Col: 2}) // border
	if got != (core.Pos{Row: 2, Col: 2}) {
		t.Errorf("bounce landed at %v, expected start", got)
	}
}

func TestNativeHooksFireOnAcceptedMovesOnly(t *testing.T) {
	c, _ := newNative(t)

	var moved, checked []core.Pos
	c.OnMoved(func(p core.Pos) { moved = append(moved, p) })
	c.OnEntityCheck(func(p core.Pos) { checked = append(checked, p) })

	c.Commit(core.Pos{Row: 2, Col: 3})
	c.Commit(core.Pos{Row: 1, Col: 3}) // wall, no hooks
	if len(moved) != 1 || moved[0] != (core.Pos{Row: 2, Col: 3}) {
		t.Errorf("moved hooks = %v", moved)
	}
	if len(checked) != 1 {
		t.Errorf("entity checks = %v", checked)
	}
}

func TestTickedQueueResolvesOnCadence(t *testing.T) {
	c, sched := newTicked(t)

	c.Queue(core.DirRight)
	sched.Advance() // tick 1: interval not elapsed
	if c.Pos() != (core.Pos{Row: 2, Col: 2}) {
		t.Fatalf("moved too early: %v", c.Pos())
	}
	sched.Advance() // tick 2: resolves
	if c.Pos() != (core.Pos{Row: 2, Col: 3}) {
		t.Fatalf("at %v, expected (2,3)", c.Pos())
	}
}

func TestTickedCustomIntervalSlowsCadence(t *testing.T) {
	c, sched := newTicked(t)
	c.SetMoveInterval(3)

	c.Queue(core.DirRight)
	sched.Advance()
	sched.Advance()
	if c.Pos() != (core.Pos{Row: 2, Col: 2}) {
		t.Fatalf("moved before the tuned interval elapsed: %v", c.Pos())
	}
	sched.Advance() // tick 3: resolves
	if c.Pos() != (core.Pos{Row: 2, Col: 3}) {
		t.Fatalf("at %v, expected (2,3)", c.Pos())
	}
}

func TestSetMoveIntervalIgnoresNonPositive(t *testing.T) {
	c, sched := newTicked(t)
	c.SetMoveInterval(0)

	c.Queue(core.DirRight)
	sched.Advance()
	sched.Advance() // default cadence still applies
	if c.Pos() != (core.Pos{Row: 2, Col: 3}) {
		t.Fatalf("at %v, expected (2,3) on the default cadence", c.Pos())
	}
}

func TestTickedQueueKeepsLatestIntentOnly(t *testing.T) {
	c, sched := newTicked(t)

	c.Queue(core.DirRight)
	c.Queue(core.DirDown) // replaces, no buffering
	sched.Advance()
	sched.Advance()
	if c.Pos() != (core.Pos{Row: 3, Col: 2}) {
		t.Fatalf("at %v, expected (3,2) from the latest intent", c.Pos())
	}

	// The queue drained: two more ticks without input do nothing
	sched.Advance()
	sched.Advance()
	if c.Pos() != (core.Pos{Row: 3, Col: 2}) {
		t.Fatalf("moved without an intent: %v", c.Pos())
	}
}

func TestTickedWallIntentDiscarded(t *testing.T) {
	c, sched := newTicked(t)

	c.Queue(core.DirUp) // into the top border
	sched.Advance()
	sched.Advance()
	if c.Pos() != (core.Pos{Row: 2, Col: 2}) {
		t.Fatalf("moved into wall: %v", c.Pos())
	}

	// The engine's error state was triggered; once the flash clears,
	// movement resumes.
	for i := 0; i < collision.DefaultFlashTicks; i++ {
		sched.Advance()
	}
	c.Queue(core.DirRight)
	sched.Advance()
	sched.Advance()
	if c.Pos() != (core.Pos{Row: 2, Col: 3}) {
		t.Fatalf("at %v after flash cleared, expected (2,3)", c.Pos())
	}
}

func TestTickedEntityCheckAfterMove(t *testing.T) {
	c, sched := newTicked(t)

	var checked []core.Pos
	c.OnEntityCheck(func(p core.Pos) { checked = append(checked, p) })

	c.Queue(core.DirRight)
	sched.Advance()
	sched.Advance()
	if len(checked) != 1 || checked[0] != (core.Pos{Row: 2, Col: 3}) {
		t.Errorf("entity check = %v, expected at the new cell", checked)
	}
}

func TestQueueIgnoredInNativeMode(t *testing.T) {
	c, _ := newNative(t)
	c.Queue(core.DirRight)
	if c.hasQueued {
		t.Error("native mode must not queue intents")
	}
}

func TestCleanupUnsubscribes(t *testing.T) {
	c, sched := newTicked(t)
	c.Queue(core.DirRight)
	c.Cleanup()

	if sched.Has(SubID) {
		t.Error("tick subscription survived cleanup")
	}
	sched.Advance()
	sched.Advance()
	if c.Pos() != (core.Pos{Row: 2, Col: 2}) {
		t.Error("cleanup should drop the pending intent")
	}
}
