// Package collision classifies maze cells, enforces player containment via
// post-move bounce-back, raises timed wall-hit feedback, and detects
// player/spy proximity.
//
// Bounce-back is deliberately post-move: the host motion is allowed to
// land, then validated through one choke point. That way multi-cell host
// motions and single steps go through identical checking instead of each
// movement command being special-cased.
package collision

import (
	"time"

	"vimaze/internal/core"
	"vimaze/internal/game/tick"
	"vimaze/internal/level"
)

// DefaultFlashTicks is the wall-hit highlight duration in scheduler ticks
// (8 ticks = 400ms at the default 20 ticks/sec).
const DefaultFlashTicks = 8

// DefaultRadius is the spy detection radius in Chebyshev distance. 1 means
// the player is caught on the spy's cell or any of its 8 neighbors. Lenient
// on purpose: discrete tick movement makes exact-overlap detection feel
// unfair. Kept as a tunable, not an assumption.
const DefaultRadius = 1

// flashSubID is the scheduler id of the pending highlight clear.
const flashSubID = "collision:flash"

// Highlighter is the rendering service the engine raises feedback through.
// The engine decides when; the platform decides how it looks.
type Highlighter interface {
	FlashWall(pos core.Pos)
	ClearFlash()
}

// MoveResult reports the outcome of a position change.
type MoveResult struct {
	Blocked bool
	Pos     core.Pos // where the player actually ends up
}

// Engine is the per-level collision state. Not safe for concurrent use;
// everything runs on the platform's single cooperative loop.
type Engine struct {
	maze     *level.Maze
	sched    *tick.Scheduler
	hl       Highlighter
	wallRune rune

	lastValid core.Pos
	inError   bool
	// deadline is the wall-clock fallback used when the scheduler is not
	// running (native-mode levels between subscriptions); cleared lazily.
	deadline time.Time

	flashTicks uint64
	flashDur   time.Duration
	radius     int

	onWallHit  func(core.Pos)
	entitiesAt func() []core.Pos
}

// NewEngine creates a collision engine for one level. The highlighter may
// be nil (headless tests).
func NewEngine(maze *level.Maze, sched *tick.Scheduler, hl Highlighter) *Engine {
	tickRate := 20 // informational only; flashDur mirrors flashTicks
	return &Engine{
		maze:       maze,
		sched:      sched,
		hl:         hl,
		wallRune:   maze.WallRune(),
		flashTicks: DefaultFlashTicks,
		flashDur:   time.Duration(DefaultFlashTicks) * time.Second / time.Duration(tickRate),
		radius:     DefaultRadius,
	}
}

// SetWallRune swaps the rune that classifies cells as walls, for maze
// variants that restyle their walls mid-game.
func (e *Engine) SetWallRune(r rune) {
	e.wallRune = r
}

// SetFlashTicks overrides the highlight duration.
func (e *Engine) SetFlashTicks(ticks uint64, tickRate int) {
	e.flashTicks = ticks
	if tickRate > 0 {
		e.flashDur = time.Duration(ticks) * time.Second / time.Duration(tickRate)
	}
}

// SetRadius overrides the spy detection radius.
func (e *Engine) SetRadius(r int) {
	e.radius = r
}

// OnWallHit registers a hook invoked once per wall-hit feedback cycle.
func (e *Engine) OnWallHit(fn func(core.Pos)) {
	e.onWallHit = fn
}

// SetEntitySource registers the provider of active entity positions used
// by CheckCollision. The patrol system owns the entities; the engine only
// measures distance.
func (e *Engine) SetEntitySource(fn func() []core.Pos) {
	e.entitiesAt = fn
}

// SetLastValid seeds the bounce-back anchor, normally with the level's
// start position.
func (e *Engine) SetLastValid(pos core.Pos) {
	e.lastValid = pos
}

// LastValid returns the current bounce-back anchor.
func (e *Engine) LastValid() core.Pos {
	return e.lastValid
}

// IsWall reports whether the cell at pos holds the configured wall rune.
// Out-of-bounds cells are walls.
func (e *Engine) IsWall(pos core.Pos) bool {
	if !pos.Within(e.maze.Rows(), e.maze.Cols()) {
		return true
	}
	return e.maze.At(pos) == e.wallRune
}

// OnMove validates a position change. Wall hits bounce back to the last
// valid position and raise timed feedback; accepted moves become the new
// anchor. While the error state is active all movement is inert: the
// player stays put and repeat hits do not re-trigger the flash.
func (e *Engine) OnMove(newPos core.Pos) MoveResult {
	if e.InErrorState() {
		return MoveResult{Blocked: true, Pos: e.lastValid}
	}
	if e.IsWall(newPos) {
		e.enterErrorState(newPos)
		return MoveResult{Blocked: true, Pos: e.lastValid}
	}
	e.lastValid = newPos
	return MoveResult{Blocked: false, Pos: newPos}
}

// InErrorState reports whether wall-hit feedback is active. The wall-clock
// fallback deadline is resolved lazily here.
func (e *Engine) InErrorState() bool {
	if e.inError && !e.deadline.IsZero() && time.Now().After(e.deadline) {
		e.clearErrorState(0)
	}
	return e.inError
}

// enterErrorState raises the highlight and schedules its clear: through
// the scheduler when it is running, otherwise against the wall clock.
func (e *Engine) enterErrorState(wall core.Pos) {
	e.inError = true
	if e.hl != nil {
		e.hl.FlashWall(wall)
	}
	if e.sched != nil && e.sched.Running() {
		e.deadline = time.Time{}
		e.sched.After(flashSubID, e.flashTicks, e.clearErrorState)
	} else {
		e.deadline = time.Now().Add(e.flashDur)
	}
	if e.onWallHit != nil {
		e.onWallHit(wall)
	}
}

func (e *Engine) clearErrorState(uint64) {
	e.inError = false
	e.deadline = time.Time{}
	if e.hl != nil {
		e.hl.ClearFlash()
	}
}

// CheckCollision reports whether the player is within the detection radius
// (Chebyshev distance) of any active entity.
func (e *Engine) CheckCollision(playerPos core.Pos) bool {
	if e.entitiesAt == nil {
		return false
	}
	for _, p := range e.entitiesAt() {
		if playerPos.Chebyshev(p) <= e.radius {
			return true
		}
	}
	return false
}

// Cleanup resets all per-level state: bounce anchor, error state, pending
// flash clear, and registered hooks. Called on leaving a level; safe to
// call repeatedly.
func (e *Engine) Cleanup() {
	if e.sched != nil {
		e.sched.Unsubscribe(flashSubID)
	}
	if e.inError && e.hl != nil {
		e.hl.ClearFlash()
	}
	e.inError = false
	e.deadline = time.Time{}
	e.lastValid = core.Pos{}
	e.onWallHit = nil
	e.entitiesAt = nil
}
