// Package player tracks the player's position and resolves movement in
// one of two modes. Native mode lets the host move the cursor and only
// validates the result after the fact. Ticked mode queues direction
// intents and resolves them on the scheduler, so the player moves at the
// same fixed cadence as the patrol entities regardless of key repeat
// rate.
package player

import (
	"vimaze/internal/core"
	"vimaze/internal/game/collision"
	"vimaze/internal/game/tick"
)

// Mode selects how movement is resolved.
type Mode int

const (
	ModeNative Mode = iota
	ModeTicked
)

func (m Mode) String() string {
	if m == ModeTicked {
		return "ticked"
	}
	return "native"
}

// MoveInterval is the default ticked-mode resolution cadence, matching a
// speed-1.0 patrol entity so the chase is fair. Levels can tune it.
const MoveInterval = 2

// SubID is the ticked-mode scheduler subscription id.
const SubID = "gameplay:player"

// Controller is the per-level player state. Created on level load and
// reset on cleanup.
type Controller struct {
	engine *collision.Engine
	sched  *tick.Scheduler

	mode Mode
	pos  core.Pos

	// queued holds the most recent ticked-mode intent; older intents are
	// overwritten, there is no input buffering.
	queued    core.Direction
	hasQueued bool
	interval  uint64
	lastMove  uint64

	onMoved func(core.Pos)
	// onEntityCheck runs after an accepted move so the session can test
	// spy proximity at the new cell.
	onEntityCheck func(core.Pos)
}

// NewController creates a player at the given start position. The start
// also seeds the collision engine's bounce-back anchor.
func NewController(engine *collision.Engine, sched *tick.Scheduler, start core.Pos, mode Mode) *Controller {
	engine.SetLastValid(start)
	return &Controller{
		engine:   engine,
		sched:    sched,
		mode:     mode,
		pos:      start,
		interval: MoveInterval,
	}
}

// SetMoveInterval overrides the ticked-mode cadence, for levels that tune
// the chase. Values below one tick are ignored.
func (c *Controller) SetMoveInterval(ticks int) {
	if ticks >= 1 {
		c.interval = uint64(ticks)
	}
}

// Mode returns the movement mode for this level.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Pos returns the player's current position.
func (c *Controller) Pos() core.Pos {
	return c.pos
}

// OnMoved registers a hook invoked after every accepted move.
func (c *Controller) OnMoved(fn func(core.Pos)) {
	c.onMoved = fn
}

// OnEntityCheck registers the post-move spy proximity hook.
func (c *Controller) OnEntityCheck(fn func(core.Pos)) {
	c.onEntityCheck = fn
}

// Commit validates a host-driven position change (native mode's
// position-changed hook). The returned position is where the player
// actually is; on a wall hit that is the bounce-back anchor.
func (c *Controller) Commit(newPos core.Pos) core.Pos {
	res := c.engine.OnMove(newPos)
	c.pos = res.Pos
	if !res.Blocked {
		if c.onMoved != nil {
			c.onMoved(c.pos)
		}
		if c.onEntityCheck != nil {
			c.onEntityCheck(c.pos)
		}
	}
	return c.pos
}

// Queue records a ticked-mode movement intent, replacing any earlier one.
// In native mode it is ignored.
func (c *Controller) Queue(dir core.Direction) {
	if c.mode != ModeTicked {
		return
	}
	c.queued = dir
	c.hasQueued = true
}

// Attach subscribes the ticked-mode resolver. No-op in native mode.
func (c *Controller) Attach() {
	if c.mode != ModeTicked {
		return
	}
	c.lastMove = c.sched.Current()
	c.sched.Subscribe(SubID, 1, func(t uint64) bool {
		c.resolve(t)
		return true
	})
}

// resolve applies at most one queued intent per interval. A
// wall candidate goes through the collision engine's feedback path and
// the intent is discarded; a floor candidate moves the player. The queue
// is cleared either way.
func (c *Controller) resolve(t uint64) {
	if !c.hasQueued || t-c.lastMove < c.interval {
		return
	}
	c.lastMove = t
	dir := c.queued
	c.hasQueued = false

	res := c.engine.OnMove(dir.Step(c.pos))
	c.pos = res.Pos
	if res.Blocked {
		return
	}
	if c.onMoved != nil {
		c.onMoved(c.pos)
	}
	if c.onEntityCheck != nil {
		c.onEntityCheck(c.pos)
	}
}

// Cleanup drops the tick subscription and hooks. Called on leaving the
// level.
func (c *Controller) Cleanup() {
	if c.mode == ModeTicked {
		c.sched.Unsubscribe(SubID)
	}
	c.hasQueued = false
	c.onMoved = nil
	c.onEntityCheck = nil
}
