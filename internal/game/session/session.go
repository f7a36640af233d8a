// Package session is the game state machine. It owns the screen state,
// wires the per-level subsystems together on entry, tears them down on
// exit, and decides wins and defeats from quit attempts and spy
// collisions.
package session

import (
	"github.com/charmbracelet/log"

	"vimaze/internal/core"
	"vimaze/internal/game/collision"
	"vimaze/internal/game/patrol"
	"vimaze/internal/game/player"
	"vimaze/internal/game/tick"
	"vimaze/internal/level"
)

// State is the current screen.
type State int

const (
	StateLore State = iota
	StateGameplay
	StateFireworks
	StateResults
	StateDefeat
)

func (s State) String() string {
	switch s {
	case StateLore:
		return "lore"
	case StateGameplay:
		return "gameplay"
	case StateFireworks:
		return "fireworks"
	case StateResults:
		return "results"
	case StateDefeat:
		return "defeat"
	}
	return "unknown"
}

// DefaultTickRate is the heartbeat frequency the durations below assume.
const DefaultTickRate = 20

// AutoAdvanceTicks is how long the fireworks and defeat screens hold
// before auto-transitioning (40 ticks = 2s at 20 ticks/sec).
const AutoAdvanceTicks = 40

// FireworkFrameTicks is the celebration animation cadence.
const FireworkFrameTicks = 5

// autoSubID is the one pending auto-transition timer. A single id means
// a forced transition cancels whatever was queued.
const autoSubID = "transition:auto"

// fireworksAnimID drives the celebration frames; the prefix groups it
// for bulk teardown.
const fireworksAnimID = "fireworks:anim"

// Stats is the frozen outcome of a completed level.
type Stats struct {
	LevelID     string
	LevelName   string
	ElapsedSecs float64
	Moves       int
}

// Store persists completions. Nil disables persistence.
type Store interface {
	RecordCompletion(levelID string, elapsedSecs float64, moves int) error
}

// Session drives one player's game across screens. Everything runs on
// the platform's single cooperative loop.
type Session struct {
	sched    *tick.Scheduler
	store    Store
	logger   *log.Logger
	hl       collision.Highlighter
	tickRate int

	// engine tuning applied on level entry; zero flashTicks and a
	// negative radius keep the engine defaults
	flashTicks uint64
	radius     int

	state State
	lvl   *level.Level

	doc       *Document
	engine    *collision.Engine
	spies     *patrol.System
	playerCtl *player.Controller

	// exit gate, in host byte units; zero row disables it so quit
	// behaves normally outside gameplay
	exitRow     int
	exitByteCol int

	startTick uint64
	moves     int
	won       bool
	last      Stats
	frame     int
}

// New creates a session on the lore screen.
func New(sched *tick.Scheduler, store Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		sched:    sched,
		store:    store,
		logger:   logger,
		tickRate: DefaultTickRate,
		radius:   -1,
		state:    StateLore,
	}
}

// SetHighlighter wires the platform's highlight service, passed through
// to the collision engine on level entry.
func (s *Session) SetHighlighter(hl collision.Highlighter) {
	s.hl = hl
}

// SetTickRate overrides the tick rate assumed for elapsed-time stats.
func (s *Session) SetTickRate(rate int) {
	if rate > 0 {
		s.tickRate = rate
	}
}

// SetTuning overrides the collision flash duration and spy detection
// radius used for every level from here on.
func (s *Session) SetTuning(flashTicks uint64, radius int) {
	s.flashTicks = flashTicks
	s.radius = radius
}

func (s *Session) State() State                  { return s.state }
func (s *Session) Level() *level.Level           { return s.lvl }
func (s *Session) Doc() *Document                { return s.doc }
func (s *Session) Player() *player.Controller    { return s.playerCtl }
func (s *Session) Engine() *collision.Engine     { return s.engine }
func (s *Session) LastResult() Stats             { return s.last }
func (s *Session) Won() bool                     { return s.won }
func (s *Session) Moves() int                    { return s.moves }
func (s *Session) FrameIndex() int               { return s.frame }

// ExitTarget returns the tracked exit gate in host byte units, or (0,0)
// when no gameplay level is active.
func (s *Session) ExitTarget() (row, byteCol int) {
	return s.exitRow, s.exitByteCol
}

// ElapsedSecs returns the running gameplay time.
func (s *Session) ElapsedSecs() float64 {
	if s.state != StateGameplay {
		return s.last.ElapsedSecs
	}
	return float64(s.sched.Current()-s.startTick) / float64(s.tickRate)
}

// SelectLevel enters gameplay for the given level.
func (s *Session) SelectLevel(lvl *level.Level) {
	s.lvl = lvl
	s.Transition(StateGameplay)
}

// Transition moves the machine to a new state: cancel any pending
// auto-transition, run the current state's exit effects, switch, run the
// new state's entry effects.
func (s *Session) Transition(newState State) {
	s.sched.Unsubscribe(autoSubID)

	switch s.state {
	case StateGameplay:
		s.teardownLevel()
	case StateFireworks:
		s.sched.UnsubscribeByPrefix("fireworks:")
	case StateDefeat:
		s.sched.UnsubscribeByPrefix("defeat:")
	}

	s.logger.Debug("state transition", "from", s.state, "to", newState)
	s.state = newState

	switch newState {
	case StateGameplay:
		s.setupLevel()
	case StateFireworks:
		s.frame = 0
		s.sched.Subscribe(fireworksAnimID, FireworkFrameTicks, func(uint64) bool {
			s.frame++
			return true
		})
		s.sched.After(autoSubID, AutoAdvanceTicks, func(uint64) {
			s.Transition(StateResults)
		})
	case StateDefeat:
		s.sched.After(autoSubID, AutoAdvanceTicks, func(uint64) {
			s.Transition(StateLore)
		})
	}
}

// setupLevel is the gameplay entry effect: build the document, wire
// collision, player, and (for ticked levels) the patrol system, set the
// exit gate, and reset the run counters.
func (s *Session) setupLevel() {
	lvl := s.lvl
	s.doc = NewDocument(lvl.Maze)
	s.engine = collision.NewEngine(lvl.Maze, s.sched, s.hl)
	if s.flashTicks > 0 {
		s.engine.SetFlashTicks(s.flashTicks, s.tickRate)
	}
	if s.radius >= 0 {
		s.engine.SetRadius(s.radius)
	}

	mode := player.ModeNative
	if lvl.Ticked() {
		mode = player.ModeTicked
	}
	s.playerCtl = player.NewController(s.engine, s.sched, lvl.Start, mode)
	if lvl.PlayerInterval > 0 {
		s.playerCtl.SetMoveInterval(lvl.PlayerInterval)
	}
	s.playerCtl.OnMoved(func(core.Pos) { s.moves++ })
	s.playerCtl.OnEntityCheck(func(p core.Pos) {
		if s.engine.CheckCollision(p) {
			s.LevelFailed("walked into a spy")
		}
	})

	if lvl.Ticked() {
		s.spies = patrol.NewSystem(s.sched, s.doc)
		s.spies.SetDetector(s.engine)
		s.spies.SetPlayerSource(s.playerCtl.Pos)
		s.spies.OnCaught(func(spyID string) {
			s.LevelFailed("caught by " + spyID)
		})
		s.spies.SpawnAll(lvl.Spies)
		s.engine.SetEntitySource(s.spies.Positions)
		// Spies subscribe first so that within a tick they move before
		// the player's intent resolves.
		s.spies.Attach()
	}
	s.playerCtl.Attach()

	s.exitRow = lvl.Exit.Row
	s.exitByteCol = lvl.Maze.ByteCol(lvl.Exit.Row, lvl.Exit.Col)

	s.startTick = s.sched.Current()
	s.moves = 0
	s.won = false
	s.logger.Info("level started", "level", lvl.ID, "mode", mode)
}

// teardownLevel is the gameplay exit effect.
func (s *Session) teardownLevel() {
	s.sched.UnsubscribeByPrefix("gameplay:")
	if s.spies != nil {
		s.spies.RemoveAll()
		s.spies = nil
	}
	if s.playerCtl != nil {
		s.playerCtl.Cleanup()
	}
	if s.engine != nil {
		s.engine.Cleanup()
	}
	s.exitRow = 0
	s.exitByteCol = 0
}

// QuitRequested handles the host's intercepted quit command. The return
// value tells the host whether the quit was consumed; outside gameplay
// it never is, so quitting non-game screens behaves normally.
//
// A quit at the exit with the level's win predicate satisfied completes
// the level. A forced quit, or a quit anywhere else, is an abandonment
// and goes to the defeat screen.
func (s *Session) QuitRequested(forced bool) bool {
	if s.state != StateGameplay {
		return false
	}
	if !forced && s.atExit() && s.winPredicate() {
		s.complete()
		return true
	}
	s.logger.Info("level abandoned", "level", s.lvl.ID, "forced", forced)
	s.Transition(StateDefeat)
	return true
}

// LevelFailed reports a spy collision; goes straight to defeat.
func (s *Session) LevelFailed(reason string) {
	if s.state != StateGameplay {
		return
	}
	s.logger.Info("level failed", "level", s.lvl.ID, "reason", reason)
	s.Transition(StateDefeat)
}

// atExit compares the player and exit in host byte units, the same
// addressing the quit interceptor sees.
func (s *Session) atExit() bool {
	p := s.playerCtl.Pos()
	return p.Row == s.exitRow && s.doc.ByteCol(p) == s.exitByteCol
}

// winPredicate is the level's secondary win condition: empty means the
// exit alone wins, otherwise the required text must appear in the
// document.
func (s *Session) winPredicate() bool {
	if s.lvl.WinText == "" {
		return true
	}
	return s.doc.Contains(s.lvl.WinText)
}

// complete freezes the run stats, persists the completion, and starts
// the celebration.
func (s *Session) complete() {
	s.last = Stats{
		LevelID:     s.lvl.ID,
		LevelName:   s.lvl.Name,
		ElapsedSecs: float64(s.sched.Current()-s.startTick) / float64(s.tickRate),
		Moves:       s.moves,
	}
	s.won = true
	if s.store != nil {
		if err := s.store.RecordCompletion(s.last.LevelID, s.last.ElapsedSecs, s.last.Moves); err != nil {
			s.logger.Error("failed to record completion", "level", s.last.LevelID, "err", err)
		}
	}
	s.logger.Info("level complete",
		"level", s.last.LevelID, "secs", s.last.ElapsedSecs, "moves", s.last.Moves)
	s.Transition(StateFireworks)
}
