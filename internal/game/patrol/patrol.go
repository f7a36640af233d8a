// Package patrol owns the active spy entities of a level and advances
// them deterministically along their closed routes.
//
// The advancer trusts its routes: closure and wall avoidance are
// validated when the level is built, so movement here does no bounds or
// wall checking. A malformed route is a content bug, not a runtime
// condition.
package patrol

import (
	"vimaze/internal/core"
	"vimaze/internal/game/tick"
	"vimaze/internal/level"
)

// SpyRune is the marker drawn at each entity's cell.
const SpyRune = 'S'

// BaseMoveInterval is the move cadence in ticks for a speed-1.0 spy
// (2 ticks = 10 moves/sec at 20 ticks/sec).
const BaseMoveInterval = 2

// SubID is the scheduler subscription id for the patrol advancer. The
// "gameplay:" prefix puts it in the bulk-unsubscribe group torn down on
// leaving the gameplay screen.
const SubID = "gameplay:spies"

// Surface is the shared document the spies draw on. Also written by the
// player marker; everything runs on one cooperative loop, so writes are
// ordered, not locked.
type Surface interface {
	RuneAt(pos core.Pos) rune
	SetRune(pos core.Pos, r rune)
}

// Detector answers whether a player position is caught. Satisfied by the
// collision engine.
type Detector interface {
	CheckCollision(playerPos core.Pos) bool
}

// Entity is one active spy.
type Entity struct {
	ID    string
	pos   core.Pos
	route []level.Vector
	vec   int
	// interval is the per-entity move cadence in ticks; lastMove the
	// tick of the previous step.
	interval uint64
	lastMove uint64
	// saved is the document rune under the spy, restored on departure.
	saved rune
}

// Pos returns the entity's current cell.
func (e *Entity) Pos() core.Pos {
	return e.pos
}

// System holds all active entities for one gameplay session.
type System struct {
	sched    *tick.Scheduler
	surface  Surface
	detector Detector

	playerPos func() core.Pos
	onCaught  func(spyID string)

	entities []*Entity
}

// NewSystem creates an empty patrol system.
func NewSystem(sched *tick.Scheduler, surface Surface) *System {
	return &System{sched: sched, surface: surface}
}

// SetDetector wires the proximity check run after every entity step.
func (s *System) SetDetector(d Detector) {
	s.detector = d
}

// SetPlayerSource wires the provider of the player's current position.
func (s *System) SetPlayerSource(fn func() core.Pos) {
	s.playerPos = fn
}

// OnCaught registers the defeat callback, invoked with the id of the spy
// that detected the player.
func (s *System) OnCaught(fn func(spyID string)) {
	s.onCaught = fn
}

// MoveInterval converts a speed multiplier into a tick interval. Faster
// spies get shorter intervals, floor-clamped to one tick.
func MoveInterval(speed float64) uint64 {
	if speed <= 0 {
		speed = 1
	}
	iv := uint64(float64(BaseMoveInterval) / speed)
	if iv < 1 {
		iv = 1
	}
	return iv
}

// Spawn places an entity on the document and registers it for ticking.
// The rune under the spawn cell is saved for restoration.
func (s *System) Spawn(id string, spawn core.Pos, route []level.Vector, speed float64) *Entity {
	e := &Entity{
		ID:       id,
		pos:      spawn,
		route:    route,
		interval: MoveInterval(speed),
		lastMove: s.sched.Current(),
		saved:    s.surface.RuneAt(spawn),
	}
	s.surface.SetRune(spawn, SpyRune)
	s.entities = append(s.entities, e)
	return e
}

// SpawnAll spawns every spy of a level in definition order.
func (s *System) SpawnAll(spies []level.Spy) {
	for _, spy := range spies {
		s.Spawn(spy.ID, spy.Spawn, spy.Route, spy.Speed)
	}
}

// Attach subscribes the advancer on the scheduler. Separate from
// SpawnAll so the session controls registration order relative to the
// player subscription.
func (s *System) Attach() {
	s.sched.Subscribe(SubID, 1, func(t uint64) bool {
		s.OnTick(t)
		return true
	})
}

// Positions returns the current cell of every active entity, in spawn
// order.
func (s *System) Positions() []core.Pos {
	out := make([]core.Pos, len(s.entities))
	for i, e := range s.entities {
		out[i] = e.pos
	}
	return out
}

// OnTick advances every entity whose move interval has elapsed: restore
// the old cell, step one unit along the current vector, save and
// overwrite the new cell, and wrap to the next vector when the leg
// completes. After each step the player's position is checked.
func (s *System) OnTick(t uint64) {
	for _, e := range s.entities {
		if t-e.lastMove < e.interval {
			continue
		}
		e.lastMove = t

		s.surface.SetRune(e.pos, e.saved)
		vec := e.route[e.vec]
		e.pos = vec.Dir.Step(e.pos)
		e.saved = s.surface.RuneAt(e.pos)
		s.surface.SetRune(e.pos, SpyRune)
		if e.pos == vec.End {
			e.vec = (e.vec + 1) % len(e.route)
		}

		if s.detector != nil && s.playerPos != nil && s.detector.CheckCollision(s.playerPos()) {
			if s.onCaught != nil {
				s.onCaught(e.ID)
			}
			return
		}
	}
}

// RemoveAll restores every entity's saved rune and clears the set.
// Called on level cleanup; safe when empty.
func (s *System) RemoveAll() {
	for _, e := range s.entities {
		s.surface.SetRune(e.pos, e.saved)
	}
	s.entities = nil
}
