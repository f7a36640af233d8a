// Package level provides level definitions for the maze game: the YAML
// authoring schema, the maze grid builder, patrol route expansion, offline
// content validation, and a directory loader.
//
// Content correctness is enforced here, at load time, and nowhere else:
// the runtime (collision, patrol) assumes validated content and performs no
// defensive checking of its own. A level that fails validation never
// reaches gameplay.
package level

import (
	"vimaze/internal/core"
)

// Grid cell markers. The wall rune is configurable per level for maze
// variants; floor and exit are fixed.
const (
	DefaultWallRune = '█'
	FloorRune       = ' '
	ExitRune        = 'Q'
)

// Feature names a level can enable.
const (
	FeatureSpies = "spies"
)

// Vector is one leg of a patrol route: walk one cell per move in Dir until
// the entity's position equals End.
type Vector struct {
	End core.Pos
	Dir core.Direction
}

// Spy is one patrol entity definition. Route is a closed loop: walking
// every leg from Spawn returns to Spawn exactly. Validation guarantees
// this before the level is playable.
type Spy struct {
	ID    string
	Spawn core.Pos
	Route []Vector
	Speed float64 // speed multiplier; 1.0 = base cadence
}

// Level is a fully built, validated level ready for gameplay.
type Level struct {
	ID       string
	Name     string
	Lore     string
	Rows     int
	Cols     int
	Start    core.Pos
	Exit     core.Pos
	Maze     *Maze
	Spies    []Spy
	Features []string
	Blocked  []core.MotionCategory
	WinText  string // optional secondary win condition: exact text of the exit row
	FilePath string

	// PlayerInterval overrides the ticked-mode move cadence in ticks.
	// Zero keeps the default.
	PlayerInterval int
}

// HasFeature reports whether the level enables the named feature.
func (l *Level) HasFeature(name string) bool {
	for _, f := range l.Features {
		if f == name {
			return true
		}
	}
	return false
}

// Ticked reports whether the level uses scheduler-driven player movement.
// Entity-bearing levels always do, so that player and spy speed share the
// same clock.
func (l *Level) Ticked() bool {
	return l.HasFeature(FeatureSpies)
}

// Blocks reports whether the level blocks the given motion category.
// Step motions are never blocked.
func (l *Level) Blocks(cat core.MotionCategory) bool {
	if cat == core.MotionStep {
		return false
	}
	for _, b := range l.Blocked {
		if b == cat {
			return true
		}
	}
	return false
}
