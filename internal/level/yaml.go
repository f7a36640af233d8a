package level

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is the YAML authoring schema for a level. All positions are
// 1-indexed [row, col] pairs, rows before columns, matching how a maze
// author reads the grid.
type Definition struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Lore       string      `yaml:"lore,omitempty"`
	Dimensions []int       `yaml:"dimensions"` // [rows, cols]
	Start      []int       `yaml:"start"`
	Exit       []int       `yaml:"exit"`
	WallChar   string      `yaml:"wall_char,omitempty"`
	Walls      []WallDef   `yaml:"walls,omitempty"`
	Openings   []WallDef   `yaml:"openings,omitempty"`
	Spies      []SpyDef    `yaml:"spies,omitempty"`
	Features   []string    `yaml:"features,omitempty"`
	Blocked    []string    `yaml:"blocked,omitempty"`
	WinText    string      `yaml:"win_text,omitempty"`
	Tuning     SpeedTuning `yaml:"tuning,omitempty"`
}

// WallDef is a wall or opening primitive.
//
//	type: rect   rect: [top, left, height, width]
//	type: hline  line: [row, col_start, col_end]
//	type: vline  line: [col, row_start, row_end]
//	type: point  pos:  [row, col]            (openings only)
type WallDef struct {
	Type string `yaml:"type"`
	Rect []int  `yaml:"rect,omitempty"`
	Line []int  `yaml:"line,omitempty"`
	Pos  []int  `yaml:"pos,omitempty"`
}

// SpyDef is an authored patrol entity. Patterns:
//
//	horizontal / vertical: back-and-forth between two endpoints
//	loop: waypoints walked cw or ccw, wrapping to the first
//
// Spawn defaults to the first endpoint or waypoint.
type SpyDef struct {
	ID        string  `yaml:"id"`
	Pattern   string  `yaml:"pattern"`
	Endpoints [][]int `yaml:"endpoints,omitempty"`
	Waypoints [][]int `yaml:"waypoints,omitempty"`
	Direction string  `yaml:"direction,omitempty"` // cw | ccw, loop only
	Spawn     []int   `yaml:"spawn,omitempty"`
	Speed     float64 `yaml:"speed,omitempty"`
}

// SpeedTuning holds optional per-level overrides of gameplay constants.
type SpeedTuning struct {
	PlayerIntervalTicks int `yaml:"player_interval_ticks,omitempty"`
}

// ParseDefinition parses a YAML level definition and checks the schema
// shape (not content correctness, which Validate handles after building).
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("level: yaml unmarshal: %w", err)
	}

	if def.ID == "" {
		return Definition{}, fmt.Errorf("level: missing id")
	}
	if len(def.Dimensions) != 2 {
		return Definition{}, fmt.Errorf("level %s: dimensions must be [rows, cols]", def.ID)
	}
	if def.Dimensions[0] < 3 || def.Dimensions[1] < 3 {
		return Definition{}, fmt.Errorf("level %s: dimensions %v too small for a bordered maze", def.ID, def.Dimensions)
	}
	if len(def.Start) != 2 {
		return Definition{}, fmt.Errorf("level %s: missing start [row, col]", def.ID)
	}
	if len(def.Exit) != 2 {
		return Definition{}, fmt.Errorf("level %s: missing exit [row, col]", def.ID)
	}
	if def.WallChar != "" && len([]rune(def.WallChar)) != 1 {
		return Definition{}, fmt.Errorf("level %s: wall_char must be a single character", def.ID)
	}
	if def.Tuning.PlayerIntervalTicks < 0 {
		return Definition{}, fmt.Errorf("level %s: tuning player_interval_ticks must not be negative", def.ID)
	}

	for _, s := range def.Spies {
		if s.ID == "" {
			return Definition{}, fmt.Errorf("level %s: spy missing id", def.ID)
		}
		switch s.Pattern {
		case "horizontal", "vertical":
			if len(s.Endpoints) != 2 {
				return Definition{}, fmt.Errorf("level %s: spy %s: %s pattern needs exactly 2 endpoints", def.ID, s.ID, s.Pattern)
			}
		case "loop":
			if len(s.Waypoints) < 2 {
				return Definition{}, fmt.Errorf("level %s: spy %s: loop pattern needs at least 2 waypoints", def.ID, s.ID)
			}
		default:
			return Definition{}, fmt.Errorf("level %s: spy %s: unknown pattern %q", def.ID, s.ID, s.Pattern)
		}
	}

	return def, nil
}

// wallRune returns the configured wall rune or the default.
func (d Definition) wallRune() rune {
	if d.WallChar == "" {
		return DefaultWallRune
	}
	return []rune(d.WallChar)[0]
}
