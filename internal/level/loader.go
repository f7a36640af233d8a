package level

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vimaze/internal/core"
)

//go:embed levels/*.yaml
var embeddedLevels embed.FS

// Build turns a parsed definition into a validated, playable level.
// Any validation failure is a hard error: malformed content never reaches
// gameplay.
func Build(def Definition) (*Level, error) {
	maze := NewMaze(buildGrid(def), def.wallRune())

	var spies []Spy
	for _, sd := range def.Spies {
		spawn, route, err := expandRoute(sd)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", def.ID, err)
		}
		speed := sd.Speed
		if speed == 0 {
			speed = 1.0
		}
		spies = append(spies, Spy{ID: sd.ID, Spawn: spawn, Route: route, Speed: speed})
	}

	var blocked []core.MotionCategory
	for _, name := range def.Blocked {
		cat, ok := core.ParseMotionCategory(name)
		if !ok {
			return nil, fmt.Errorf("level %s: unknown blocked motion category %q", def.ID, name)
		}
		blocked = append(blocked, cat)
	}

	lvl := &Level{
		ID:             def.ID,
		Name:           def.Name,
		Lore:           def.Lore,
		Rows:           def.Dimensions[0],
		Cols:           def.Dimensions[1],
		Start:          core.Pos{Row: def.Start[0], Col: def.Start[1]},
		Exit:           core.Pos{Row: def.Exit[0], Col: def.Exit[1]},
		Maze:           maze,
		Spies:          spies,
		Features:       def.Features,
		Blocked:        blocked,
		WinText:        def.WinText,
		PlayerInterval: def.Tuning.PlayerIntervalTicks,
	}

	if errs := Validate(lvl); len(errs) > 0 {
		return nil, fmt.Errorf("level %s: invalid content: %w", def.ID, errors.Join(errs...))
	}
	return lvl, nil
}

// ParseAndBuild is the one-call path from YAML bytes to a playable level.
func ParseAndBuild(data []byte) (*Level, error) {
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	return Build(def)
}

// Loader loads levels from a directory, falling back to the embedded set
// when no directory is configured.
type Loader struct {
	Root string
}

// NewLoader creates a loader. An empty root means embedded levels only.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll returns every level, sorted by ID for deterministic ordering.
// A level that fails to parse or validate fails the whole load: there is
// no partial-content tolerance.
func (ld *Loader) LoadAll() ([]*Level, error) {
	if ld.Root == "" {
		return loadEmbedded()
	}

	var levels []*Level
	err := filepath.WalkDir(ld.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		lvl, err := ParseAndBuild(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		lvl.FilePath = path
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking %s: %w", ld.Root, err)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("level: no level files found under %s", ld.Root)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadByID loads a specific level by ID.
func (ld *Loader) LoadByID(id string) (*Level, error) {
	levels, err := ld.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level: not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (ld *Loader) ListIDs() ([]string, error) {
	levels, err := ld.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// loadEmbedded builds the levels shipped in the binary.
func loadEmbedded() ([]*Level, error) {
	entries, err := embeddedLevels.ReadDir("levels")
	if err != nil {
		return nil, fmt.Errorf("level: embedded levels unavailable: %w", err)
	}

	var levels []*Level
	for _, e := range entries {
		data, err := embeddedLevels.ReadFile("levels/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("level: reading embedded %s: %w", e.Name(), err)
		}
		lvl, err := ParseAndBuild(data)
		if err != nil {
			return nil, fmt.Errorf("level: embedded %s: %w", e.Name(), err)
		}
		levels = append(levels, lvl)
	}

	sortLevels(levels)
	return levels, nil
}

func sortLevels(levels []*Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}
