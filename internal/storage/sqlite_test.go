package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestRecordAndBest(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordCompletion("level01", 12.5, 40); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if err := store.RecordCompletion("level01", 8.0, 31); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if err := store.RecordCompletion("level01", 20.0, 60); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if err := store.RecordCompletion("level02", 30.0, 90); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}

	best, err := store.Best("level01")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best == nil {
		t.Fatal("Best() returned nil for a completed level")
	}
	if best.ElapsedSecs != 8.0 || best.Moves != 31 {
		t.Errorf("Best = %.1fs/%d moves, expected 8.0s/31", best.ElapsedSecs, best.Moves)
	}
}

func TestBestOnEmptyLevel(t *testing.T) {
	store := openTestStore(t)

	best, err := store.Best("never-played")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil best for unplayed level, got %+v", best)
	}
}

func TestCompletionsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := store.RecordCompletion("level01", float64(50-i*10), 100); err != nil {
			t.Fatalf("RecordCompletion() failed: %v", err)
		}
	}

	entries, err := store.Completions("level01", 3)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries with limit, got %d", len(entries))
	}
	// Fastest first: 10, 20, 30
	if entries[0].ElapsedSecs != 10 || entries[1].ElapsedSecs != 20 || entries[2].ElapsedSecs != 30 {
		t.Errorf("Completions not ordered fastest-first: %+v", entries)
	}
}

func TestIsCompletedAndSet(t *testing.T) {
	store := openTestStore(t)

	done, err := store.IsCompleted("level01")
	if err != nil {
		t.Fatalf("IsCompleted() failed: %v", err)
	}
	if done {
		t.Error("Fresh store reports a completion")
	}

	store.RecordCompletion("level01", 10, 20)
	store.RecordCompletion("level03", 40, 80)

	done, err = store.IsCompleted("level01")
	if err != nil {
		t.Fatalf("IsCompleted() failed: %v", err)
	}
	if !done {
		t.Error("Recorded completion not reported")
	}

	set, err := store.CompletedLevels()
	if err != nil {
		t.Fatalf("CompletedLevels() failed: %v", err)
	}
	if !set["level01"] || !set["level03"] || set["level02"] {
		t.Errorf("Completed set = %v", set)
	}
}

func TestClearLevel(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion("level01", 10, 20)
	store.RecordCompletion("level02", 15, 25)

	if err := store.ClearLevel("level01"); err != nil {
		t.Fatalf("ClearLevel() failed: %v", err)
	}

	done, _ := store.IsCompleted("level01")
	if done {
		t.Error("level01 still completed after clear")
	}
	done, _ = store.IsCompleted("level02")
	if !done {
		t.Error("level02 should not be affected by clearing level01")
	}
}

func TestGetLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion("level01", 12.5, 40)
	store.RecordCompletion("level01", 8.0, 55)

	stats, err := store.GetLevelStats("level01")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Clears != 2 {
		t.Errorf("Clears = %d, expected 2", stats.Clears)
	}
	if stats.BestSecs != 8.0 {
		t.Errorf("BestSecs = %v, expected 8.0", stats.BestSecs)
	}
	if stats.FewestMove != 40 {
		t.Errorf("FewestMove = %d, expected 40", stats.FewestMove)
	}

	// Unplayed levels get zeroes, not an error
	empty, err := store.GetLevelStats("level09")
	if err != nil {
		t.Fatalf("GetLevelStats() on empty failed: %v", err)
	}
	if empty.Clears != 0 || empty.BestSecs != 0 {
		t.Errorf("Empty stats = %+v", empty)
	}
}
