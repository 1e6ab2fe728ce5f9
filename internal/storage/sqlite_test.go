package storage

import (
	"errors"
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

func TestStoreOpenCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestSaveResultAndTopResults(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []ResultEntry{
		{Tier: "easy", Score: 100, DurationSecs: 120, Equations: 10, HintsUsed: 1},
		{Tier: "easy", Score: 300, DurationSecs: 90, Equations: 10},
		{Tier: "easy", Score: 200, DurationSecs: 200, Equations: 10, HintsUsed: 3},
		{Tier: "hard", Score: 500, DurationSecs: 400, Equations: 20},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	results, err := store.TopResults("easy", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 easy results, got %d", len(results))
	}

	// Sorted by score descending.
	if results[0].Score != 300 || results[1].Score != 200 || results[2].Score != 100 {
		t.Errorf("Results not in descending score order: %v", results)
	}
	if results[0].DurationSecs != 90 {
		t.Errorf("DurationSecs = %d, want 90", results[0].DurationSecs)
	}
	if results[2].HintsUsed != 1 {
		t.Errorf("HintsUsed = %d, want 1", results[2].HintsUsed)
	}

	hard, err := store.TopResults("hard", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(hard) != 1 {
		t.Errorf("Expected 1 hard result, got %d", len(hard))
	}
}

func TestTopResultsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveResult(ResultEntry{Tier: "medium", Score: (i + 1) * 100})
	}

	results, err := store.TopResults("medium", 3)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results with limit, got %d", len(results))
	}
	if results[0].Score != 500 || results[1].Score != 400 || results[2].Score != 300 {
		t.Errorf("Results not in expected order: %v", results)
	}
}

func TestBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("easy")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty tier, got %d", best)
	}

	store.SaveResult(ResultEntry{Tier: "easy", Score: 100})
	store.SaveResult(ResultEntry{Tier: "easy", Score: 300})
	store.SaveResult(ResultEntry{Tier: "easy", Score: 200})

	best, err = store.BestScore("easy")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestSaveGameRoundTrip(t *testing.T) {
	store := openTestStore(t)

	state := []byte("version: 1\ntier: easy\n")
	if err := store.SaveGame("slot1", "easy", 150, state); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	got, err := store.LoadGame("slot1")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if string(got) != string(state) {
		t.Errorf("LoadGame() = %q, want %q", got, state)
	}

	// Writing the same slot replaces its content.
	newState := []byte("version: 1\ntier: hard\n")
	if err := store.SaveGame("slot1", "hard", 400, newState); err != nil {
		t.Fatalf("SaveGame() overwrite failed: %v", err)
	}
	got, err = store.LoadGame("slot1")
	if err != nil {
		t.Fatalf("LoadGame() after overwrite failed: %v", err)
	}
	if string(got) != string(newState) {
		t.Errorf("LoadGame() = %q after overwrite, want %q", got, newState)
	}

	slots, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("Expected 1 slot after overwrite, got %d", len(slots))
	}
	if slots[0].Tier != "hard" || slots[0].Score != 400 {
		t.Errorf("Slot metadata = %+v, want tier hard score 400", slots[0])
	}
}

func TestLoadGameMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadGame("nope")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadGame() on missing slot = %v, want ErrNoSave", err)
	}
}

func TestDeleteSave(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame("a", "easy", 0, []byte("x"))
	store.SaveGame("b", "easy", 0, []byte("y"))

	if err := store.DeleteSave("a"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if _, err := store.LoadGame("a"); !errors.Is(err, ErrNoSave) {
		t.Error("deleted slot should be gone")
	}
	if _, err := store.LoadGame("b"); err != nil {
		t.Errorf("unrelated slot should survive: %v", err)
	}

	// Deleting a missing slot is not an error.
	if err := store.DeleteSave("nope"); err != nil {
		t.Errorf("DeleteSave() on missing slot = %v, want nil", err)
	}
}
