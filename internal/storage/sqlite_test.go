package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/state"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	store.Close()
}

func TestStoreKVGetPut(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; expected not found", ok, err)
	}

	if err := store.Put("fp_scores", []byte(`{"aim":3}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("fp_scores", []byte(`{"aim":5}`)); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, ok, err := store.Get("fp_scores")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if string(got) != `{"aim":5}` {
		t.Errorf("Get() = %s, expected last write to win", got)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "fp_scores" {
		t.Errorf("Keys() = %v, expected [fp_scores]", keys)
	}
}

func TestStoreBacksPersister(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	p := state.NewPersister(store, "alice")
	best := state.DefaultBestScores()
	best.Record(config.GameAim, 17)
	p.SaveScores(best)
	store.Close()

	// Reopen to prove the record survives.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	loaded := state.NewPersister(store, "alice").LoadScores()
	if loaded.Get(config.GameAim) != 17 {
		t.Errorf("aim best = %d, expected 17", loaded.Get(config.GameAim))
	}
}

func TestStoreCorruptRecordFallsBack(t *testing.T) {
	store := openTestStore(t)
	if err := store.Put(config.KeySensitivity, []byte("garbage")); err != nil {
		t.Fatal(err)
	}

	s := state.NewPersister(store, "").LoadSensitivity()
	if s != state.DefaultSensitivity() {
		t.Errorf("corrupt record should yield defaults, got %+v", s)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		player string
		game   string
		score  int
	}{
		{"alice", "aim", 10},
		{"bob", "aim", 5},
		{"alice", "aim", 20},
		{"bob", "mem", 7},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.player, r.game, r.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("aim", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 aim scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 20 || scores[0].Player != "alice" {
		t.Errorf("Expected alice 20 first, got %+v", scores[0])
	}
	if scores[2].Score != 5 || scores[2].Player != "bob" {
		t.Errorf("Expected bob 5 last, got %+v", scores[2])
	}

	memScores, err := store.TopScores("mem", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(memScores) != 1 {
		t.Errorf("Expected 1 mem score, got %d", len(memScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("", "aim", (i+1)*10)
	}

	scores, err := store.TopScores("aim", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 50, 40, 30 (top 3)
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("alice", "aim", 1)
	store.SaveScore("bob", "aim", 2)
	store.SaveScore("alice", "mem", 3)

	recent, err := store.RecentScores("alice", 10)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 runs for alice, got %d", len(recent))
	}
	if recent[0].GameID != "mem" {
		t.Errorf("Expected newest run first, got %+v", recent[0])
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("mem")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("", "mem", 4)
	store.SaveScore("", "mem", 9)
	store.SaveScore("", "mem", 6)

	high, err = store.HighScore("mem")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 9 {
		t.Errorf("Expected high score of 9, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("", "aim", 10)
	store.SaveScore("", "aim", 20)
	store.SaveScore("", "mem", 3)

	if err := store.ClearScores("aim"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	aimScores, _ := store.TopScores("aim", 10)
	if len(aimScores) != 0 {
		t.Errorf("Expected 0 aim scores after clear, got %d", len(aimScores))
	}

	memScores, _ := store.TopScores("mem", 10)
	if len(memScores) != 1 {
		t.Errorf("mem scores should not be affected by clearing aim")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("aim")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore("", "aim", 10)
	store.SaveScore("", "aim", 30)
	store.SaveScore("", "mem", 5)

	stats, err = store.GetGameStats("aim")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalScore != 40 {
		t.Errorf("Unexpected aim stats: %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["mem"].HighScore != 5 {
		t.Errorf("Unexpected all-games stats: %v", all)
	}
}
