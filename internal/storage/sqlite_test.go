package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-memory/internal/memory"
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

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok:%v err:%v, want not found", ok, err)
	}

	if err := store.Set("k", "one"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("k", "two"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("k")
	if err != nil || !ok || v != "two" {
		t.Errorf("Get(k) = %q, %v, %v; want \"two\", true, nil", v, ok, err)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Error("key still present after Delete()")
	}
}

func TestStoreBestTimePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "best.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.BestStore().SetBestTime(45); err != nil {
		t.Fatalf("SetBestTime() failed: %v", err)
	}
	store.Close()

	// Reopen: the best time outlives the process.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	seconds, ok, err := store.BestStore().BestTime()
	if err != nil || !ok || seconds != 45 {
		t.Errorf("BestTime() = %d, %v, %v; want 45, true, nil", seconds, ok, err)
	}

	raw, _, _ := store.Get(memory.BestTimeKey)
	if raw != "45" {
		t.Errorf("raw value = %q, want \"45\"", raw)
	}
}

func TestStoreTopResults(t *testing.T) {
	store := openTestStore(t)

	games := []memory.Result{
		{GameID: "g1", TotalCards: 24, Moves: 20, Seconds: 90},
		{GameID: "g2", TotalCards: 24, Moves: 18, Seconds: 60, IsNewBest: true},
		{GameID: "g3", TotalCards: 24, Moves: 15, Seconds: 60},
		{GameID: "g4", TotalCards: 24, Moves: 30, Seconds: 120},
	}
	for _, g := range games {
		if err := store.RecordResult(g); err != nil {
			t.Fatalf("RecordResult(%s) failed: %v", g.GameID, err)
		}
	}

	top, err := store.TopResults(3)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(top))
	}

	// Fastest first, fewer moves breaks the tie.
	want := []string{"g3", "g2", "g1"}
	for i, id := range want {
		if top[i].GameID != id {
			t.Errorf("top[%d] = %s, want %s", i, top[i].GameID, id)
		}
	}
	if !top[1].NewBest {
		t.Error("new_best flag not persisted")
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		store.RecordResult(memory.Result{GameID: id, TotalCards: 4, Moves: 2, Seconds: 5})
	}

	recent, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].GameID != "c" || recent[1].GameID != "b" {
		t.Errorf("RecentResults(2) = %v, want [c b]", recent)
	}
}

func TestStoreDuplicateGameID(t *testing.T) {
	store := openTestStore(t)

	r := memory.Result{GameID: "same", TotalCards: 4, Moves: 2, Seconds: 5}
	if err := store.RecordResult(r); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}
	if err := store.RecordResult(r); err == nil {
		t.Error("recording the same game twice should fail")
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.RecordResult(memory.Result{GameID: "x", TotalCards: 4, Moves: 2, Seconds: 5})
	store.BestStore().SetBestTime(5)
	store.Set("other", "kept")

	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	results, _ := store.TopResults(10)
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
	if _, ok, _ := store.BestStore().BestTime(); ok {
		t.Error("best time should be cleared")
	}
	if v, ok, _ := store.Get("other"); !ok || v != "kept" {
		t.Error("unrelated keys should not be affected by ClearResults")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty store failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.RecordResult(memory.Result{GameID: "a", TotalCards: 4, Moves: 4, Seconds: 30})
	store.RecordResult(memory.Result{GameID: "b", TotalCards: 4, Moves: 2, Seconds: 50})

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.BestTime != 30 || stats.FewestMoves != 2 {
		t.Errorf("stats = %+v, want 2 games, best 30, fewest moves 2", stats)
	}
	if stats.AvgTime != 40 {
		t.Errorf("AvgTime = %v, want 40", stats.AvgTime)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSessionWithStore(t *testing.T) {
	store := openTestStore(t)
	sched := memory.NewManualScheduler()

	s := memory.NewSession(memory.Options{
		Scheduler: sched,
		Best:      store.BestStore(),
		Recorder:  store,
	})
	defer s.Close()

	if err := s.NewGame(2, []memory.Symbol{"A"}); err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	sched.Advance(7 * time.Second)
	s.Select(0)
	s.Select(1)

	seconds, ok, _ := store.BestStore().BestTime()
	if !ok || seconds != 7 {
		t.Errorf("stored best = %d (%v), want 7", seconds, ok)
	}
	results, _ := store.TopResults(1)
	if len(results) != 1 || results[0].Moves != 1 {
		t.Errorf("recorded results = %v", results)
	}
}

func TestStoreSetIfLower(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name        string
		value       int
		wantStored  bool
		wantCurrent string
	}{
		{"empty key", 50, true, "50"},
		{"higher", 60, false, "50"},
		{"equal", 50, false, "50"},
		{"lower", 40, true, "40"},
		{"zero", 0, true, "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stored, current, err := store.SetIfLower("k", tc.value)
			if err != nil {
				t.Fatalf("SetIfLower(%d) failed: %v", tc.value, err)
			}
			if stored != tc.wantStored || current != tc.wantCurrent {
				t.Errorf("SetIfLower(%d) = (%v, %q), expected (%v, %q)",
					tc.value, stored, current, tc.wantStored, tc.wantCurrent)
			}
		})
	}
}

func TestStoreSetIfLowerReplacesUnreadable(t *testing.T) {
	for _, raw := range []string{"", "abc", "-5", "12s"} {
		store := openTestStore(t)
		store.Set("k", raw)

		stored, current, err := store.SetIfLower("k", 90)
		if err != nil || !stored || current != "90" {
			t.Errorf("stored %q: SetIfLower(90) = (%v, %q, %v), want replaced", raw, stored, current, err)
		}
	}
}

func TestSessionsSharingStoreKeepLowestBest(t *testing.T) {
	store := openTestStore(t)
	store.BestStore().SetBestTime(60)

	newSession := func() (*memory.Session, *memory.ManualScheduler) {
		sched := memory.NewManualScheduler()
		s := memory.NewSession(memory.Options{
			Scheduler: sched,
			Best:      store.BestStore(),
			Recorder:  store,
		})
		t.Cleanup(s.Close)
		if err := s.NewGame(2, []memory.Symbol{"A"}); err != nil {
			t.Fatal(err)
		}
		return s, sched
	}
	slow, slowSched := newSession()
	fast, fastSched := newSession()

	fastSched.Advance(40 * time.Second)
	fast.Select(0)
	fast.Select(1)

	slowSched.Advance(50 * time.Second)
	slow.Select(0)
	slow.Select(1)

	if r, _ := fast.LastResult(); !r.IsNewBest || r.Best != 40 {
		t.Errorf("fast result = %+v, want new best 40", r)
	}
	if r, _ := slow.LastResult(); r.IsNewBest || r.Best != 40 {
		t.Errorf("slow result = %+v, want not best, best 40", r)
	}
	if seconds, _, _ := store.BestStore().BestTime(); seconds != 40 {
		t.Errorf("stored best = %d, want 40", seconds)
	}
}

func TestStoreImproveBestTimeConcurrent(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	improved := make(chan int, 20)
	for i := range 20 {
		wg.Add(1)
		go func(seconds int) {
			defer wg.Done()
			ok, _, err := store.BestStore().ImproveBestTime(seconds)
			if err != nil {
				t.Errorf("ImproveBestTime(%d) failed: %v", seconds, err)
				return
			}
			if ok {
				improved <- seconds
			}
		}(100 - i)
	}
	wg.Wait()
	close(improved)

	if seconds, _, _ := store.BestStore().BestTime(); seconds != 81 {
		t.Errorf("stored best = %d, want 81 (the lowest submitted)", seconds)
	}
	count := 0
	for range improved {
		count++
	}
	if count == 0 {
		t.Error("at least one call should report an improvement")
	}
}
