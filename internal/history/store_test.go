package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRuns(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{RunID: "run-1", Timestamp: base, Mode: "check", CodeFile: "a.go", DocsFile: "a.md",
			EntityCount: 3, SectionCount: 2, WarningCount: 1, Duration: 40 * time.Millisecond},
		{RunID: "run-2", Timestamp: base.Add(time.Minute), Mode: "check", CodeFile: "a.go", DocsFile: "a.md",
			EntityCount: 3, SectionCount: 3, ErrorCount: 2, BaselinedCount: 1},
	}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.RunID, err)
		}
	}

	loaded, err := store.LoadRuns(time.Time{}, 0)
	if err != nil {
		t.Fatalf("LoadRuns failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(loaded))
	}
	// Newest first.
	if loaded[0].RunID != "run-2" || loaded[1].RunID != "run-1" {
		t.Errorf("Expected newest-first order, got %s then %s", loaded[0].RunID, loaded[1].RunID)
	}
	if loaded[1].WarningCount != 1 || loaded[1].Duration != 40*time.Millisecond {
		t.Errorf("Round trip lost fields: %+v", loaded[1])
	}
	if loaded[0].BaselinedCount != 1 {
		t.Errorf("Round trip lost baselined count: %+v", loaded[0])
	}
}

func TestLoadRunsSinceAndLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		err := store.SaveRun(Run{RunID: id, Timestamp: base.Add(time.Duration(i) * time.Hour),
			Mode: "check", CodeFile: "a.go", DocsFile: "a.md"})
		if err != nil {
			t.Fatal(err)
		}
	}

	since, err := store.LoadRuns(base.Add(30*time.Minute), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(since) != 2 {
		t.Errorf("Expected 2 runs since cutoff, got %d", len(since))
	}

	limited, err := store.LoadRuns(time.Time{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].RunID != "new" {
		t.Errorf("Expected only the newest run, got %v", limited)
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveRun(Run{}); err == nil {
		t.Error("Expected error for empty run id")
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Expected error when the path is a directory")
	}
}
