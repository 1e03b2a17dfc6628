package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.SaveRun(Run{GameID: "cowdodge", Seed: 1, TickRate: 60, ConfigYAML: "x: 1"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, _, err := store.Run(id); err != nil {
		t.Errorf("run lost after reopen: %v", err)
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		GameID:     "cowdodge",
		User:       "alice",
		Seed:       42,
		TickRate:   60,
		ConfigYAML: "playfield:\n  width: 800\n",
		Frames:     1234,
		FinalScore: 12,
		Checksum:   "9f3c2a17be04d611",
	}
	inputs := []Input{
		{Frame: 1, Seq: 0, Action: "primary"},
		{Frame: 30, Seq: 0, Action: "up"},
		{Frame: 30, Seq: 1, Action: "down"},
		{Frame: 900, Seq: 0, Action: "up"},
	}

	id, err := store.SaveRun(run, inputs)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", id, err)
	}

	got, gotInputs, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	run.ID = id
	got.CreatedAt = run.CreatedAt
	if *got != run {
		t.Errorf("run = %+v, expected %+v", *got, run)
	}
	if !reflect.DeepEqual(gotInputs, inputs) {
		t.Errorf("inputs = %+v, expected %+v", gotInputs, inputs)
	}
}

func TestRunByPrefix(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "abc-123", GameID: "cowdodge", ConfigYAML: "{}"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(Run{ID: "abd-456", GameID: "cowdodge", ConfigYAML: "{}"}, nil); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.Run("abc")
	if err != nil {
		t.Fatalf("prefix lookup failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("prefix matched %q, expected %q", got.ID, id)
	}

	if _, _, err := store.Run("ab"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected an ambiguity error, got %v", err)
	}
}

func TestRunPrefixIsLiteral(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{ID: "abc-123", GameID: "cowdodge", ConfigYAML: "{}"}, nil); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"%", "_", "a%", "_bc", "abc_123"} {
		if _, _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Run(%q): expected ErrRunNotFound, got %v", id, err)
		}
	}

	if _, _, err := store.Run(""); err == nil {
		t.Error("empty id should be rejected")
	}
	if err := store.DeleteRun(""); err == nil {
		t.Error("deleting an empty id should fail")
	}

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("run count = %d, expected the run to survive", len(runs))
	}
}

func TestRunNotFound(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.Run("missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	if err := store.DeleteRun("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("delete: expected ErrRunNotFound, got %v", err)
	}
}

func TestSaveRunDuplicateIDRollsBack(t *testing.T) {
	store := openTestStore(t)

	run := Run{ID: "dup", GameID: "cowdodge", ConfigYAML: "{}"}
	if _, err := store.SaveRun(run, []Input{{Frame: 1, Action: "primary"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(run, []Input{{Frame: 2, Action: "up"}}); err == nil {
		t.Fatal("expected duplicate id to fail")
	}

	_, inputs, err := store.Run("dup")
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 1 || inputs[0].Frame != 1 {
		t.Errorf("failed save leaked inputs: %+v", inputs)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(Run{GameID: "cowdodge", Seed: int64(i), ConfigYAML: "{}"}, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, want := range []int64{4, 3, 2} {
		if runs[i].Seed != want {
			t.Errorf("runs[%d].Seed = %d, expected %d", i, runs[i].Seed, want)
		}
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("default limit returned %d runs, expected 5", len(all))
	}
}

func TestDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "cowdodge", ConfigYAML: "{}"}, []Input{{Frame: 1, Action: "primary"}})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("run still present: %v", err)
	}
}
