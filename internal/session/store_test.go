package session

import (
	"path/filepath"
	"testing"

	"github.com/stockwatch/stockwatch-go/internal/model"
)

func testSession() Session {
	return Session{
		Token: "token-abc",
		User:  model.User{Username: "alice", Email: "alice@example.com"},
	}
}

func TestMemoryStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Save(testSession()); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, ok := store.Load()
	if !ok {
		t.Fatal("Load() returned absent after Save()")
	}
	if got != testSession() {
		t.Errorf("Load() = %+v, want %+v", got, testSession())
	}
}

func TestMemoryStore_ClearMakesAbsent(t *testing.T) {
	store := NewMemoryStore()
	store.Save(testSession())

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}

	if _, ok := store.Load(); ok {
		t.Error("Load() returned a session after Clear()")
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after Clear()")
	}

	// Clear is idempotent.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() unexpected error: %v", err)
	}
}

func TestMemoryStore_EmptyLoad(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Load(); ok {
		t.Error("Load() returned a session from an empty store")
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated() = true on an empty store")
	}
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	store := NewMemoryStore()
	store.Save(testSession())

	replacement := Session{Token: "token-xyz", User: model.User{Username: "bob", Email: "bob@example.com"}}
	store.Save(replacement)

	got, ok := store.Load()
	if !ok {
		t.Fatal("Load() returned absent after second Save()")
	}
	if got != replacement {
		t.Errorf("Load() = %+v, want %+v", got, replacement)
	}
}

func TestMemoryStore_OnClearFires(t *testing.T) {
	store := NewMemoryStore()
	store.Save(testSession())

	fired := 0
	store.OnClear(func() { fired++ })

	store.Clear()
	store.Clear()

	if fired != 2 {
		t.Errorf("OnClear callback fired %d times, want 2", fired)
	}
}

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore() unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.Save(testSession()); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, ok := store.Load()
	if !ok {
		t.Fatal("Load() returned absent after Save()")
	}
	if got != testSession() {
		t.Errorf("Load() = %+v, want %+v", got, testSession())
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore() unexpected error: %v", err)
	}
	if err := store.Save(testSession()); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	store.Close()

	reopened, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore() reopen unexpected error: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Load()
	if !ok {
		t.Fatal("Load() returned absent after reopen")
	}
	if got != testSession() {
		t.Errorf("Load() after reopen = %+v, want %+v", got, testSession())
	}
}

func TestSQLiteStore_ClearMakesAbsent(t *testing.T) {
	store := newTestSQLiteStore(t)
	store.Save(testSession())

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}

	if _, ok := store.Load(); ok {
		t.Error("Load() returned a session after Clear()")
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after Clear()")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() unexpected error: %v", err)
	}
}

func TestSQLiteStore_PartialEntryReadsAsAbsent(t *testing.T) {
	store := newTestSQLiteStore(t)

	// A token without its user entry must read as no session.
	if _, err := store.db.Exec(`INSERT INTO session (key, value) VALUES (?, ?)`, keyToken, "orphan-token"); err != nil {
		t.Fatalf("seeding orphan token: %v", err)
	}

	if _, ok := store.Load(); ok {
		t.Error("Load() returned a session for a token without a user")
	}
}

func TestSQLiteStore_CorruptUserReadsAsAbsent(t *testing.T) {
	store := newTestSQLiteStore(t)
	store.Save(testSession())

	if _, err := store.db.Exec(`UPDATE session SET value = ? WHERE key = ?`, "{not json", keyUser); err != nil {
		t.Fatalf("corrupting user entry: %v", err)
	}

	if _, ok := store.Load(); ok {
		t.Error("Load() returned a session despite an unparseable user entry")
	}
}

func TestSQLiteStore_OnClearFires(t *testing.T) {
	store := newTestSQLiteStore(t)
	store.Save(testSession())

	fired := false
	store.OnClear(func() { fired = true })

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}
	if !fired {
		t.Error("OnClear callback did not fire")
	}
}
