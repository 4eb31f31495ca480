package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/stockwatch/stockwatch-go/internal/model"
)

// Storage keys, mirroring the two entries the web client keeps in
// browser-local storage.
const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteStore persists the session in an embedded SQLite file so it survives
// process restarts. Both entries are written and deleted inside a single
// transaction, which keeps Save and Clear atomic: Load can never observe a
// token without its user.
type SQLiteStore struct {
	mu      sync.Mutex
	db      *sql.DB
	onClear []func()
}

// OpenSQLiteStore opens (creating if needed) the session database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single caller, single connection. Avoids SQLITE_BUSY between the
	// client's reads and the interceptor's clear.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		slog.Warn("failed to set WAL mode", "error", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS session (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Save persists the token and user together, replacing any previous session.
func (s *SQLiteStore) Save(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := `INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := tx.Exec(upsert, keyToken, sess.Token); err != nil {
		return err
	}
	if _, err := tx.Exec(upsert, keyUser, string(userJSON)); err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the stored session. A missing token, missing user, or a user
// entry that fails to parse all read as absent; corruption never surfaces as
// an error, it just forces a re-login.
func (s *SQLiteStore) Load() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.get(keyToken)
	if !ok || token == "" {
		return Session{}, false
	}

	userJSON, ok := s.get(keyUser)
	if !ok {
		return Session{}, false
	}

	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		slog.Warn("stored user is unparseable, treating session as absent", "error", err)
		return Session{}, false
	}

	return Session{Token: token, User: user}, true
}

// Clear removes both entries. Idempotent; fires OnClear callbacks.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	tx, err := s.db.Begin()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	_, err = tx.Exec(`DELETE FROM session WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		tx.Rollback()
		s.mu.Unlock()
		return err
	}
	if err := tx.Commit(); err != nil {
		s.mu.Unlock()
		return err
	}

	callbacks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// IsAuthenticated reports whether a token is stored.
func (s *SQLiteStore) IsAuthenticated() bool {
	_, ok := s.Load()
	return ok
}

// OnClear registers a clear callback.
func (s *SQLiteStore) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("session read failed, treating session as absent", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}
