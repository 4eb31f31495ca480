package service

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stockwatch/stockwatch-go/internal/api"
	"github.com/stockwatch/stockwatch-go/internal/session"
	"github.com/stockwatch/stockwatch-go/internal/stub"
)

// testEnv wires the services against an in-process stub backend, the same way
// the CLI wires them against the real one.
type testEnv struct {
	store     *session.MemoryStore
	backend   *stub.Store
	auth      *AuthService
	watchlist *WatchlistService
	alerts    *AlertService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := stub.NewStore()
	server := httptest.NewServer(stub.NewRouter(backend, "test-secret", time.Hour))
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	client := api.New(server.URL+"/api", store)

	return &testEnv{
		store:     store,
		backend:   backend,
		auth:      NewAuthService(client, store),
		watchlist: NewWatchlistService(client),
		alerts:    NewAlertService(client),
	}
}

// login registers a fresh account and leaves its session in the store.
func (e *testEnv) login(t *testing.T, username string) {
	t.Helper()
	_, err := e.auth.Register(context.Background(), username, username+"@example.com", "secret")
	if err != nil {
		t.Fatalf("Register(%q) unexpected error: %v", username, err)
	}
}
