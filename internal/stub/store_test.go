package stub

import (
	"errors"
	"testing"
	"time"

	"github.com/stockwatch/stockwatch-go/internal/model"
)

func seedStore(t *testing.T, alerts int) *Store {
	t.Helper()
	store := NewStore()
	if err := store.CreateUser("alice", "alice@example.com", "hash"); err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < alerts; i++ {
		store.SeedAlert("alice", model.Alert{
			Symbol:         "AAPL",
			CurrentPrice:   201,
			ThresholdPrice: 200,
			AlertType:      model.AlertMaxPriceExceeded,
			TriggeredAt:    base.Add(time.Duration(i) * time.Minute),
		})
	}
	return store
}

func TestStore_DuplicateSymbolIsCaseInsensitive(t *testing.T) {
	store := seedStore(t, 0)

	if _, err := store.AddStock("alice", model.WatchedStockRequest{Symbol: "AAPL"}); err != nil {
		t.Fatalf("AddStock() unexpected error: %v", err)
	}

	_, err := store.AddStock("alice", model.WatchedStockRequest{Symbol: "aapl"})
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("AddStock() error = %v, want ErrDuplicateSymbol", err)
	}
}

func TestStore_DuplicateEmail(t *testing.T) {
	store := seedStore(t, 0)

	err := store.CreateUser("bob", "alice@example.com", "hash")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("CreateUser() error = %v, want ErrDuplicateUser", err)
	}
}

func TestStore_ListAlertsPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		size  int
		want  int
	}{
		{name: "first page", page: 0, size: 2, want: 2},
		{name: "last partial page", page: 1, size: 2, want: 1},
		{name: "past the end", page: 5, size: 2, want: 0},
		{name: "zero size falls back", page: 0, size: 0, want: 3},
	}

	store := seedStore(t, 3)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.ListAlerts("alice", tt.page, tt.size)
			if len(got) != tt.want {
				t.Errorf("ListAlerts(page=%d, size=%d) returned %d alerts, want %d",
					tt.page, tt.size, len(got), tt.want)
			}
		})
	}
}

func TestStore_ListAlertsNewestFirst(t *testing.T) {
	store := seedStore(t, 3)

	alerts := store.ListAlerts("alice", 0, 20)
	for i := 1; i < len(alerts); i++ {
		if alerts[i].TriggeredAt.After(alerts[i-1].TriggeredAt) {
			t.Fatal("ListAlerts() not ordered newest first")
		}
	}
}

func TestStore_UpdateStockKeepsSymbol(t *testing.T) {
	store := seedStore(t, 0)

	min := 100.0
	stock, err := store.AddStock("alice", model.WatchedStockRequest{Symbol: "AAPL", MinPrice: &min})
	if err != nil {
		t.Fatalf("AddStock() unexpected error: %v", err)
	}

	newMin := 120.0
	updated, err := store.UpdateStock("alice", stock.ID, model.WatchedStockRequest{Symbol: "HACK", MinPrice: &newMin})
	if err != nil {
		t.Fatalf("UpdateStock() unexpected error: %v", err)
	}
	if updated.Symbol != "AAPL" {
		t.Errorf("UpdateStock() symbol = %q, want %q", updated.Symbol, "AAPL")
	}
	if updated.MinPrice == nil || *updated.MinPrice != 120 {
		t.Errorf("UpdateStock() minPrice = %v, want 120", updated.MinPrice)
	}
}
