package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stockwatch/stockwatch-go/internal/api"
	"github.com/stockwatch/stockwatch-go/internal/model"
)

// WatchlistService is a CRUD facade over the user's watched stocks. All
// operations require an authenticated session; that is enforced server-side,
// the client just surfaces the resulting failure.
type WatchlistService struct {
	client *api.Client
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(client *api.Client) *WatchlistService {
	return &WatchlistService{client: client}
}

// List returns the full watchlist. No pagination; the backend returns the
// whole set.
func (s *WatchlistService) List(ctx context.Context) ([]model.WatchedStock, error) {
	var stocks []model.WatchedStock
	if err := s.client.Do(ctx, http.MethodGet, "/watchlist", nil, nil, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// Add puts a symbol on the watchlist. The symbol is sent as-is; case
// normalization is the caller's concern. A duplicate symbol resolves as
// api.ErrConflict.
func (s *WatchlistService) Add(ctx context.Context, req model.WatchedStockRequest) (model.WatchedStock, error) {
	var stock model.WatchedStock
	if err := s.client.Do(ctx, http.MethodPost, "/watchlist", nil, req, &stock); err != nil {
		return model.WatchedStock{}, err
	}
	return stock, nil
}

// Update changes the thresholds of an existing entry. The symbol is not
// mutable through this operation. A missing id resolves as api.ErrNotFound.
func (s *WatchlistService) Update(ctx context.Context, id int64, req model.WatchedStockRequest) (model.WatchedStock, error) {
	var stock model.WatchedStock
	path := fmt.Sprintf("/watchlist/%d", id)
	if err := s.client.Do(ctx, http.MethodPut, path, nil, req, &stock); err != nil {
		return model.WatchedStock{}, err
	}
	return stock, nil
}

// Remove deletes an entry. A missing id resolves as api.ErrNotFound.
func (s *WatchlistService) Remove(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/watchlist/%d", id)
	return s.client.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}
