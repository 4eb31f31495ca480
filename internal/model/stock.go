package model

import "time"

// WatchedStock represents a ticker on the user's watchlist as returned by the
// backend. ID and Symbol are immutable after creation; only the thresholds may
// change through an update.
type WatchedStock struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	MinPrice  *float64  `json:"minPrice,omitempty"`
	MaxPrice  *float64  `json:"maxPrice,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Active    bool      `json:"active"`
}

// WatchedStockRequest represents the body of an add or update call. Thresholds
// are optional; the backend is the one validating them.
type WatchedStockRequest struct {
	Symbol   string   `json:"symbol"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// TrendingStock represents an entry in the static trending list shown on the
// dashboard. Not backed by any endpoint.
type TrendingStock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	MarketCap     string  `json:"marketCap"`
	Category      string  `json:"category"`
}
