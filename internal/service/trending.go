package service

import (
	"strings"

	"github.com/stockwatch/stockwatch-go/internal/model"
)

// TrendingService serves the dashboard's "trending stocks" panel. The list is
// a static in-memory snapshot, not a live feed; no backend endpoint exists
// for it.
type TrendingService struct{}

// NewTrendingService creates a new TrendingService.
func NewTrendingService() *TrendingService {
	return &TrendingService{}
}

// List returns the trending stocks, optionally filtered by category.
// An empty category or "all" returns everything.
func (s *TrendingService) List(category string) []model.TrendingStock {
	if category == "" || strings.EqualFold(category, "all") {
		return append([]model.TrendingStock{}, trendingStocks...)
	}

	var filtered []model.TrendingStock
	for _, stock := range trendingStocks {
		if strings.EqualFold(stock.Category, category) {
			filtered = append(filtered, stock)
		}
	}
	return filtered
}

var trendingStocks = []model.TrendingStock{
	{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Price:         193.75,
		Change:        2.34,
		ChangePercent: 1.22,
		Volume:        45230000,
		MarketCap:     "3.01T",
		Category:      "technology",
	},
	{
		Symbol:        "MSFT",
		Name:          "Microsoft Corporation",
		Price:         378.85,
		Change:        -1.12,
		ChangePercent: -0.29,
		Volume:        23450000,
		MarketCap:     "2.81T",
		Category:      "technology",
	},
	{
		Symbol:        "GOOGL",
		Name:          "Alphabet Inc.",
		Price:         142.65,
		Change:        1.87,
		ChangePercent: 1.33,
		Volume:        28910000,
		MarketCap:     "1.79T",
		Category:      "technology",
	},
	{
		Symbol:        "TSLA",
		Name:          "Tesla Inc.",
		Price:         248.42,
		Change:        -5.23,
		ChangePercent: -2.06,
		Volume:        118760000,
		MarketCap:     "789.4B",
		Category:      "automotive",
	},
	{
		Symbol:        "NVDA",
		Name:          "NVIDIA Corporation",
		Price:         875.28,
		Change:        15.67,
		ChangePercent: 1.82,
		Volume:        52340000,
		MarketCap:     "2.16T",
		Category:      "technology",
	},
	{
		Symbol:        "JPM",
		Name:          "JPMorgan Chase & Co.",
		Price:         198.47,
		Change:        0.93,
		ChangePercent: 0.47,
		Volume:        8760000,
		MarketCap:     "571.2B",
		Category:      "finance",
	},
	{
		Symbol:        "JNJ",
		Name:          "Johnson & Johnson",
		Price:         162.33,
		Change:        -0.45,
		ChangePercent: -0.28,
		Volume:        6540000,
		MarketCap:     "390.8B",
		Category:      "healthcare",
	},
	{
		Symbol:        "AMZN",
		Name:          "Amazon.com Inc.",
		Price:         186.51,
		Change:        3.12,
		ChangePercent: 1.70,
		Volume:        39870000,
		MarketCap:     "1.94T",
		Category:      "technology",
	},
}
