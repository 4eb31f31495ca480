package model

import "time"

// AlertType tells which threshold was crossed.
type AlertType string

const (
	AlertMinPriceExceeded AlertType = "MIN_PRICE_EXCEEDED"
	AlertMaxPriceExceeded AlertType = "MAX_PRICE_EXCEEDED"
)

// Alert represents a backend-generated notification that a watched price
// threshold was crossed. Alerts are never created or deleted by this client;
// the only mutation is flipping Read from false to true.
type Alert struct {
	ID             int64     `json:"id"`
	Symbol         string    `json:"symbol"`
	CurrentPrice   float64   `json:"currentPrice"`
	ThresholdPrice float64   `json:"thresholdPrice"`
	AlertType      AlertType `json:"alertType"`
	TriggeredAt    time.Time `json:"triggeredAt"`
	Read           bool      `json:"read"`
}
