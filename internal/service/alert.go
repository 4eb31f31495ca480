package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stockwatch/stockwatch-go/internal/api"
	"github.com/stockwatch/stockwatch-go/internal/model"
)

// Pagination defaults matching the backend's.
const (
	DefaultAlertPage = 0
	DefaultAlertSize = 20
)

// AlertService is a read/update facade over backend-generated alerts. Alerts
// are never created or deleted from this side.
type AlertService struct {
	client *api.Client
}

// NewAlertService creates a new AlertService.
func NewAlertService(client *api.Client) *AlertService {
	return &AlertService{client: client}
}

// List returns one page of alerts. Page and size are passed through to the
// backend verbatim; nothing is cached across pages.
func (s *AlertService) List(ctx context.Context, page, size int) ([]model.Alert, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var alerts []model.Alert
	if err := s.client.Do(ctx, http.MethodGet, "/alerts", query, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// ListUnread returns only unread alerts. The filtering happens backend-side.
func (s *AlertService) ListUnread(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	if err := s.client.Do(ctx, http.MethodGet, "/alerts/unread", nil, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// UnreadCount returns the number of unread alerts for badge display. It fails
// soft: any error, including an expired session, yields 0 rather than
// propagating, since blocking the view over a badge is worse than showing no
// badge.
func (s *AlertService) UnreadCount(ctx context.Context) int64 {
	var count int64
	if err := s.client.Do(ctx, http.MethodGet, "/alerts/unread/count", nil, nil, &count); err != nil {
		slog.Warn("unread count unavailable, showing 0", "error", err)
		return 0
	}
	return count
}

// MarkAsRead marks the given alert ids read. Idempotent: re-marking an
// already-read alert is a no-op for the caller.
func (s *AlertService) MarkAsRead(ctx context.Context, ids []int64) error {
	return s.client.Do(ctx, http.MethodPut, "/alerts/mark-read", nil, ids, nil)
}
