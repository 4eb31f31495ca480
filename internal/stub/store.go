// Package stub is an in-memory fake of the external watchlist backend: the
// same REST surface, none of the monitoring logic. It backs local development
// and the integration tests; the real backend owns price fetching, alert
// generation, and durable persistence.
package stub

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stockwatch/stockwatch-go/internal/model"
)

var (
	ErrDuplicateUser   = errors.New("username or email already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateSymbol = errors.New("symbol already on watchlist")
	ErrStockNotFound   = errors.New("watched stock not found")
)

// User is a stub backend account.
type User struct {
	Username string
	Email    string
	AuthHash string
}

// Store keeps all stub state behind one mutex. Everything is lost on restart,
// which is the point.
type Store struct {
	mu          sync.Mutex
	users       map[string]*User
	emails      map[string]string // email -> username
	watchlists  map[string][]model.WatchedStock
	alerts      map[string][]model.Alert
	nextStockID int64
	nextAlertID int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*User),
		emails:     make(map[string]string),
		watchlists: make(map[string][]model.WatchedStock),
		alerts:     make(map[string][]model.Alert),
	}
}

// CreateUser registers an account. Username and email must both be unused.
func (s *Store) CreateUser(username, email, authHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return ErrDuplicateUser
	}
	if _, exists := s.emails[email]; exists {
		return ErrDuplicateUser
	}

	s.users[username] = &User{Username: username, Email: email, AuthHash: authHash}
	s.emails[email] = username
	return nil
}

// GetUser looks up an account by username.
func (s *Store) GetUser(username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return *u, nil
}

// ListStocks returns the user's watchlist ordered by id.
func (s *Store) ListStocks(username string) []model.WatchedStock {
	s.mu.Lock()
	defer s.mu.Unlock()

	stocks := append([]model.WatchedStock{}, s.watchlists[username]...)
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].ID < stocks[j].ID })
	return stocks
}

// AddStock appends a new watchlist entry, assigning its id.
func (s *Store) AddStock(username string, req model.WatchedStockRequest) (model.WatchedStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.watchlists[username] {
		if strings.EqualFold(existing.Symbol, req.Symbol) {
			return model.WatchedStock{}, ErrDuplicateSymbol
		}
	}

	s.nextStockID++
	stock := model.WatchedStock{
		ID:        s.nextStockID,
		Symbol:    req.Symbol,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
	s.watchlists[username] = append(s.watchlists[username], stock)
	return stock, nil
}

// UpdateStock replaces the thresholds of an existing entry. The symbol is
// immutable; whatever the request carries for it is ignored.
func (s *Store) UpdateStock(username string, id int64, req model.WatchedStockRequest) (model.WatchedStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stocks := s.watchlists[username]
	for i := range stocks {
		if stocks[i].ID == id {
			stocks[i].MinPrice = req.MinPrice
			stocks[i].MaxPrice = req.MaxPrice
			return stocks[i], nil
		}
	}
	return model.WatchedStock{}, ErrStockNotFound
}

// RemoveStock deletes an entry by id.
func (s *Store) RemoveStock(username string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stocks := s.watchlists[username]
	for i := range stocks {
		if stocks[i].ID == id {
			s.watchlists[username] = append(stocks[:i], stocks[i+1:]...)
			return nil
		}
	}
	return ErrStockNotFound
}

// ListAlerts returns one page of the user's alerts, newest first.
func (s *Store) ListAlerts(username string, page, size int) []model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts := append([]model.Alert{}, s.alerts[username]...)
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].TriggeredAt.After(alerts[j].TriggeredAt) })

	if size <= 0 {
		size = 20
	}
	start := page * size
	if start >= len(alerts) {
		return []model.Alert{}
	}
	end := start + size
	if end > len(alerts) {
		end = len(alerts)
	}
	return alerts[start:end]
}

// UnreadAlerts returns the user's unread alerts, newest first.
func (s *Store) UnreadAlerts(username string) []model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var unread []model.Alert
	for _, a := range s.alerts[username] {
		if !a.Read {
			unread = append(unread, a)
		}
	}
	sort.Slice(unread, func(i, j int) bool { return unread[i].TriggeredAt.After(unread[j].TriggeredAt) })
	if unread == nil {
		unread = []model.Alert{}
	}
	return unread
}

// UnreadCount returns how many of the user's alerts are unread.
func (s *Store) UnreadCount(username string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, a := range s.alerts[username] {
		if !a.Read {
			count++
		}
	}
	return count
}

// MarkRead flips the given alerts to read. Unknown ids and already-read
// alerts are skipped silently, which makes the operation idempotent.
func (s *Store) MarkRead(username string, ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	alerts := s.alerts[username]
	for i := range alerts {
		if wanted[alerts[i].ID] {
			alerts[i].Read = true
		}
	}
}

// SeedAlert injects an alert for a user, standing in for the real backend's
// monitoring loop. Used by tests and the stub server's demo data.
func (s *Store) SeedAlert(username string, alert model.Alert) model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAlertID++
	alert.ID = s.nextAlertID
	if alert.TriggeredAt.IsZero() {
		alert.TriggeredAt = time.Now().UTC()
	}
	s.alerts[username] = append(s.alerts[username], alert)
	return alert
}
