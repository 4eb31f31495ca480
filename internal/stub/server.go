package stub

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatch/stockwatch-go/internal/middleware"
)

// NewRouter builds the stub's HTTP routing table: the exact endpoint surface
// of the real backend under /api, with bearer auth on everything except the
// auth routes, and a per-IP rate limit on those.
func NewRouter(store *Store, jwtSecret string, jwtExpiry time.Duration) http.Handler {
	authHandler := NewAuthHandler(store, jwtSecret, jwtExpiry)
	watchlistHandler := NewWatchlistHandler(store)
	alertHandler := NewAlertHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Get("/api/watchlist", watchlistHandler.HandleList)
		r.Post("/api/watchlist", watchlistHandler.HandleAdd)
		r.Put("/api/watchlist/{id}", watchlistHandler.HandleUpdate)
		r.Delete("/api/watchlist/{id}", watchlistHandler.HandleRemove)

		r.Get("/api/alerts", alertHandler.HandleList)
		r.Get("/api/alerts/unread", alertHandler.HandleUnread)
		r.Get("/api/alerts/unread/count", alertHandler.HandleUnreadCount)
		r.Put("/api/alerts/mark-read", alertHandler.HandleMarkRead)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
