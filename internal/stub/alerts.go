package stub

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stockwatch/stockwatch-go/internal/middleware"
)

// AlertHandler handles the stub's alert endpoints. Alerts only enter the
// store through seeding; the stub runs no monitoring loop.
type AlertHandler struct {
	store *Store
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(store *Store) *AlertHandler {
	return &AlertHandler{store: store}
}

// HandleList handles GET /api/alerts?page&size requests.
func (h *AlertHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)

	writeJSON(w, http.StatusOK, h.store.ListAlerts(username, page, size))
}

// HandleUnread handles GET /api/alerts/unread requests.
func (h *AlertHandler) HandleUnread(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, h.store.UnreadAlerts(username))
}

// HandleUnreadCount handles GET /api/alerts/unread/count requests. The body
// is a bare JSON number, matching the backend contract.
func (h *AlertHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, h.store.UnreadCount(username))
}

// HandleMarkRead handles PUT /api/alerts/mark-read requests. The body is a
// bare JSON array of alert ids.
func (h *AlertHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	h.store.MarkRead(username, ids)
	w.WriteHeader(http.StatusOK)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
