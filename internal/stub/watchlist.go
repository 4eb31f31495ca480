package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatch/stockwatch-go/internal/middleware"
	"github.com/stockwatch/stockwatch-go/internal/model"
)

// WatchlistHandler handles the stub's watchlist CRUD endpoints.
type WatchlistHandler struct {
	store *Store
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(store *Store) *WatchlistHandler {
	return &WatchlistHandler{store: store}
}

// HandleList handles GET /api/watchlist requests.
func (h *WatchlistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, h.store.ListStocks(username))
}

// HandleAdd handles POST /api/watchlist requests.
func (h *WatchlistHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	req, ok := decodeStockRequest(w, r)
	if !ok {
		return
	}
	if req.Symbol == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("symbol is required"))
		return
	}

	stock, err := h.store.AddStock(username, req)
	if err != nil {
		if errors.Is(err, ErrDuplicateSymbol) {
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, stock)
}

// HandleUpdate handles PUT /api/watchlist/{id} requests.
func (h *WatchlistHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid id"))
		return
	}

	req, ok := decodeStockRequest(w, r)
	if !ok {
		return
	}

	stock, err := h.store.UpdateStock(username, id, req)
	if err != nil {
		if errors.Is(err, ErrStockNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, stock)
}

// HandleRemove handles DELETE /api/watchlist/{id} requests.
func (h *WatchlistHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid id"))
		return
	}

	if err := h.store.RemoveStock(username, id); err != nil {
		if errors.Is(err, ErrStockNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeStockRequest(w http.ResponseWriter, r *http.Request) (model.WatchedStockRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.WatchedStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return model.WatchedStockRequest{}, false
	}

	if req.MinPrice != nil && *req.MinPrice <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("minPrice must be positive"))
		return model.WatchedStockRequest{}, false
	}
	if req.MaxPrice != nil && *req.MaxPrice <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("maxPrice must be positive"))
		return model.WatchedStockRequest{}, false
	}

	return req, true
}
