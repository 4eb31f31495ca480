package stub

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/stockwatch/stockwatch-go/internal/crypto"
	"github.com/stockwatch/stockwatch-go/internal/model"
)

// AuthHandler handles the stub's login and registration endpoints.
type AuthHandler struct {
	store     *Store
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store *Store, secret string, expiry time.Duration) *AuthHandler {
	return &AuthHandler{store: store, jwtSecret: secret, jwtExpiry: expiry}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("username, email and password are required"))
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	if err := h.store.CreateUser(req.Username, req.Email, hash); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	h.respondWithToken(w, http.StatusCreated, req.Username, req.Email)
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, err := h.store.GetUser(req.Username)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse("invalid username or password"))
		return
	}

	match, err := crypto.VerifyPassword(req.Password, user.AuthHash)
	if err != nil || !match {
		writeJSON(w, http.StatusUnauthorized, errorResponse("invalid username or password"))
		return
	}

	h.respondWithToken(w, http.StatusOK, user.Username, user.Email)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, username, email string) {
	token, err := crypto.GenerateToken(username, email, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, status, model.AuthResponse{
		Token:    token,
		Type:     "Bearer",
		Username: username,
		Email:    email,
	})
}
