package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"carpool/internal/security"
	"carpool/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type loginResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies the group credential and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	token, expiresAt, err := h.authService.Login(req.Name, req.Passcode)
	if err != nil {
		respondServiceError(w, "Error during login", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, token, expiresAt))
	respondWithJSON(w, http.StatusOK, loginResponse{ExpiresAt: expiresAt})
}

// Logout clears the session cookie. Tokens are stateless, dropping the
// cookie is all there is to do.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	w.WriteHeader(http.StatusNoContent)
}
