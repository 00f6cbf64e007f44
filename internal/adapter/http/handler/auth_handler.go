package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/adapter/http/middleware"
	"github.com/iho/dairyledger/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC        AuthService
	tokenDuration time.Duration
	secureCookie  bool
}

// NewAuthHandler creates a new auth handler. tokenDuration sets the session
// cookie lifetime and the reported expires_in.
func NewAuthHandler(authUC AuthService, tokenDuration time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authUC:        authUC,
		tokenDuration: tokenDuration,
		secureCookie:  secureCookie,
	}
}

// Login checks the credentials, returns a session token and sets it as the
// session cookie for the HTML pages.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authUC.Login(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "invalid credentials", err)
		return
	}

	h.setSessionCookie(w, result.Token)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresIn: int64(h.tokenDuration.Seconds()),
		User:      dto.CustomerFromDomain(result.User),
	})
}

// Logout clears the session cookie. Bearer tokens stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// GetCurrentUser returns the current authenticated user
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, dto.MeResponse{UserID: user.UserID, Role: user.Role})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
