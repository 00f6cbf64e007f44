package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"

	// SessionCookieName carries the session token for browser pages.
	SessionCookieName = "session"
)

// Principal is the caller as established from a verified session token.
type Principal struct {
	UserID string
	Role   domain.Role
}

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid session token, taken from the Authorization
// bearer header or the session cookie.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := tokenFromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token", err.Error())
				return
			}

			ctx := WithPrincipal(r.Context(), &Principal{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionMiddleware is AuthMiddleware for browser pages: requests without a
// valid session are redirected to loginPath. A principal already in the
// context is kept.
func SessionMiddleware(verifier TokenVerifier, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			token, err := tokenFromRequest(r)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx := WithPrincipal(r.Context(), &Principal{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticPrincipal attaches a fixed principal to every request. It stands in
// for AuthMiddleware when authentication is disabled.
func StaticPrincipal(p Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := p
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), &principal)))
		})
	}
}

// RequireRole creates a middleware that checks for a specific role
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "")
				return
			}

			if user.Role != role {
				writeError(w, http.StatusForbidden, "insufficient permissions", domain.ErrForbidden.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrAdmin allows admins, and customers whose ID matches the named
// URL parameter.
func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "")
				return
			}

			if !user.Role.CanView(user.UserID, chi.URLParam(r, param)) {
				writeError(w, http.StatusForbidden, "insufficient permissions", domain.ErrForbidden.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, UserContextKey, p)
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*Principal, bool) {
	user, ok := ctx.Value(UserContextKey).(*Principal)
	return user, ok && user != nil
}

func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", errInvalidAuthHeader
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", errMissingToken
}

var (
	errInvalidAuthHeader = errors.New("invalid authorization header format")
	errMissingToken      = errors.New("missing authorization header or session cookie")
)

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message, Message: details})
}
