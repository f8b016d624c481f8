package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"carpool/internal/models"
	"carpool/internal/security"
	"carpool/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const GroupContextKey ContextKey = "group"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
	}
}

// RequireAuth is middleware that requires a valid session
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
			return
		}

		group, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			// Clear invalid cookie
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), GroupContextKey, group)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit limits requests per client IP, used on the login route
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetGroupFromContext retrieves the authenticated group from the request context
func GetGroupFromContext(ctx context.Context) *models.Group {
	group, ok := ctx.Value(GroupContextKey).(*models.Group)
	if !ok {
		return nil
	}
	return group
}
