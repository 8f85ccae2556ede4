package fakebackend

import (
	"context"
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-hrms-client/token"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified token claims
	ContextKeyClaims ContextKey = "claims"
)

type middleware func(http.HandlerFunc) http.HandlerFunc

func chainMiddleware(routeFunction http.HandlerFunc, mw ...middleware) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

func (b *Backend) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("fakebackend request")
		next(w, r)
	}
}

// failureMiddleware answers with an injected status when one is queued for
// the request path.
func (b *Backend) failureMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.recordHit(r.URL.Path)
		if status, ok := b.takeFailure(r.URL.Path); ok {
			writeError(w, status, "injected failure")
			return
		}
		next(w, r)
	}
}

// requireAuth validates a Bearer access token and injects its claims.
func (b *Backend) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			writeError(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		raw := parts[1]
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "Empty token")
			return
		}

		claims, err := b.signer.Verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if id, _ := claims[token.ClaimID].(string); b.revoked.IsRevoked(id) {
			writeError(w, http.StatusUnauthorized, "Token revoked")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
		next(w, r.WithContext(ctx))
	}
}

// requireManager rejects callers without the manager role. Chain after requireAuth.
func (b *Backend) requireManager(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !callerRole(r).IsManager() {
			writeError(w, http.StatusForbidden, "Manager access required")
			return
		}
		next(w, r)
	}
}

func callerClaims(r *http.Request) jwtlib.MapClaims {
	claims, _ := r.Context().Value(ContextKeyClaims).(jwtlib.MapClaims)
	return claims
}

func callerUsername(r *http.Request) string {
	claims := callerClaims(r)
	if claims == nil {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}

func callerRole(r *http.Request) users.RoleType {
	claims := callerClaims(r)
	if claims == nil {
		return ""
	}
	raw, _ := claims[token.ClaimRole].(string)
	return users.RoleType(raw)
}
