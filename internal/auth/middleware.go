package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/threatlens/threatlens-api/internal/httputil"
	"github.com/threatlens/threatlens-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	IdentityContextKey ContextKey = "identity"
)

// Identity is the authenticated subject attached to a request
type Identity struct {
	UserID uuid.UUID `json:"subjectId"`
	Email  string    `json:"email"`
}

// Middleware is the access gate in front of protected routes. It is a pure
// function of the presented token and never consults the user store.
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth rejects requests without a valid "Bearer <token>" header
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		token, ok := BearerToken(r.Header.Get("Authorization"))
		if !ok {
			httputil.RespondMessage(w, MsgNoToken, http.StatusUnauthorized)
			return
		}

		identity, err := m.Authenticate(token)
		if err != nil {
			// expired and forged tokens get the same answer
			logger.Warn("access denied", "reason", err.Error())
			httputil.RespondMessage(w, MsgInvalidToken, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// Authenticate verifies a raw token. Every failure is reported as
// ErrInvalidToken, wrapping the underlying cause.
func (m *Middleware) Authenticate(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}

	claims, err := m.tokenService.VerifyToken(token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return Identity{}, err
		}
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.SubjectID)
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}

// BearerToken extracts the token from an Authorization header value of the
// exact form "Bearer <token>"
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// WithIdentity stores identity in ctx
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// IdentityFromContext returns the identity attached by RequireAuth
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(Identity)
	return identity, ok
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := IdentityFromContext(ctx)
	return identity.UserID, ok
}

// GetUserEmailFromContext extracts the user email from the request context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	identity, ok := IdentityFromContext(ctx)
	return identity.Email, ok
}
