package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
)

// TokenResolver resolves a session token to a user id.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates session tokens and injects the user id into the
// request context.
type Authenticate struct {
	resolver       TokenResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver TokenResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		resolver:       resolver,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle rejects requests without a valid token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticate(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandleOptional lets unauthenticated requests through without a user id
// in context. An invalid token is treated the same as no token.
func (m *Authenticate) HandleOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticate(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticate(r *http.Request) (uuid.UUID, error) {
	token := r.Header.Get(model.TokenHeader)
	if token == "" {
		return uuid.Nil, model.ErrUnauthorized
	}

	userID, err := m.resolver.Resolve(r.Context(), token)
	if err != nil {
		return uuid.Nil, model.ErrUnauthorized
	}
	if userID == uuid.Nil {
		return uuid.Nil, model.ErrUnauthorized
	}

	return userID, nil
}
