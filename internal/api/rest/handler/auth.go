package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
)

// AuthService defines registration, credential and session operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (model.User, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	Revoke(ctx context.Context, token string) error
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
}

// Auth handles HTTP endpoints for registration and sessions.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// CreateUser registers a new user.
func (h *Auth) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Missing email")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing password")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: user registered",
		"user_id", user.ID)

	respondJSON(w, http.StatusCreated, userResponse{ID: user.ID.String(), Email: user.Email})
}

// Connect exchanges Basic credentials for a session token.
func (h *Auth) Connect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.authService.Authenticate(r.Context(), email, password)
	if err != nil {
		h.logger.Warn("Auth handler: authentication failed",
			"email", email)
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Disconnect revokes the session token carried by the request.
func (h *Auth) Disconnect(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(model.TokenHeader)

	if err := h.authService.Revoke(r.Context(), token); err != nil {
		h.logger.Error("Auth handler: failed to revoke token",
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Auth handler: failed to get user",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{ID: user.ID.String(), Email: user.Email})
}
