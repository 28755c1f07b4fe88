package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
)

// Auth registers users and manages opaque session tokens.
type Auth struct {
	userStore model.UserStore
	sessions  model.SessionStore
	hasher    model.PasswordHasher
	tokens    model.TokenGenerator
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	sessions model.SessionStore,
	hasher model.PasswordHasher,
	tokens model.TokenGenerator,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		sessions:  sessions,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a user with a digested password. Email uniqueness is
// enforced here and again by the store's unique constraint.
func (a *Auth) Register(ctx context.Context, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: registering user", "email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already registered", "email", email)
		return model.User{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		if errors.Is(err, model.ErrEmailTaken) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "user_id", user.ID)

	return user, nil
}

// Authenticate checks credentials and issues a fresh session token with
// the standard TTL. Missing users and bad passwords are reported the
// same way.
func (a *Auth) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", model.ErrUnauthorized
	}

	token := a.tokens.NewToken()
	if err := a.sessions.Set(ctx, token, user.ID, model.SessionTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	a.logger.Info("Auth service: session issued", "user_id", user.ID)

	return token, nil
}

// Resolve maps a token to the user id it was issued for. The TTL is not
// extended by resolution.
func (a *Auth) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := a.sessions.Get(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, model.ErrUnauthorized
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return userID, nil
}

// Revoke destroys the session behind token.
func (a *Auth) Revoke(ctx context.Context, token string) error {
	if err := a.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetUser fetches the user with the given id.
func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
