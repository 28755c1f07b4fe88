// Package badger implements the session store on an embedded BadgerDB
// database. Tokens are plain keys with a native TTL, so expiry needs no
// sweeper: an expired token simply stops resolving.
package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

var _ model.SessionStore = (*SessionStore)(nil)

const keyPrefix = "session:"

// SessionStore maps opaque tokens to user ids with a TTL.
type SessionStore struct {
	db *badger.DB
}

// Open opens (or creates) the session database at path. An empty path
// opens an ephemeral in-memory database, used by tests.
func Open(path string) (*SessionStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	return &SessionStore{db: db}, nil
}

func sessionKey(token string) []byte {
	return []byte(keyPrefix + token)
}

// Set stores token -> userID for ttl.
func (s *SessionStore) Set(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(token), []byte(userID.String())).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get resolves token to a user id. Expired and unknown tokens are both
// reported as model.ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return uuid.Nil, model.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to read session: %w", err)
	}

	userID, err := uuid.ParseBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse stored user id: %w", err)
	}

	return userID, nil
}

// Delete removes token. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping verifies the database answers reads.
func (s *SessionStore) Ping() error {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(sessionKey("ping"))
		return err
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("session database not alive: %w", err)
	}
	return nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}
