// Package mocks provides testify mocks for the store interfaces in
// internal/model.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// FileNodeStore is a mock of model.FileNodeStore.
type FileNodeStore struct {
	mock.Mock
}

func (m *FileNodeStore) Create(ctx context.Context, node model.FileNode) (model.FileNode, error) {
	args := m.Called(ctx, node)
	return args.Get(0).(model.FileNode), args.Error(1)
}

func (m *FileNodeStore) GetByID(ctx context.Context, id uuid.UUID) (model.FileNode, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.FileNode), args.Error(1)
}

func (m *FileNodeStore) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (model.FileNode, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(model.FileNode), args.Error(1)
}

func (m *FileNodeStore) ListByParent(ctx context.Context, ownerID uuid.UUID, parent model.ParentRef, offset, limit int) ([]model.FileNode, error) {
	args := m.Called(ctx, ownerID, parent, offset, limit)
	if nodes := args.Get(0); nodes != nil {
		return nodes.([]model.FileNode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FileNodeStore) SetPublic(ctx context.Context, id, ownerID uuid.UUID, public bool) (model.FileNode, error) {
	args := m.Called(ctx, id, ownerID, public)
	return args.Get(0).(model.FileNode), args.Error(1)
}

// SessionStore is a mock of model.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Set(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *SessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *SessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// ContentStore is a mock of model.ContentStore.
type ContentStore struct {
	mock.Mock
}

func (m *ContentStore) Save(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *ContentStore) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentStore) SaveVariant(ctx context.Context, key string, size int, data []byte) error {
	args := m.Called(ctx, key, size, data)
	return args.Error(0)
}

func (m *ContentStore) LoadVariant(ctx context.Context, key string, size int) ([]byte, error) {
	args := m.Called(ctx, key, size)
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// JobQueue is a mock of model.JobQueue.
type JobQueue struct {
	mock.Mock
}

func (m *JobQueue) Enqueue(ctx context.Context, job model.ThumbnailJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobQueue) Dequeue(ctx context.Context) (model.ThumbnailJob, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ThumbnailJob), args.Error(1)
}

func (m *JobQueue) Ack(job model.ThumbnailJob) {
	m.Called(job)
}

func (m *JobQueue) Requeue(job model.ThumbnailJob) error {
	args := m.Called(job)
	return args.Error(0)
}

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) ([]byte, error) {
	args := m.Called(password)
	if hash := args.Get(0); hash != nil {
		return hash.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PasswordHasher) Compare(hash []byte, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// TokenGenerator is a mock of model.TokenGenerator.
type TokenGenerator struct {
	mock.Mock
}

func (m *TokenGenerator) NewToken() string {
	args := m.Called()
	return args.String(0)
}
