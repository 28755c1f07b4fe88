package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

// AuthService is a mock of handler.AuthService.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, email, password string) (model.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *AuthService) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *AuthService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

// FilesService is a mock of handler.FilesService.
type FilesService struct {
	mock.Mock
}

func (m *FilesService) Create(ctx context.Context, params model.CreateNodeParams) (model.FileNode, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.FileNode), args.Error(1)
}

func (m *FilesService) Get(ctx context.Context, ownerID, id uuid.UUID) (model.FileNode, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.FileNode), args.Error(1)
}

func (m *FilesService) List(ctx context.Context, ownerID uuid.UUID, parent model.ParentRef, page int) ([]model.FileNode, error) {
	args := m.Called(ctx, ownerID, parent, page)
	var nodes []model.FileNode
	if args.Get(0) != nil {
		nodes = args.Get(0).([]model.FileNode)
	}
	return nodes, args.Error(1)
}

func (m *FilesService) SetVisibility(ctx context.Context, ownerID, id uuid.UUID, public bool) (model.FileNode, error) {
	args := m.Called(ctx, ownerID, id, public)
	return args.Get(0).(model.FileNode), args.Error(1)
}

func (m *FilesService) Data(ctx context.Context, id, requester uuid.UUID, size int) (model.FileNode, []byte, error) {
	args := m.Called(ctx, id, requester, size)
	var data []byte
	if args.Get(1) != nil {
		data = args.Get(1).([]byte)
	}
	return args.Get(0).(model.FileNode), data, args.Error(2)
}

// TokenResolver is a mock of middleware.TokenResolver.
type TokenResolver struct {
	mock.Mock
}

func (m *TokenResolver) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
