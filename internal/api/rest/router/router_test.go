package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	restContext "github.com/fileshelf/fileshelf-server/internal/api/rest/context"
	"github.com/fileshelf/fileshelf-server/internal/mocks"
	"github.com/fileshelf/fileshelf-server/internal/model"
	"github.com/fileshelf/fileshelf-server/internal/testutil"
)

func newTestRouter(authSvc *mocks.AuthService, filesSvc *mocks.FilesService, resolver *mocks.TokenResolver) http.Handler {
	r := New(authSvc, filesSvc, resolver, restContext.NewManager(), testutil.MakeNoopLogger())
	return r.Register()
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	authSvc := &mocks.AuthService{}
	authSvc.On("Register", mock.Anything, "a@b.c", "secret").
		Return(model.User{ID: userID, Email: "a@b.c"}, nil)
	authSvc.On("Authenticate", mock.Anything, "a@b.c", "secret").Return("tok-123", nil)

	h := newTestRouter(authSvc, &mocks.FilesService{}, &mocks.TokenResolver{})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@b.c","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/connect", nil)
	req.SetBasicAuth("a@b.c", "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"tok-123"}`, rec.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&mocks.AuthService{}, &mocks.FilesService{}, &mocks.TokenResolver{})

	protected := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/disconnect"},
		{http.MethodGet, "/users/me"},
		{http.MethodPost, "/files"},
		{http.MethodGet, "/files"},
		{http.MethodGet, "/files/" + uuid.NewString()},
		{http.MethodPut, "/files/" + uuid.NewString() + "/publish"},
		{http.MethodPut, "/files/" + uuid.NewString() + "/unpublish"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.target, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.target)
	}
}

func TestRouter_DataRouteIsAnonymous(t *testing.T) {
	t.Parallel()

	nodeID := uuid.New()

	filesSvc := &mocks.FilesService{}
	filesSvc.On("Data", mock.Anything, nodeID, uuid.Nil, 0).
		Return(model.FileNode{ID: nodeID, Name: "cat.png", Kind: model.NodeKindImage, Public: true}, []byte("png-bytes"), nil)

	h := newTestRouter(&mocks.AuthService{}, filesSvc, &mocks.TokenResolver{})

	req := httptest.NewRequest(http.MethodGet, "/files/"+nodeID.String()+"/data", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestRouter_AuthenticatedFileFlow(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	nodeID := uuid.New()

	resolver := &mocks.TokenResolver{}
	resolver.On("Resolve", mock.Anything, "tok-123").Return(userID, nil)

	filesSvc := &mocks.FilesService{}
	filesSvc.On("Get", mock.Anything, userID, nodeID).
		Return(model.FileNode{ID: nodeID, OwnerID: userID, Name: "docs", Kind: model.NodeKindFolder}, nil)

	h := newTestRouter(&mocks.AuthService{}, filesSvc, resolver)

	req := httptest.NewRequest(http.MethodGet, "/files/"+nodeID.String(), nil)
	req.Header.Set(model.TokenHeader, "tok-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+nodeID.String()+`","userId":"`+userID.String()+
		`","name":"docs","type":"folder","isPublic":false,"parentId":"0"}`, rec.Body.String())
}
