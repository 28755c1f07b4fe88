// Package router wires handlers and middleware into the HTTP surface.
package router

import (
	"net/http"

	"github.com/fileshelf/fileshelf-server/internal/api/rest/handler"
	"github.com/fileshelf/fileshelf-server/internal/api/rest/middleware"
	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
)

// Router builds the HTTP handler tree for the service.
type Router struct {
	authService    handler.AuthService
	filesService   handler.FilesService
	tokenResolver  middleware.TokenResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	filesService handler.FilesService,
	tokenResolver middleware.TokenResolver,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		filesService:   filesService,
		tokenResolver:  tokenResolver,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register assembles all routes and middleware and returns the root
// handler.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenResolver, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	filesHandler := handler.NewFiles(r.filesService, r.contextManager, r.logger)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", authHandler.CreateUser)
	mux.HandleFunc("GET /connect", authHandler.Connect)
	mux.Handle("GET /disconnect", authenticate.Handle(http.HandlerFunc(authHandler.Disconnect)))
	mux.Handle("GET /users/me", authenticate.Handle(http.HandlerFunc(authHandler.Me)))

	mux.Handle("POST /files", authenticate.Handle(http.HandlerFunc(filesHandler.Create)))
	mux.Handle("GET /files", authenticate.Handle(http.HandlerFunc(filesHandler.Index)))
	mux.Handle("GET /files/{id}", authenticate.Handle(http.HandlerFunc(filesHandler.GetByID)))
	mux.Handle("PUT /files/{id}/publish", authenticate.Handle(http.HandlerFunc(filesHandler.Publish)))
	mux.Handle("PUT /files/{id}/unpublish", authenticate.Handle(http.HandlerFunc(filesHandler.Unpublish)))

	// Content is readable anonymously when the node is public.
	mux.Handle("GET /files/{id}/data", authenticate.HandleOptional(http.HandlerFunc(filesHandler.Data)))

	return logging.Handle(mux)
}
