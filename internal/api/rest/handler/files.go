package handler

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
)

// FilesService defines node creation, lookup, listing, visibility and
// content operations.
type FilesService interface {
	Create(ctx context.Context, params model.CreateNodeParams) (model.FileNode, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (model.FileNode, error)
	List(ctx context.Context, ownerID uuid.UUID, parent model.ParentRef, page int) ([]model.FileNode, error)
	SetVisibility(ctx context.Context, ownerID, id uuid.UUID, public bool) (model.FileNode, error)
	Data(ctx context.Context, id, requester uuid.UUID, size int) (model.FileNode, []byte, error)
}

// Files handles HTTP endpoints for file nodes.
type Files struct {
	filesService   FilesService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewFiles creates a new Files handler.
func NewFiles(filesService FilesService, contextManager model.ContextManager, logger *logger.Logger) *Files {
	return &Files{
		filesService:   filesService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createNodeRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID json.RawMessage `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     []byte          `json:"data"`
}

type nodeResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

func makeNodeResponse(node model.FileNode) nodeResponse {
	return nodeResponse{
		ID:       node.ID.String(),
		UserID:   node.OwnerID.String(),
		Name:     node.Name,
		Type:     string(node.Kind),
		IsPublic: node.Public,
		ParentID: node.Parent.String(),
	}
}

// parseParentJSON accepts the root sentinel as either the number 0 or
// the string "0", and a node reference as a quoted id.
func parseParentJSON(raw json.RawMessage) (model.ParentRef, error) {
	if len(raw) == 0 {
		return model.RootParent(), nil
	}

	value := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if value == "null" {
		return model.RootParent(), nil
	}

	return model.ParseParentRef(value)
}

// Create persists a new node owned by the authenticated user.
func (h *Files) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	parent, err := parseParentJSON(req.ParentID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Parent not found")
		return
	}

	node, err := h.filesService.Create(r.Context(), model.CreateNodeParams{
		OwnerID: userID,
		Name:    req.Name,
		Kind:    model.NodeKind(req.Type),
		Parent:  parent,
		Public:  req.IsPublic,
		Data:    req.Data,
	})
	if err != nil {
		h.logger.Error("Files handler: failed to create node",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, makeNodeResponse(node))
}

// GetByID returns a node owned by the authenticated user.
func (h *Files) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	node, err := h.filesService.Get(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, makeNodeResponse(node))
}

// Index lists the authenticated user's nodes under a parent, one fixed
// window per page.
func (h *Files) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	parent, err := model.ParseParentRef(r.URL.Query().Get("parentId"))
	if err != nil {
		// A parent that cannot exist has no children.
		respondJSON(w, http.StatusOK, []nodeResponse{})
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 0
	}

	nodes, err := h.filesService.List(r.Context(), userID, parent, page)
	if err != nil {
		h.logger.Error("Files handler: failed to list nodes",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response := make([]nodeResponse, 0, len(nodes))
	for _, node := range nodes {
		response = append(response, makeNodeResponse(node))
	}

	respondJSON(w, http.StatusOK, response)
}

// Publish makes a node readable by anyone.
func (h *Files) Publish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, true)
}

// Unpublish restricts a node back to its owner.
func (h *Files) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, false)
}

func (h *Files) setVisibility(w http.ResponseWriter, r *http.Request, public bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	node, err := h.filesService.SetVisibility(r.Context(), userID, id, public)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, makeNodeResponse(node))
}

// Data streams a node's content, or a derivative of it when size is
// given. Public nodes need no token.
func (h *Files) Data(w http.ResponseWriter, r *http.Request) {
	// Anonymous requests read public nodes only.
	requester, _ := h.contextManager.GetUserIDFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	// size absent means the original; any present value must be one of
	// the generated derivative widths.
	size := 0
	if sizeParam := r.URL.Query().Get("size"); sizeParam != "" {
		size, err = strconv.Atoi(sizeParam)
		if err != nil || !model.ValidThumbnailSize(size) {
			respondError(w, http.StatusBadRequest, "Invalid size")
			return
		}
	}

	node, data, err := h.filesService.Data(r.Context(), id, requester, size)
	if err != nil {
		handleError(w, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(node.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
