package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// handleError translates a service error into an HTTP status and a
// user-facing message. Unknown errors collapse to a generic 500 so
// storage details never reach the client.
func handleError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		respondError(w, http.StatusBadRequest, "Missing "+vErr.Field)
		return
	}

	switch {
	case errors.Is(err, model.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "Already exist")
	case errors.Is(err, model.ErrParentNotFound):
		respondError(w, http.StatusBadRequest, "Parent not found")
	case errors.Is(err, model.ErrParentNotFolder):
		respondError(w, http.StatusBadRequest, "Parent is not a folder")
	case errors.Is(err, model.ErrFolderNoContent):
		respondError(w, http.StatusBadRequest, "A folder doesn't have content")
	case errors.Is(err, model.ErrInvalidSize):
		respondError(w, http.StatusBadRequest, "Invalid size")
	case errors.Is(err, model.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, model.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
