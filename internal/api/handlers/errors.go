package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteJSON writes v as a JSON body with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers already sent
		slog.Error("failed to encode response", "error", err)
	}
}

// HandleServiceError maps forum errors to HTTP responses.
// Store and cascade causes are logged here and never sent to the client.
func HandleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	var valErr *forum.ValidationError
	switch {
	case errors.As(err, &valErr):
		WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Field+": "+valErr.Message)

	case errors.Is(err, posts.ErrInvalidID):
		WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case forum.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "NotFound", err.Error())

	case forum.IsMediaUploadError(err):
		logger.Warn("image upload failed", "error", err)
		WriteError(w, http.StatusBadGateway, "MediaUploadFailed",
			"The image could not be uploaded; the post was not saved")

	case forum.IsCascadeDeleteError(err):
		logger.Error("cascade delete failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "CascadeDeleteFailed",
			"Comments could not be deleted; the post was kept")

	case forum.IsStoreReadError(err), forum.IsStoreWriteError(err):
		logger.Error("store failure", "error", err)
		WriteError(w, http.StatusInternalServerError, "StoreUnavailable",
			"The data store is unavailable, please try again")

	default:
		logger.Error("unexpected error in handler", "error", err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
