// Package handlers provides HTTP handlers for the API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kefoundation/backend/internal/apperrors"
	"go.uber.org/zap"
)

// BaseHandler contains common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success-message payload
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.Logger.Error("failed to encode response", zap.Error(err))
		}
	}
}

// RespondError writes a JSON error response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondAppError maps a service error to an HTTP response. Typed errors
// carry their own status and client-safe message; anything else becomes an
// opaque 500.
func (h *BaseHandler) RespondAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		h.RespondError(w, appErr.Kind.HTTPStatus(), appErr.Message)
		return
	}
	h.Logger.Error("unhandled error", zap.Error(err))
	h.RespondError(w, http.StatusInternalServerError, "Internal server error")
}

// DecodeJSON parses the request body into dst, responding with a 400 on
// malformed input. Returns false if the response was already written.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
