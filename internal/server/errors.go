package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/tobim/smartgraph/pkg/errors"
	"github.com/tobim/smartgraph/pkg/store"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps application error codes to HTTP statuses.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidName, apperrors.ErrCodeIndexOutOfRange:
		return http.StatusBadRequest
	case apperrors.ErrCodeInvalidOperation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeDegraded:
		return http.StatusBadGateway
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error and writes the JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)

	code := string(apperrors.GetCode(err))
	if code == "" && errors.Is(err, store.ErrNotFound) {
		code = string(apperrors.ErrCodeNotFound)
	}
	respondJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: code})
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
