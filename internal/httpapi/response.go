package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zjrosen/enroll/internal/enrollment"
	"github.com/zjrosen/enroll/internal/program"
)

type successResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status    string `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, errorResponse{Status: "error", Code: code, Message: message, RequestID: requestID})
}

// mapError maps enrollment errors to a status and code. Anything not raised
// by the registry or input validation came from a collaborator.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, program.ErrUnknownProgram):
		return http.StatusNotFound, "unknown_program"
	case errors.Is(err, enrollment.ErrEmptyUser), errors.Is(err, enrollment.ErrEmptyProgram):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, program.ErrNilHandler):
		return http.StatusInternalServerError, "internal_error"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusBadGateway, "collaborator_failed"
	}
}
