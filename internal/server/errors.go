package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/talentmap/pkg/errors"
	"github.com/matzehuels/talentmap/pkg/integrations"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusFor maps an error to the HTTP status reported to clients.
// Upstream API failures are reported as 502.
func StatusFor(err error) int {
	switch {
	case stderrors.Is(err, integrations.ErrNotFound),
		stderrors.Is(err, integrations.ErrNetwork),
		stderrors.Is(err, integrations.ErrUnauthorized),
		stderrors.Is(err, integrations.ErrInvalidResponse):
		return http.StatusBadGateway
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidCategory,
		errors.ErrCodeInvalidDimensions, errors.ErrCodeInvalidPalette:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout, errors.ErrCodeUnauthorized:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error, status int) string {
	if c := errors.GetCode(err); c != "" {
		return string(c)
	}
	switch status {
	case http.StatusBadGateway:
		return string(errors.ErrCodeNetwork)
	default:
		return string(errors.ErrCodeInternal)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	s.writeJSON(w, status, errorBody{
		Code:      codeFor(err, status),
		Message:   msg,
		RequestID: RequestID(r.Context()),
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorBody{Code: code, Message: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}
