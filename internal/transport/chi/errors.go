package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/questionbank/internal/domain"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// sentinelStatus maps domain sentinels to HTTP statuses and codes, in match order.
var sentinelStatus = []struct {
	err    error
	status int
	code   ErrorCode
}{
	{domain.ErrValidation, http.StatusBadRequest, ErrorCodeValidationFailed},
	{domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound},
	{domain.ErrUnauthorized, http.StatusUnauthorized, ErrorCodeUnauthorized},
	{domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited},
}

func defaultErrorHandlers() []errorHandler {
	handlers := make([]errorHandler, 0, len(sentinelStatus))
	for _, s := range sentinelStatus {
		handlers = append(handlers, sentinelHandler(s.err, s.status, s.code))
	}
	return handlers
}

// classify returns the status and code for err, falling back to 500.
func classify(err error) (int, ErrorCode) {
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, ErrorCodeInternalError
}

// safeDomainMessage returns a client-safe message. Validation errors carry their
// own user-facing text; other sentinels expose only the sentinel text.
func safeDomainMessage(err error) string {
	if msg, ok := domain.ValidationMessage(err); ok {
		return msg
	}
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSentinel rejects a request with the status and code mapped to sentinel.
func writeSentinel(w http.ResponseWriter, sentinel error, message string) {
	status, code := classify(sentinel)
	writeError(w, status, code, message)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}
