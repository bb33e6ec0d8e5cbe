package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yndnr/tablesync-go/internal/core/domain"
	"github.com/yndnr/tablesync-go/internal/core/service"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
)

// Handler serves the table API on top of a TableService.
type Handler struct {
	table  *service.TableService
	logger logger.Logger
}

// New creates a new Handler.
func New(table *service.TableService, l logger.Logger) *Handler {
	if l == nil {
		l = logger.Default()
	}
	return &Handler{
		table:  table,
		logger: l,
	}
}

// writeJSON writes v as the whole response body.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeStatus answers with a status code and no body. The domain error code,
// when there is one, goes in X-Error-Code.
func writeStatus(w http.ResponseWriter, status int, err error) {
	if code := domain.GetErrorCode(err); code != "" {
		w.Header().Set("X-Error-Code", code)
	}
	w.WriteHeader(status)
}

// statusFor maps service errors onto the table API's status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingArgument), errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		// Rejected rows are reported as server errors, like malformed bodies.
		return http.StatusInternalServerError
	}
}
