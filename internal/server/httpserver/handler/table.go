package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/yndnr/tablesync-go/internal/core/domain"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
)

// State handles GET /table.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.table.State(r.Context()))
}

// Changes handles GET /table/changes?since=N.
func (h *Handler) Changes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("since") {
		writeStatus(w, http.StatusBadRequest, domain.ErrMissingArgument)
		return
	}

	since, err := strconv.ParseInt(query.Get("since"), 10, 64)
	if err != nil {
		logger.L(r.Context()).Debug("bad since parameter", "value", query.Get("since"))
		writeStatus(w, http.StatusBadRequest, domain.ErrInvalidArgument)
		return
	}

	h.writeJSON(w, http.StatusOK, h.table.Changes(r.Context(), since))
}

// Add handles POST /table/add. The response is the full state after the
// insert.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	row, err := decodeRow(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		logger.L(r.Context()).Warn("malformed add request", "error", err)
		writeStatus(w, http.StatusInternalServerError, err)
		return
	}

	state, err := h.table.Add(r.Context(), row)
	if err != nil {
		logger.L(r.Context()).Warn("row rejected", "id", row.ID, "error", err)
		writeStatus(w, statusFor(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, state)
}

// Remove handles POST /table/remove?id=X. Removing an unknown id still
// answers 200 with the unchanged state.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("id") {
		writeStatus(w, http.StatusBadRequest, domain.ErrMissingArgument)
		return
	}

	state, err := h.table.Remove(r.Context(), query.Get("id"))
	if err != nil {
		writeStatus(w, statusFor(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, state)
}

func decodeRow(body io.Reader) (domain.Row, error) {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req AddRowRequest
	if err := dec.Decode(&req); err != nil {
		return domain.Row{}, domain.ErrRowMalformed.WithCause(err)
	}
	// The object must be the whole body.
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return domain.Row{}, domain.ErrRowMalformed.WithDetails("unexpected data after row")
	}

	return domain.Row{ID: req.ID, Name: req.Name, Price: req.Price}, nil
}
