package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/operations"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/desertthunder/stacksync/internal/tasks"
)

// maxBodyBytes bounds operation request bodies.
const maxBodyBytes = 4 << 20

// OperationsHandler lists and runs registered operations.
type OperationsHandler struct {
	dispatcher *tasks.Dispatcher
	logger     *log.Logger
}

// NewOperationsHandler creates an [OperationsHandler].
func NewOperationsHandler(dispatcher *tasks.Dispatcher, logger *log.Logger) *OperationsHandler {
	return &OperationsHandler{dispatcher: dispatcher, logger: logger}
}

// Routes implements [Handler].
func (h *OperationsHandler) Routes() []string {
	return []string{"GET /operations", "POST /operations/{name}"}
}

// ServeHTTP implements [Handler].
func (h *OperationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, h.dispatcher.Registry().Describe())
		return
	}
	h.run(w, r)
}

func (h *OperationsHandler) run(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	in := operations.Inputs{}
	if len(body) > 0 {
		if in, err = operations.ParseInputs(body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := h.dispatcher.Dispatch(r.Context(), name, in, nil)
	if res != nil && res.Run != nil && res.Run.ID() != "" {
		w.Header().Set("X-Run-ID", res.Run.ID())
	}
	if err != nil {
		h.logger.Warn("operation failed", "operation", name, "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, res.Output)
}

// RunStore is the read side of run history.
type RunStore interface {
	Find(ref string) (*models.Run, error)
	List(criteria map[string]any) ([]*models.Run, error)
}

// RunsHandler serves recorded runs.
type RunsHandler struct {
	store RunStore
}

// NewRunsHandler creates a [RunsHandler]. A nil store answers every request with 404.
func NewRunsHandler(store RunStore) *RunsHandler {
	return &RunsHandler{store: store}
}

// Routes implements [Handler].
func (h *RunsHandler) Routes() []string {
	return []string{"GET /runs", "GET /runs/{ref}"}
}

// ServeHTTP implements [Handler].
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, shared.ErrStoreDisabled.Error())
		return
	}

	if ref := r.PathValue("ref"); ref != "" {
		run, err := h.store.Find(ref)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, run)
		return
	}

	query := r.URL.Query()
	criteria := map[string]any{
		"operation": query.Get("operation"),
		"status":    query.Get("status"),
	}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: limit must be a non-negative integer", shared.ErrInvalidArgument))
			return
		}
		criteria["limit"] = n
	}

	runs, err := h.store.List(criteria)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// statusFor maps sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrUnknownOperation), errors.Is(err, shared.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}
