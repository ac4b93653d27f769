package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/output"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

func errorBody(err error) output.ErrorEnvelope {
	return output.NewError(err)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody(err))
}

// statusFor maps coded errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	}
	switch apperr.CodeOf(err) {
	case apperr.CodeUsage:
		return http.StatusBadRequest
	case apperr.CodeConfig:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
