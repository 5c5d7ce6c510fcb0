package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"contas/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses:
// validation failures are 422 with field detail, reference conflicts
// 409, missing resources 404. Anything else is a 500 with a generic
// body so internals never leak to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *core.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: validation.Error(),
			Field: validation.Field,
		})
		return
	}

	var conflict *core.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: conflict.Error()})
		return
	}

	var notFound *core.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
		return
	}

	slog.ErrorContext(r.Context(), "Request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
