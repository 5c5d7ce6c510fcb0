package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"contas/internal/core"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return core.Invalid("body", "malformed JSON: "+err.Error())
	}
	return nil
}

// pathID extracts a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, core.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// parseYearMonth extracts year and month from query parameters,
// defaulting to the current calendar month.
func parseYearMonth(r *http.Request) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}
	return year, month
}

// parseScope reads the edit scope from query or body field, falling
// back to single.
func parseScope(raw string) (core.EditScope, error) {
	if strings.TrimSpace(raw) == "" {
		return core.EditSingle, nil
	}
	scope := core.EditScope(raw)
	if err := scope.Validate(); err != nil {
		return "", core.InvalidErr("scope", err)
	}
	return scope, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
