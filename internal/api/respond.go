package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"goaltracker/internal/common"
	"goaltracker/internal/database"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("response encoding failed", "error", err)
	}
}

// writeError maps the sentinel taxonomy to status codes. Everything else is
// a 500 with a generic body.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, common.ErrUnauthorized):
		a.writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "authentication required"})
	case errors.Is(err, common.ErrPermissionDenied):
		a.writeJSON(w, http.StatusForbidden, errorResponse{Detail: "permission denied"})
	case errors.Is(err, common.ErrNotFound):
		a.writeJSON(w, http.StatusNotFound, errorResponse{Detail: "not found"})
	default:
		a.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		a.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}

func idParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, common.ErrNotFound
	}
	return uint(id), nil
}

// listOptions reads the shared limit/offset/ordering/search parameters.
func listOptions(r *http.Request) database.ListOptions {
	q := r.URL.Query()
	opts := database.ListOptions{
		Ordering: q.Get("ordering"),
		Search:   q.Get("search"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	return opts
}

func uintListParam(r *http.Request, name string) []uint {
	var out []uint
	for _, raw := range splitParam(r, name) {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			out = append(out, uint(v))
		}
	}
	return out
}

// splitParam accepts both repeated parameters and a single comma-separated
// value.
func splitParam(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
