package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/carelinkhq/carelink-api/models"
)

// writeDomainError maps the typed engine errors onto HTTP statuses. Anything
// untyped is a 500 with the details kept in the logs.
func writeDomainError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case models.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case models.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case models.IsPermissionDenied(err):
		http.Error(w, err.Error(), http.StatusForbidden)
	case models.IsConflict(err):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		zap.S().With(err).Error(logMsg)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// callerID extracts the acting user's id from the caller_id query parameter.
// Authentication happens in the middleware; this only identifies who is acting
// for the permission checks.
func callerID(r *http.Request) string {
	return r.URL.Query().Get("caller_id")
}

// parseTimeParam reads an RFC3339 query parameter, returning fallback when the
// parameter is absent.
func parseTimeParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, models.NewValidationError(name + " must be RFC3339")
	}
	return t, nil
}

// parsePaging reads limit/page query parameters with the usual defaults
func parsePaging(r *http.Request) (limit, page int64) {
	limit = int64(20)
	page = int64(0)

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsedPage, err := strconv.ParseInt(pageStr, 10, 64); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	return limit, page
}
