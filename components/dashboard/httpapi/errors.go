package httpapi

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/commands"
)

// StatusFor maps core errors onto HTTP status codes: validation failures
// are 400, unknown sections 404, everything else 500.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, commands.ErrInvalidInput),
		errors.Is(err, dashboard.ErrInvalidPreferences),
		errors.Is(err, dashboard.ErrInvalidExport),
		errors.Is(err, dashboard.ErrSessionRequired):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrUnknownSection):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
