package controllers

import (
	"errors"
	"net/http"

	"github.com/civic-lens/api-go/services"
)

// serviceErrorStatus maps engine errors onto HTTP statuses. Anything
// outside the known taxonomy is a server fault.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrIssueNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateIssue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
