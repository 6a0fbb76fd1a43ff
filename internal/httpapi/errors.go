package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/store"
)

// validationError is a per-request 400 (spec.md §7's ValidationError kind).
type validationError struct{ reason string }

func newValidationError(reason string) error { return validationError{reason: reason} }

func (e validationError) Error() string { return e.reason }

// notFoundError is a per-request 404 (spec.md §7's NotFound kind).
type notFoundError struct {
	entity string
	id     string
}

func newNotFoundError(entity, id string) error { return notFoundError{entity: entity, id: id} }

func (e notFoundError) Error() string { return "not found: " + e.entity + " " + e.id }

// upstreamUnavailableError is a 503 surfaced when an ingest-dependent
// endpoint is hit before bootstrap has completed (spec.md §7's
// ChainUnreachable kind, as seen by the HTTP layer).
type upstreamUnavailableError struct{}

func newUpstreamUnavailableError() error { return upstreamUnavailableError{} }

func (upstreamUnavailableError) Error() string { return "upstream unavailable" }

// errorHandler is echo's central error-to-status mapping (spec.md §4.6).
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		valErr   validationError
		notFound notFoundError
		upErr    upstreamUnavailableError
		invPage  store.ErrInvalidPagination
	)

	switch {
	case errors.As(err, &valErr):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": valErr.reason})
	case errors.As(err, &invPage):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": invPage.Error()})
	case errors.Is(err, store.ErrInvalidFilter):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &notFound):
		_ = c.JSON(http.StatusNotFound, map[string]string{
			"error":  "not found",
			"entity": notFound.entity,
			"id":     notFound.id,
		})
	case errors.As(err, &upErr):
		_ = c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "upstream_unavailable"})
	default:
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, map[string]any{"error": httpErr.Message})
			return
		}
		c.Logger().Error(err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
