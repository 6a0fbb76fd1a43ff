package httpapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/store"
)

// parsePage reads page/per_page query parameters into a store.Page,
// applying the documented defaults and bounds (spec.md §4.2, §6).
// Non-numeric or out-of-range values are a validation error (400).
func parsePage(c echo.Context) (store.Page, error) {
	var page, perPage *int

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Page{}, newValidationError("page must be an integer")
		}
		page = &n
	}
	if raw := c.QueryParam("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Page{}, newValidationError("per_page must be an integer")
		}
		perPage = &n
	}

	p, err := store.NewPage(page, perPage)
	if err != nil {
		return store.Page{}, newValidationError(err.Error())
	}
	return p, nil
}

// paginatedResponse is the wire envelope for every list endpoint
// (spec.md §4.2).
type paginatedResponse struct {
	Items      any                `json:"items"`
	Pagination store.Pagination   `json:"pagination"`
}

func paginated[T any](items []T, pagination store.Pagination, toDTO func(T) any) paginatedResponse {
	dtos := make([]any, len(items))
	for i, it := range items {
		dtos[i] = toDTO(it)
	}
	return paginatedResponse{Items: dtos, Pagination: pagination}
}
