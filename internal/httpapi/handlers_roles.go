package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
)

type roleDTO struct {
	Name        string          `json:"name"`
	Permissions json.RawMessage `json:"permissions"`
}

func roleToDTO(r domain.Role) roleDTO {
	return roleDTO{Name: r.Name, Permissions: rawJSON(r.Permissions)}
}

func (h *handler) listRoles(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	result, err := h.repo.ListRoles(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(r domain.Role) any { return roleToDTO(r) }))
}
