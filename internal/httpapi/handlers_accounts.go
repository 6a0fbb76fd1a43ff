package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

type accountDTO struct {
	ID       string          `json:"id"`
	Metadata json.RawMessage `json:"metadata"`
	Roles    []string        `json:"roles"`
}

func accountToDTO(a store.AccountView) accountDTO {
	return accountDTO{
		ID:       a.ID().String(),
		Metadata: rawJSON(a.Metadata),
		Roles:    a.Roles,
	}
}

func (h *handler) listAccounts(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var f store.AccountFilter
	if raw := c.QueryParam("domain"); raw != "" {
		f.Domain = &raw
	}

	result, err := h.repo.ListAccounts(c.Request().Context(), f, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(a store.AccountView) any { return accountToDTO(a) }))
}

func (h *handler) getAccount(c echo.Context) error {
	raw, err := unescapeParam(c, "id")
	if err != nil {
		return err
	}
	id, perr := domain.ParseAccountID(raw)
	if perr != nil {
		return newValidationError(perr.Error())
	}

	a, found, err := h.repo.GetAccount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return newNotFoundError("account", raw)
	}
	return c.JSON(http.StatusOK, accountToDTO(a))
}
