package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

type assetDefinitionDTO struct {
	ID       string          `json:"id"`
	OwnedBy  string          `json:"owned_by"`
	Mintable string          `json:"mintable"`
	Logo     *string         `json:"logo"`
	Metadata json.RawMessage `json:"metadata"`
	Accounts []string        `json:"accounts,omitempty"`
}

func assetDefinitionToDTO(a domain.AssetDefinition) assetDefinitionDTO {
	return assetDefinitionDTO{
		ID:       a.ID().String(),
		OwnedBy:  a.OwnedBy().String(),
		Mintable: string(a.Mintable),
		Logo:     a.Logo,
		Metadata: rawJSON(a.Metadata),
	}
}

func (h *handler) listAssetDefinitions(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var f store.AssetDefinitionFilter
	if raw := c.QueryParam("domain"); raw != "" {
		f.Domain = &raw
	}

	result, err := h.repo.ListAssetDefinitions(c.Request().Context(), f, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(a domain.AssetDefinition) any { return assetDefinitionToDTO(a) }))
}

func (h *handler) getAssetDefinition(c echo.Context) error {
	raw, err := unescapeParam(c, "id")
	if err != nil {
		return err
	}
	id, perr := domain.ParseAssetDefinitionID(raw)
	if perr != nil {
		return newValidationError(perr.Error())
	}

	a, found, err := h.repo.GetAssetDefinition(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return newNotFoundError("asset_definition", raw)
	}

	holders, err := h.repo.AssetHolders(c.Request().Context(), id)
	if err != nil {
		return err
	}
	accounts := make([]string, len(holders))
	for i, holder := range holders {
		accounts[i] = holder.String()
	}

	dto := assetDefinitionToDTO(a)
	dto.Accounts = accounts
	return c.JSON(http.StatusOK, dto)
}
