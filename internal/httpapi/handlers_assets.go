package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

type assetDTO struct {
	ID           string        `json:"id"`
	AccountID    string        `json:"account_id"`
	DefinitionID string        `json:"definition_id"`
	Value        domain.Tagged `json:"value"`
}

func assetToDTO(a store.AssetView) assetDTO {
	owner := domain.AccountID{Signatory: a.OwnedBySig, Domain: a.OwnedByDomain}
	def := domain.AssetDefinitionID{Name: a.DefinitionName, Domain: a.DefinitionDomain}
	return assetDTO{
		ID:           a.ID,
		AccountID:    owner.String(),
		DefinitionID: def.String(),
		Value:        tagged("Numeric", a.Value),
	}
}

func (h *handler) listAssets(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var f store.AssetFilter
	if raw := c.QueryParam("owner"); raw != "" {
		f.Owner = &raw
	}
	if raw := c.QueryParam("definition"); raw != "" {
		f.Definition = &raw
	}

	result, err := h.repo.ListAssets(c.Request().Context(), f, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(a store.AssetView) any { return assetToDTO(a) }))
}

func (h *handler) getAsset(c echo.Context) error {
	raw, err := unescapeParam(c, "id")
	if err != nil {
		return err
	}
	id, perr := domain.ParseAssetID(raw)
	if perr != nil {
		return newValidationError(perr.Error())
	}

	a, found, err := h.repo.GetAsset(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return newNotFoundError("asset", raw)
	}
	return c.JSON(http.StatusOK, assetToDTO(a))
}
