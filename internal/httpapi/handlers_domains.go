package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

type domainDTO struct {
	ID              string          `json:"id"`
	Logo            *string         `json:"logo"`
	Metadata        json.RawMessage `json:"metadata"`
	OwnedBy         *string         `json:"owned_by"`
	Accounts        int             `json:"accounts"`
	AssetDefinitions int            `json:"asset_definitions"`
	Nfts            int             `json:"nfts"`
}

func domainToDTO(d store.DomainView) domainDTO {
	return domainDTO{
		ID:               d.Name,
		Logo:             d.Logo,
		Metadata:         rawJSON(d.Metadata),
		OwnedBy:          d.OwnedBy,
		Accounts:         d.Accounts,
		AssetDefinitions: d.Assets,
		Nfts:             d.Nfts,
	}
}

func (h *handler) listDomains(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	result, err := h.repo.ListDomains(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(d store.DomainView) any { return domainToDTO(d) }))
}

func (h *handler) getDomain(c echo.Context) error {
	raw, err := unescapeParam(c, "id")
	if err != nil {
		return err
	}
	d, found, err := h.repo.GetDomain(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	if !found {
		return newNotFoundError("domain", raw)
	}
	return c.JSON(http.StatusOK, domainToDTO(d))
}

func unescapeParam(c echo.Context, name string) (string, error) {
	s, err := domain.UnescapeID(c.Param(name))
	if err != nil {
		return "", newValidationError(err.Error())
	}
	return s, nil
}
