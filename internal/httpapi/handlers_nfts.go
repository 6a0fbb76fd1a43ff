package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
	"github.com/iroha-explorer/explorer/internal/store"
)

type nftDTO struct {
	ID      string          `json:"id"`
	OwnedBy string          `json:"owned_by"`
	Content json.RawMessage `json:"content"`
}

func nftToDTO(n store.NftView) nftDTO {
	return nftDTO{ID: n.ID, OwnedBy: n.OwnedBy, Content: rawJSON(n.Content)}
}

func (h *handler) listNfts(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var f store.NftFilter
	if raw := c.QueryParam("domain"); raw != "" {
		f.Domain = &raw
	}
	if raw := c.QueryParam("owner"); raw != "" {
		f.Owner = &raw
	}

	result, err := h.repo.ListNfts(c.Request().Context(), f, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(n store.NftView) any { return nftToDTO(n) }))
}

func (h *handler) getNft(c echo.Context) error {
	raw, err := unescapeParam(c, "id")
	if err != nil {
		return err
	}
	id, perr := domain.ParseNftID(raw)
	if perr != nil {
		return newValidationError(perr.Error())
	}

	n, found, err := h.repo.GetNft(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return newNotFoundError("nft", raw)
	}
	return c.JSON(http.StatusOK, nftToDTO(n))
}
