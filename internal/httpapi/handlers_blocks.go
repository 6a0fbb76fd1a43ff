package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/domain"
)

type blockDTO struct {
	Height            uint64  `json:"height"`
	Hash              string  `json:"hash"`
	PrevBlockHash     *string `json:"prev_block_hash"`
	TransactionsHash  *string `json:"transactions_hash"`
	CreatedAt         string  `json:"created_at"`
	TransactionsCount int     `json:"transactions_count"`
}

func blockToDTO(b domain.Block) blockDTO {
	return blockDTO{
		Height:            b.Height,
		Hash:              b.Hash,
		PrevBlockHash:     b.PrevBlockHash,
		TransactionsHash:  b.TransactionsHash,
		CreatedAt:         b.CreatedAt.Format(timeLayout),
		TransactionsCount: b.TransactionsCount,
	}
}

func (h *handler) listBlocks(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	result, err := h.repo.ListBlocks(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(b domain.Block) any { return blockToDTO(b) }))
}

// getBlock accepts either a height (all-digit path segment) or a hash.
// "/blocks/0" is explicitly invalid (spec.md §8's boundary behavior);
// genesis is height 1.
func (h *handler) getBlock(c echo.Context) error {
	raw := c.Param("id")

	if height, err := strconv.ParseUint(raw, 10, 64); err == nil {
		if height == 0 {
			return newValidationError("block height must be >= 1")
		}
		b, found, err := h.repo.GetBlockByHeight(c.Request().Context(), height)
		if err != nil {
			return err
		}
		if !found {
			return newNotFoundError("block", raw)
		}
		return c.JSON(http.StatusOK, blockToDTO(b))
	}

	b, found, err := h.repo.GetBlockByHash(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	if !found {
		return newNotFoundError("block", raw)
	}
	return c.JSON(http.StatusOK, blockToDTO(b))
}
