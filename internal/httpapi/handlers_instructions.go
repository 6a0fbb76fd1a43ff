package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/store"
)

type instructionDTO struct {
	TransactionHash string          `json:"transaction_hash"`
	Position        int             `json:"position"`
	Kind            string          `json:"kind"`
	Payload         json.RawMessage `json:"payload"`
	CreatedAt       string          `json:"created_at"`
	Authority       string          `json:"authority"`
	TransactionStatus string        `json:"transaction_status"`
	Block           uint64          `json:"block"`
}

func instructionToDTO(i store.InstructionView) instructionDTO {
	return instructionDTO{
		TransactionHash:   i.TransactionHash,
		Position:          i.Position,
		Kind:              i.Kind,
		Payload:           rawJSON(i.Payload),
		CreatedAt:         i.CreatedAt.Format(timeLayout),
		Authority:         i.Authority,
		TransactionStatus: i.TransactionStatus,
		Block:             i.BlockHeight,
	}
}

func (h *handler) listInstructions(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var f store.InstructionFilter
	if raw := c.QueryParam("kind"); raw != "" {
		f.Kind = &raw
	}
	if raw := c.QueryParam("authority"); raw != "" {
		f.Authority = &raw
	}
	if raw := c.QueryParam("transaction_status"); raw != "" {
		if raw != "committed" && raw != "rejected" {
			return newValidationError("transaction_status filter must be 'committed' or 'rejected'")
		}
		f.TransactionStatus = &raw
	}
	if raw := c.QueryParam("transaction_hash"); raw != "" {
		f.TransactionHash = &raw
	}
	if raw := c.QueryParam("block"); raw != "" {
		n, perr := parseUintParam(raw)
		if perr != nil {
			return newValidationError("block filter must be a non-negative integer")
		}
		f.Block = &n
	}

	result, err := h.repo.ListInstructions(c.Request().Context(), f, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(i store.InstructionView) any { return instructionToDTO(i) }))
}
