package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/store"
)

type transactionDTO struct {
	Hash         string          `json:"hash"`
	Block        uint64          `json:"block"`
	CreatedAt    string          `json:"created_at"`
	Authority    string          `json:"authority"`
	Signature    string          `json:"signature"`
	Nonce        *uint32         `json:"nonce"`
	Metadata     json.RawMessage `json:"metadata"`
	TimeToLiveMs *uint64         `json:"time_to_live_ms"`
	Executable   string          `json:"executable"`
	Status       string          `json:"status"`
	Error        *string         `json:"error"`
}

func transactionToDTO(t store.TransactionView) transactionDTO {
	return transactionDTO{
		Hash:         t.Hash,
		Block:        t.BlockHeight,
		CreatedAt:    t.CreatedAt.Format(timeLayout),
		Authority:    t.Authority,
		Signature:    t.Signature,
		Nonce:        t.Nonce,
		Metadata:     rawJSON(t.Metadata),
		TimeToLiveMs: t.TimeToLiveMs,
		Executable:   string(t.Executable),
		Status:       t.Status,
		Error:        t.Error,
	}
}

func (h *handler) listTransactions(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var f store.TransactionFilter
	if raw := c.QueryParam("block"); raw != "" {
		n, perr := parseUintParam(raw)
		if perr != nil {
			return newValidationError("block filter must be a non-negative integer")
		}
		f.Block = &n
	}
	if raw := c.QueryParam("authority"); raw != "" {
		f.Authority = &raw
	}
	if raw := c.QueryParam("status"); raw != "" {
		if raw != "committed" && raw != "rejected" {
			return newValidationError("status filter must be 'committed' or 'rejected'")
		}
		f.Status = &raw
	}

	result, err := h.repo.ListTransactions(c.Request().Context(), f, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(result.Items, result.Pagination, func(t store.TransactionView) any { return transactionToDTO(t) }))
}

func (h *handler) getTransaction(c echo.Context) error {
	hash := c.Param("hash")
	t, found, err := h.repo.GetTransaction(c.Request().Context(), hash)
	if err != nil {
		return err
	}
	if !found {
		return newNotFoundError("transaction", hash)
	}
	return c.JSON(http.StatusOK, transactionToDTO(t))
}
