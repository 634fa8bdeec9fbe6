package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loan_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler exposes the cash ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/balance", h.getBalance)
		ledger.GET("/entries", h.listEntries)  // Admin only
		ledger.POST("/entries", h.appendEntry) // Admin only
	}
}

// getBalance godoc
// @Summary Current cash balance
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Security BearerAuth
// @Router /ledger/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	balance, err := h.ledgerService.GetBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance, AsOf: time.Now().UTC()})
}

// listEntries godoc
// @Summary List ledger entries
// @Tags ledger
// @Produce json
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 403 {object} map[string]string "Admins only"
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	caller, ok := principalOrAbort(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// appendEntry godoc
// @Summary Append a compensating ledger entry
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.CreateLedgerEntryRequest true "Entry"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admins only"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) appendEntry(c *gin.Context) {
	caller, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.AppendCompensatingEntry(c.Request.Context(), caller, req.Kind, req.Amount, req.TransactionID)
	if err != nil {
		respondError(c, err, "Failed to append ledger entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}
