package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/eventops/backend/internal/application/finance"
	"github.com/eventops/backend/internal/domain/ledger"
)

// LedgerHandler handles payment posting and ledger query endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *financeapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *financeapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes on the given group
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledgerGroup := rg.Group("/ledger")
	{
		ledgerGroup.POST("/payments/customer", h.RecordCustomerPayment)
		ledgerGroup.POST("/payments/vendor", h.RecordVendorPayment)
		ledgerGroup.POST("/payments/salary", h.RecordSalaryPayment)
		ledgerGroup.POST("/purchases/vendor", h.RecordVendorPurchase)
		ledgerGroup.GET("/entries", h.ListEntries)
		ledgerGroup.GET("/invoices/:id/entries", h.ListInvoiceEntries)
		ledgerGroup.GET("/counterparties/:type/:id/entries", h.ListCounterpartyEntries)
	}
}

// RecordCustomerPayment handles POST /ledger/payments/customer
func (h *LedgerHandler) RecordCustomerPayment(c *gin.Context) {
	var req financeapp.CustomerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.ledgerService.RecordCustomerPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// RecordVendorPayment handles POST /ledger/payments/vendor
func (h *LedgerHandler) RecordVendorPayment(c *gin.Context) {
	var req financeapp.VendorPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.ledgerService.RecordVendorPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// RecordVendorPurchase handles POST /ledger/purchases/vendor
func (h *LedgerHandler) RecordVendorPurchase(c *gin.Context) {
	var req financeapp.VendorPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.ledgerService.RecordVendorPurchase(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordSalaryPayment handles POST /ledger/payments/salary
func (h *LedgerHandler) RecordSalaryPayment(c *gin.Context) {
	var req financeapp.SalaryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.ledgerService.RecordSalaryPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// ListEntries handles GET /ledger/entries
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	var filter financeapp.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, total, err := h.ledgerService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// ListInvoiceEntries handles GET /ledger/invoices/:id/entries
func (h *LedgerHandler) ListInvoiceEntries(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	entries, err := h.ledgerService.ListInvoiceEntries(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListCounterpartyEntries handles GET /ledger/counterparties/:type/:id/entries
func (h *LedgerHandler) ListCounterpartyEntries(c *gin.Context) {
	var counterpartyType ledger.CounterpartyType
	switch c.Param("type") {
	case "customer":
		counterpartyType = ledger.CounterpartyCustomer
	case "vendor":
		counterpartyType = ledger.CounterpartyVendor
	case "employee":
		counterpartyType = ledger.CounterpartyEmployee
	default:
		h.BadRequest(c, "Counterparty type must be customer, vendor or employee")
		return
	}

	counterpartyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid counterparty ID format")
		return
	}

	var filter financeapp.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.ledgerService.ListCounterpartyEntries(c.Request.Context(), counterpartyType, counterpartyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
