package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/eventops/backend/internal/application/billing"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService  *billingapp.InvoiceService
	documentService *billingapp.DocumentService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService, documentService *billingapp.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		documentService: documentService,
	}
}

// RegisterRoutes registers invoice routes on the given group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/billing/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.GET("/number/:number", h.GetByNumber)
		invoices.PUT("/:id/items", h.UpdateItems)
		invoices.PUT("/:id/booking", h.UpdateBooking)
		invoices.PUT("/:id/advance", h.SetAdvance)
		invoices.PUT("/:id/remarks", h.SetRemarks)
		invoices.POST("/:id/issue", h.Issue)
		invoices.POST("/:id/cancel", h.Cancel)
		invoices.DELETE("/:id", h.Delete)
		invoices.GET("/:id/document", h.Document)
	}
}

// Create handles POST /billing/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID handles GET /billing/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetByNumber handles GET /billing/invoices/number/:number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List handles GET /billing/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter billingapp.InvoiceListFilter
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

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// UpdateItems handles PUT /billing/invoices/:id/items
func (h *InvoiceHandler) UpdateItems(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.UpdateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateItems(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// UpdateBooking handles PUT /billing/invoices/:id/booking
func (h *InvoiceHandler) UpdateBooking(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateBooking(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// SetAdvance handles PUT /billing/invoices/:id/advance
func (h *InvoiceHandler) SetAdvance(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.SetAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.SetAdvance(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// SetRemarks handles PUT /billing/invoices/:id/remarks
func (h *InvoiceHandler) SetRemarks(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.SetRemarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.SetRemarks(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Issue handles POST /billing/invoices/:id/issue
func (h *InvoiceHandler) Issue(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.Issue(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Cancel handles POST /billing/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete handles DELETE /billing/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Document handles GET /billing/invoices/:id/document and streams the
// rendered PDF back to the caller.
func (h *InvoiceHandler) Document(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	result, err := h.documentService.RenderInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Header("X-Page-Count", strconv.Itoa(result.PageCount))
	c.Data(http.StatusOK, "application/pdf", result.PDFData)
}
