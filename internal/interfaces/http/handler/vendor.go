package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/eventops/backend/internal/application/partner"
)

// VendorHandler handles vendor-related API endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *partnerapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// RegisterRoutes registers vendor routes on the given group
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/partners/vendors")
	{
		vendors.POST("", h.Create)
		vendors.GET("", h.List)
		vendors.GET("/:id", h.GetByID)
		vendors.GET("/code/:code", h.GetByCode)
		vendors.PUT("/:id", h.Update)
		vendors.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create handles POST /partners/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var req partnerapp.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, vendor)
}

// GetByID handles GET /partners/vendors/:id
func (h *VendorHandler) GetByID(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// GetByCode handles GET /partners/vendors/code/:code
func (h *VendorHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Vendor code is required")
		return
	}

	vendor, err := h.vendorService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// List handles GET /partners/vendors
func (h *VendorHandler) List(c *gin.Context) {
	var filter partnerapp.PartnerListFilter
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

	vendors, total, err := h.vendorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, vendors, total, filter.Page, filter.PageSize)
}

// Update handles PUT /partners/vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	var req partnerapp.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// Deactivate handles POST /partners/vendors/:id/deactivate
func (h *VendorHandler) Deactivate(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	vendor, err := h.vendorService.Deactivate(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}
