package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/eventops/backend/internal/application/partner"
	payrollapp "github.com/eventops/backend/internal/application/payroll"
)

// EmployeeHandler handles employee-related API endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *partnerapp.EmployeeService
	cycleService    *payrollapp.CycleService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *partnerapp.EmployeeService, cycleService *payrollapp.CycleService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		cycleService:    cycleService,
	}
}

// RegisterRoutes registers employee routes on the given group
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/partners/employees")
	{
		employees.POST("", h.Create)
		employees.GET("", h.List)
		employees.GET("/:id", h.GetByID)
		employees.GET("/code/:code", h.GetByCode)
		employees.PUT("/:id", h.Update)
		employees.PUT("/:id/salary", h.ReviseSalary)
		employees.POST("/:id/mark-left", h.MarkLeft)
		employees.GET("/:id/salary-cycle", h.SalaryCycle)
	}
}

// Create handles POST /partners/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req partnerapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, employee)
}

// GetByID handles GET /partners/employees/:id
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// GetByCode handles GET /partners/employees/code/:code
func (h *EmployeeHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Employee code is required")
		return
	}

	employee, err := h.employeeService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// List handles GET /partners/employees
func (h *EmployeeHandler) List(c *gin.Context) {
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

	employees, total, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, employees, total, filter.Page, filter.PageSize)
}

// Update handles PUT /partners/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return
	}

	var req partnerapp.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), employeeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// ReviseSalary handles PUT /partners/employees/:id/salary
func (h *EmployeeHandler) ReviseSalary(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return
	}

	var req partnerapp.ReviseSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.ReviseSalary(c.Request.Context(), employeeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// MarkLeft handles POST /partners/employees/:id/mark-left
func (h *EmployeeHandler) MarkLeft(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return
	}

	employee, err := h.employeeService.MarkLeft(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// SalaryCycle handles GET /partners/employees/:id/salary-cycle.
// An optional as_of query parameter (RFC 3339) pins the cycle to a
// point in time; it defaults to now.
func (h *EmployeeHandler) SalaryCycle(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return
	}

	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		asOf, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "as_of must be an RFC 3339 timestamp")
			return
		}
	}

	cycle, err := h.cycleService.GetCycle(c.Request.Context(), employeeID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cycle)
}
