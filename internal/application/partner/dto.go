package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/shared"
)

// AddressRequest represents a billing address in requests
type AddressRequest struct {
	Line1     string `json:"line1" binding:"required,min=1,max=200"`
	Line2     string `json:"line2" binding:"max=200"`
	City      string `json:"city" binding:"required,min=1,max=100"`
	State     string `json:"state" binding:"required,min=1,max=100"`
	StateCode string `json:"state_code" binding:"required,len=2"`
	PinCode   string `json:"pin_code" binding:"required,len=6"`
}

// AddressResponse represents a billing address in responses
type AddressResponse struct {
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	PinCode   string `json:"pin_code"`
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Code    string          `json:"code" binding:"required,min=1,max=50"`
	Name    string          `json:"name" binding:"required,min=1,max=200"`
	Phone   string          `json:"phone" binding:"max=20"`
	Email   string          `json:"email" binding:"omitempty,email,max=200"`
	GSTIN   string          `json:"gstin" binding:"max=15"`
	Address *AddressRequest `json:"address"`
	Notes   string          `json:"notes" binding:"max=2000"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    string          `json:"name" binding:"required,min=1,max=200"`
	Phone   string          `json:"phone" binding:"max=20"`
	Email   string          `json:"email" binding:"omitempty,email,max=200"`
	GSTIN   *string         `json:"gstin" binding:"omitempty,max=15"`
	Address *AddressRequest `json:"address"`
	Notes   *string         `json:"notes" binding:"omitempty,max=2000"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID        `json:"id"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	GSTIN     string           `json:"gstin"`
	Address   *AddressResponse `json:"address,omitempty"`
	Status    string           `json:"status"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Version   int              `json:"version"`
}

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Code     string `json:"code" binding:"required,min=1,max=50"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"max=20"`
	Category string `json:"category" binding:"max=100"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	Phone    string  `json:"phone" binding:"max=20"`
	Category string  `json:"category" binding:"max=100"`
	Notes    *string `json:"notes" binding:"omitempty,max=2000"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Category       string          `json:"category"`
	Status         string          `json:"status"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalPayments  decimal.Decimal `json:"total_payments"`
	Balance        decimal.Decimal `json:"balance"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// CreateEmployeeRequest represents a request to create an employee
type CreateEmployeeRequest struct {
	Code          string          `json:"code" binding:"required,min=1,max=50"`
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Phone         string          `json:"phone" binding:"max=20"`
	Designation   string          `json:"designation" binding:"max=100"`
	JoiningDate   time.Time       `json:"joining_date" binding:"required"`
	MonthlySalary decimal.Decimal `json:"monthly_salary" binding:"required"`
}

// UpdateEmployeeRequest represents a request to update an employee
type UpdateEmployeeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"max=20"`
	Designation string `json:"designation" binding:"max=100"`
}

// ReviseSalaryRequest sets a new monthly salary for an employee
type ReviseSalaryRequest struct {
	MonthlySalary decimal.Decimal `json:"monthly_salary" binding:"required"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Designation   string          `json:"designation"`
	JoiningDate   time.Time       `json:"joining_date"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// PartnerListFilter represents filter options shared by partner lists
type PartnerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive left"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) *CustomerResponse {
	resp := &CustomerResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		GSTIN:     c.GSTIN,
		Status:    string(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
	if !c.Address.IsEmpty() {
		resp.Address = &AddressResponse{
			Line1:     c.Address.Line1,
			Line2:     c.Address.Line2,
			City:      c.Address.City,
			State:     c.Address.State,
			StateCode: c.Address.StateCode,
			PinCode:   c.Address.PinCode,
		}
	}
	return resp
}

// ToVendorResponse converts a domain Vendor to VendorResponse
func ToVendorResponse(v *partner.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:             v.ID,
		Code:           v.Code,
		Name:           v.Name,
		Phone:          v.Phone,
		Category:       v.Category,
		Status:         string(v.Status),
		TotalPurchases: v.TotalPurchases.Rupees(),
		TotalPayments:  v.TotalPayments.Rupees(),
		Balance:        v.Balance().Rupees(),
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Version:        v.Version,
	}
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *partner.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:            e.ID,
		Code:          e.Code,
		Name:          e.Name,
		Phone:         e.Phone,
		Designation:   e.Designation,
		JoiningDate:   e.JoiningDate,
		MonthlySalary: e.MonthlySalary.Rupees(),
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Version:       e.Version,
	}
}

// toDomainFilter converts the API filter into the repository filter
func toDomainFilter(filter PartnerListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = filter.Search

	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	return domainFilter
}
