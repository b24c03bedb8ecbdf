package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eventops/backend/internal/domain/ledger"
)

// CustomerPaymentRequest records money received against an invoice
type CustomerPaymentRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Reason    string          `json:"reason" binding:"required,min=1,max=500"`
}

// VendorPaymentRequest records money paid out to a vendor
type VendorPaymentRequest struct {
	VendorID uuid.UUID       `json:"vendor_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Date     time.Time       `json:"date" binding:"required"`
	Reason   string          `json:"reason" binding:"required,min=1,max=500"`
}

// VendorPurchaseRequest records goods or services bought from a vendor,
// raising the payable balance
type VendorPurchaseRequest struct {
	VendorID uuid.UUID       `json:"vendor_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// SalaryPaymentRequest records a salary disbursement to an employee
type SalaryPaymentRequest struct {
	EmployeeID uuid.UUID       `json:"employee_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
	Reason     string          `json:"reason" binding:"required,min=1,max=500"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID               uuid.UUID       `json:"id"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	CounterpartyType string          `json:"counterparty_type"`
	CounterpartyID   uuid.UUID       `json:"counterparty_id"`
	InvoiceID        *uuid.UUID      `json:"invoice_id,omitempty"`
	Date             time.Time       `json:"date"`
	Reason           string          `json:"reason"`
	CreatedAt        time.Time       `json:"created_at"`
}

// EntryListFilter represents filter options for the ledger entry list
type EntryListFilter struct {
	Type             string     `form:"type" binding:"omitempty,oneof=CREDIT DEBIT"`
	CounterpartyType string     `form:"counterparty_type" binding:"omitempty,oneof=CUSTOMER VENDOR EMPLOYEE"`
	CounterpartyID   *uuid.UUID `form:"counterparty_id"`
	DateFrom         *time.Time `form:"date_from"`
	DateTo           *time.Time `form:"date_to"`
	Page             int        `form:"page" binding:"omitempty,min=1"`
	PageSize         int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy          string     `form:"order_by"`
	OrderDir         string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToEntryResponse converts a domain Entry to EntryResponse
func ToEntryResponse(e *ledger.Entry) *EntryResponse {
	return &EntryResponse{
		ID:               e.ID,
		Type:             string(e.Type),
		Amount:           e.Amount.Rupees(),
		CounterpartyType: string(e.CounterpartyType),
		CounterpartyID:   e.CounterpartyID,
		InvoiceID:        e.InvoiceID,
		Date:             e.Date,
		Reason:           e.Reason,
		CreatedAt:        e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain Entries to EntryResponses
func ToEntryResponses(entries []ledger.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = *ToEntryResponse(&e)
	}
	return responses
}
