package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eventops/backend/internal/domain/billing"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// LineItemRequest represents one line item in an invoice request.
// Monetary figures arrive as major-unit (rupee) decimals.
type LineItemRequest struct {
	Description     string          `json:"description" binding:"required,min=1,max=500"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Rate            decimal.Decimal `json:"rate" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
}

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required,min=1,max=50"`
	CustomerID    uuid.UUID         `json:"customer_id" binding:"required"`
	ReferenceName string            `json:"reference_name" binding:"max=200"`
	BookingDate   time.Time         `json:"booking_date" binding:"required"`
	EventDate     time.Time         `json:"event_date" binding:"required"`
	StartTime     string            `json:"start_time" binding:"max=20"`
	EndTime       string            `json:"end_time" binding:"max=20"`
	Manager       string            `json:"manager" binding:"max=100"`
	SACCode       string            `json:"sac_code" binding:"max=20"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Advance       *decimal.Decimal  `json:"advance"`
	Remarks       string            `json:"remarks" binding:"max=1000"`
}

// UpdateItemsRequest replaces the full line-item list of an invoice
type UpdateItemsRequest struct {
	Items []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateBookingRequest updates the event details of an invoice
type UpdateBookingRequest struct {
	ReferenceName string    `json:"reference_name" binding:"max=200"`
	BookingDate   time.Time `json:"booking_date" binding:"required"`
	EventDate     time.Time `json:"event_date" binding:"required"`
	StartTime     string    `json:"start_time" binding:"max=20"`
	EndTime       string    `json:"end_time" binding:"max=20"`
	Manager       string    `json:"manager" binding:"max=100"`
}

// SetAdvanceRequest records the advance held against an invoice
type SetAdvanceRequest struct {
	Advance decimal.Decimal `json:"advance"`
}

// SetRemarksRequest updates the free-text remarks printed on the invoice
type SetRemarksRequest struct {
	Remarks string `json:"remarks" binding:"max=1000"`
}

// LineItemResponse represents one line item in API responses
type LineItemResponse struct {
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	Base            decimal.Decimal `json:"base"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Amount          decimal.Decimal `json:"amount"`
}

// TaxSplitResponse is the CGST/SGST breakdown of the aggregate tax
type TaxSplitResponse struct {
	Percent    decimal.Decimal `json:"percent"`
	CGSTAmount decimal.Decimal `json:"cgst_amount"`
	SGSTAmount decimal.Decimal `json:"sgst_amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    uuid.UUID `json:"customer_id"`

	ReferenceName string    `json:"reference_name"`
	BookingDate   time.Time `json:"booking_date"`
	EventDate     time.Time `json:"event_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Manager       string    `json:"manager"`
	SACCode       string    `json:"sac_code"`

	Items []LineItemResponse `json:"items"`

	Subtotal       decimal.Decimal  `json:"subtotal"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	TaxAmount      decimal.Decimal  `json:"tax_amount"`
	TaxSplit       TaxSplitResponse `json:"tax_split"`
	Total          decimal.Decimal  `json:"total"`

	Advance    decimal.Decimal `json:"advance"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	BalanceDue decimal.Decimal `json:"balance_due"`

	Remarks   string    `json:"remarks"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// InvoiceListResponse represents a list item for invoices
type InvoiceListResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	ReferenceName string          `json:"reference_name"`
	EventDate     time.Time       `json:"event_date"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status" binding:"omitempty,oneof=DRAFT ISSUED PARTIALLY_PAID PAID CANCELLED"`
	CustomerID    *uuid.UUID `form:"customer_id"`
	EventDateFrom *time.Time `form:"event_date_from"`
	EventDateTo   *time.Time `form:"event_date_to"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// toLineItems converts request rows into validated domain line items
func toLineItems(rows []LineItemRequest) (billing.LineItems, error) {
	items := make(billing.LineItems, 0, len(rows))
	for _, row := range rows {
		rate, err := valueobject.NewMoneyFromRupees(row.Rate)
		if err != nil {
			return nil, err
		}
		item, err := billing.NewLineItem(row.Description, row.Quantity, rate,
			row.DiscountPercent, row.TaxPercent)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ToLineItemResponse converts a domain LineItem to LineItemResponse
func ToLineItemResponse(item billing.LineItem) LineItemResponse {
	return LineItemResponse{
		Description:     item.Description,
		Quantity:        item.Quantity,
		Rate:            item.Rate.Rupees(),
		DiscountPercent: item.DiscountPercent,
		TaxPercent:      item.TaxPercent,
		Base:            item.Base.Rupees(),
		DiscountAmount:  item.DiscountAmount.Rupees(),
		TaxAmount:       item.TaxAmount.Rupees(),
		Amount:          item.Amount.Rupees(),
	}
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = ToLineItemResponse(item)
	}

	split := inv.TaxSplit()

	return &InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerID:     inv.CustomerID,
		ReferenceName:  inv.ReferenceName,
		BookingDate:    inv.BookingDate,
		EventDate:      inv.EventDate,
		StartTime:      inv.StartTime,
		EndTime:        inv.EndTime,
		Manager:        inv.Manager,
		SACCode:        inv.SACCode,
		Items:          items,
		Subtotal:       inv.Subtotal.Rupees(),
		DiscountAmount: inv.DiscountAmount.Rupees(),
		TaxAmount:      inv.TaxAmount.Rupees(),
		TaxSplit: TaxSplitResponse{
			Percent:    split.Percent,
			CGSTAmount: split.CGSTAmount.Rupees(),
			SGSTAmount: split.SGSTAmount.Rupees(),
		},
		Total:      inv.Total.Rupees(),
		Advance:    inv.Advance.Rupees(),
		PaidAmount: inv.PaidAmount.Rupees(),
		BalanceDue: inv.BalanceDue().Rupees(),
		Remarks:    inv.Remarks,
		Status:     string(inv.Status),
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
		Version:    inv.Version,
	}
}

// ToInvoiceListResponse converts a domain Invoice to InvoiceListResponse
func ToInvoiceListResponse(inv *billing.Invoice) InvoiceListResponse {
	return InvoiceListResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		ReferenceName: inv.ReferenceName,
		EventDate:     inv.EventDate,
		Total:         inv.Total.Rupees(),
		PaidAmount:    inv.PaidAmount.Rupees(),
		BalanceDue:    inv.BalanceDue().Rupees(),
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
	}
}
