package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "DRAFT"
	InvoiceStatusIssued        InvoiceStatus = "ISSUED"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusCancelled     InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a known value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// IsTerminal checks if the status is a final state
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// CanAcceptPayment checks if payments may be applied in this status
func (s InvoiceStatus) CanAcceptPayment() bool {
	return s == InvoiceStatusIssued || s == InvoiceStatusPartiallyPaid
}

// Booking carries the event details an invoice bills for
type Booking struct {
	ReferenceName string    `json:"reference_name"`
	BookingDate   time.Time `json:"booking_date"`
	EventDate     time.Time `json:"event_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Manager       string    `json:"manager"`
}

// Invoice is the billing aggregate root. Totals are derived state: they
// are recomputed from the line items on every edit and never adjusted
// incrementally.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string    `gorm:"uniqueIndex;not null;size:50"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`

	ReferenceName string    `gorm:"size:200"`
	BookingDate   time.Time `gorm:"not null"`
	EventDate     time.Time `gorm:"not null;index"`
	StartTime     string    `gorm:"size:20"`
	EndTime       string    `gorm:"size:20"`
	Manager       string    `gorm:"size:100"`

	SACCode string    `gorm:"size:20"`
	Items   LineItems `gorm:"type:jsonb;not null"`

	Subtotal       valueobject.Money `gorm:"not null"`
	DiscountAmount valueobject.Money `gorm:"not null"`
	TaxAmount      valueobject.Money `gorm:"not null"`
	Total          valueobject.Money `gorm:"not null"`

	Advance    valueobject.Money `gorm:"not null;default:0"`
	PaidAmount valueobject.Money `gorm:"not null;default:0"`

	Remarks string        `gorm:"size:1000"`
	Status  InvoiceStatus `gorm:"not null;size:20;index"`
}

// TableName returns the database table name
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice in DRAFT with derived totals.
// At least one line item is required.
func NewInvoice(number string, customerID uuid.UUID, booking Booking, sacCode string, items LineItems) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "customer is required")
	}

	totals, err := ComputeTotals(items)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     number,
		CustomerID:        customerID,
		ReferenceName:     booking.ReferenceName,
		BookingDate:       booking.BookingDate,
		EventDate:         booking.EventDate,
		StartTime:         booking.StartTime,
		EndTime:           booking.EndTime,
		Manager:           booking.Manager,
		SACCode:           sacCode,
		Items:             items,
		Subtotal:          totals.Subtotal,
		DiscountAmount:    totals.DiscountAmount,
		TaxAmount:         totals.TaxAmount,
		Total:             totals.Total,
		Status:            InvoiceStatusDraft,
	}
	return inv, nil
}

// ReplaceItems swaps the full line-item list and recomputes every total.
// Only allowed before the invoice reaches a terminal state.
func (i *Invoice) ReplaceItems(items LineItems) error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("cannot edit items of a %s invoice", i.Status))
	}

	totals, err := ComputeTotals(items)
	if err != nil {
		return err
	}

	i.Items = items
	i.Subtotal = totals.Subtotal
	i.DiscountAmount = totals.DiscountAmount
	i.TaxAmount = totals.TaxAmount
	i.Total = totals.Total
	i.refreshPaymentStatus()
	i.IncrementVersion()
	return nil
}

// UpdateBooking updates the event details
func (i *Invoice) UpdateBooking(booking Booking) error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("cannot edit a %s invoice", i.Status))
	}
	i.ReferenceName = booking.ReferenceName
	i.BookingDate = booking.BookingDate
	i.EventDate = booking.EventDate
	i.StartTime = booking.StartTime
	i.EndTime = booking.EndTime
	i.Manager = booking.Manager
	i.IncrementVersion()
	return nil
}

// SetAdvance records the advance received against the booking
func (i *Invoice) SetAdvance(advance valueobject.Money) error {
	if advance.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidAmount, "advance must not be negative")
	}
	i.Advance = advance
	i.IncrementVersion()
	return nil
}

// SetRemarks updates the free-text remarks printed on the document
func (i *Invoice) SetRemarks(remarks string) {
	i.Remarks = remarks
	i.IncrementVersion()
}

// Issue moves the invoice from DRAFT to ISSUED
func (i *Invoice) Issue() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("only draft invoices can be issued, current status is %s", i.Status))
	}
	i.Status = InvoiceStatusIssued
	i.IncrementVersion()
	return nil
}

// Cancel voids an invoice that has received no payments
func (i *Invoice) Cancel() error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("cannot cancel a %s invoice", i.Status))
	}
	if !i.PaidAmount.IsZero() {
		return shared.NewDomainError("INVALID_STATE", "cannot cancel an invoice with recorded payments")
	}
	i.Status = InvoiceStatusCancelled
	i.IncrementVersion()
	return nil
}

// Remaining returns the unpaid balance
func (i *Invoice) Remaining() valueobject.Money {
	return i.Total.Sub(i.PaidAmount)
}

// ApplyPayment records a received payment. Payments above the remaining
// balance are rejected with OVERPAYMENT carrying the permitted limit.
func (i *Invoice) ApplyPayment(amount valueobject.Money) error {
	if !i.Status.CanAcceptPayment() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("cannot apply payment to a %s invoice", i.Status))
	}
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidAmount, "payment amount must be positive")
	}
	remaining := i.Remaining()
	if amount > remaining {
		return shared.NewDomainError(shared.ErrCodeOverpayment,
			fmt.Sprintf("payment of %s exceeds the remaining balance of %s", amount, remaining))
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	i.refreshPaymentStatus()
	i.IncrementVersion()
	return nil
}

func (i *Invoice) refreshPaymentStatus() {
	if i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusCancelled {
		return
	}
	switch {
	case i.PaidAmount >= i.Total:
		i.Status = InvoiceStatusPaid
	case i.PaidAmount.IsZero():
		i.Status = InvoiceStatusIssued
	default:
		i.Status = InvoiceStatusPartiallyPaid
	}
}

// TaxSplit returns the CGST/SGST presentation split for the document
func (i *Invoice) TaxSplit() TaxSplit {
	return ComputeTaxSplit(i.Items, Totals{
		Subtotal:       i.Subtotal,
		DiscountAmount: i.DiscountAmount,
		TaxAmount:      i.TaxAmount,
		Total:          i.Total,
	})
}

// BalanceDue returns the figure printed at the bottom of the document,
// the total net of the advance received.
func (i *Invoice) BalanceDue() valueobject.Money {
	return i.Total.Sub(i.Advance).ClampFloor()
}
