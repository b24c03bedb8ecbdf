package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// EntryType is the direction of money movement. CREDIT is money coming
// in against an invoice; DEBIT is money going out to a vendor or an
// employee.
type EntryType string

const (
	EntryTypeCredit EntryType = "CREDIT"
	EntryTypeDebit  EntryType = "DEBIT"
)

// IsValid checks if the entry type is a known value
func (t EntryType) IsValid() bool {
	return t == EntryTypeCredit || t == EntryTypeDebit
}

// CounterpartyType identifies which kind of party an entry settles with
type CounterpartyType string

const (
	CounterpartyCustomer CounterpartyType = "CUSTOMER"
	CounterpartyVendor   CounterpartyType = "VENDOR"
	CounterpartyEmployee CounterpartyType = "EMPLOYEE"
)

// IsValid checks if the counterparty type is a known value
func (t CounterpartyType) IsValid() bool {
	switch t {
	case CounterpartyCustomer, CounterpartyVendor, CounterpartyEmployee:
		return true
	}
	return false
}

// Entry is one immutable ledger posting. Entries are append-only; a
// mistake is corrected with a reversing entry, never by editing.
type Entry struct {
	shared.BaseAggregateRoot
	Type             EntryType         `gorm:"type:varchar(10);not null;index"`
	Amount           valueobject.Money `gorm:"not null"`
	CounterpartyType CounterpartyType  `gorm:"type:varchar(10);not null;index:idx_entries_counterparty"`
	CounterpartyID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_entries_counterparty"`
	InvoiceID        *uuid.UUID        `gorm:"type:uuid;index"`
	Date             time.Time         `gorm:"not null;index"`
	Reason           string            `gorm:"type:varchar(500);not null"`
}

// TableName returns the database table name
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewCreditEntry records money received from a customer against an invoice
func NewCreditEntry(customerID, invoiceID uuid.UUID, amount valueobject.Money, date time.Time, reason string) (*Entry, error) {
	if err := validateEntry(amount, date, reason); err != nil {
		return nil, err
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "customer is required for a credit entry")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "invoice is required for a credit entry")
	}

	return &Entry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              EntryTypeCredit,
		Amount:            amount,
		CounterpartyType:  CounterpartyCustomer,
		CounterpartyID:    customerID,
		InvoiceID:         &invoiceID,
		Date:              date,
		Reason:            reason,
	}, nil
}

// NewDebitEntry records money paid out to a vendor or an employee
func NewDebitEntry(counterpartyType CounterpartyType, counterpartyID uuid.UUID, amount valueobject.Money, date time.Time, reason string) (*Entry, error) {
	if err := validateEntry(amount, date, reason); err != nil {
		return nil, err
	}
	if counterpartyType != CounterpartyVendor && counterpartyType != CounterpartyEmployee {
		return nil, shared.NewDomainError("INVALID_INPUT", "debit entries settle with a vendor or an employee")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "counterparty is required")
	}

	return &Entry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              EntryTypeDebit,
		Amount:            amount,
		CounterpartyType:  counterpartyType,
		CounterpartyID:    counterpartyID,
		Date:              date,
		Reason:            reason,
	}, nil
}

func validateEntry(amount valueobject.Money, date time.Time, reason string) error {
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidAmount, "entry amount must be positive")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "entry date is required")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_INPUT", "entry reason cannot be empty")
	}
	return nil
}
