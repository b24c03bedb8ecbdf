package partner

import (
	"fmt"
	"strings"
	"time"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor is a supplier of services or goods. The running purchase and
// payment totals define the payable balance, which caps outgoing
// payments: the ledger never lets a vendor be paid past what is owed.
type Vendor struct {
	shared.BaseAggregateRoot
	Code     string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string       `gorm:"type:varchar(200);not null"`
	Phone    string       `gorm:"type:varchar(50);index"`
	Category string       `gorm:"type:varchar(100)"`
	Status   VendorStatus `gorm:"type:varchar(20);not null;default:'active'"`

	TotalPurchases valueobject.Money `gorm:"not null;default:0"`
	TotalPayments  valueobject.Money `gorm:"not null;default:0"`

	Notes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new active vendor
func NewVendor(code, name, category string) (*Vendor, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	vendor := &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Category:          category,
		Status:            VendorStatusActive,
	}
	vendor.AddDomainEvent(NewPartnerCreatedEvent("vendor", vendor.ID))
	return vendor, nil
}

// Update updates the vendor's basic information
func (v *Vendor) Update(name, phone, category string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	v.Name = name
	v.Phone = phone
	v.Category = category
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	v.AddDomainEvent(NewPartnerUpdatedEvent("vendor", v.ID))
	return nil
}

// Balance returns the outstanding payable amount
func (v *Vendor) Balance() valueobject.Money {
	return v.TotalPurchases.Sub(v.TotalPayments)
}

// RecordPurchase adds a purchase to the running total
func (v *Vendor) RecordPurchase(amount valueobject.Money) error {
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidAmount, "purchase amount must be positive")
	}
	v.TotalPurchases = v.TotalPurchases.Add(amount)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// RecordPayment adds a payment to the running total. Paying more than
// the outstanding balance is rejected with OVERPAYMENT.
func (v *Vendor) RecordPayment(amount valueobject.Money) error {
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidAmount, "payment amount must be positive")
	}
	balance := v.Balance()
	if amount > balance {
		return shared.NewDomainError(shared.ErrCodeOverpayment,
			fmt.Sprintf("payment of %s exceeds the outstanding balance of %s", amount, balance))
	}
	v.TotalPayments = v.TotalPayments.Add(amount)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// Deactivate marks the vendor inactive
func (v *Vendor) Deactivate() error {
	if v.Status == VendorStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "vendor is already inactive")
	}
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// IsActive returns true if the vendor can transact
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}
