package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is the party an invoice bills. The GSTIN and the address
// state code end up on every printed document.
type Customer struct {
	shared.BaseAggregateRoot
	Code    string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string              `gorm:"type:varchar(200);not null"`
	Phone   string              `gorm:"type:varchar(50);index"`
	Email   string              `gorm:"type:varchar(200);index"`
	Address valueobject.Address `gorm:"type:jsonb"`
	GSTIN   string              `gorm:"type:varchar(15)"`
	Status  CustomerStatus      `gorm:"type:varchar(20);not null;default:'active'"`
	Notes   string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer
func NewCustomer(code, name string) (*Customer, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            CustomerStatusActive,
	}
	customer.AddDomainEvent(NewPartnerCreatedEvent("customer", customer.ID))
	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, phone, email string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Name = name
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewPartnerUpdatedEvent("customer", c.ID))
	return nil
}

// SetAddress sets the billing address
func (c *Customer) SetAddress(address valueobject.Address) {
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetGSTIN sets the GST identification number
func (c *Customer) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return shared.NewDomainError("INVALID_INPUT", "GSTIN must be a 15-character GST identification number")
	}
	c.GSTIN = gstin
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate marks the customer inactive
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "customer is already inactive")
	}
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Activate marks the customer active again
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsActive returns true if the customer can be billed
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

var (
	codePattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-_]{0,49}$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-() ]{6,20}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z0-9]{13}$`)
)

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "code cannot be empty")
	}
	if !codePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_INPUT", "code must be alphanumeric and at most 50 characters")
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_INPUT", "phone number format is invalid")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) || len(email) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "email format is invalid")
	}
	return nil
}
