package partner

import (
	"strings"
	"time"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// EmployeeStatus represents the employment status
type EmployeeStatus string

const (
	EmployeeStatusActive EmployeeStatus = "active"
	EmployeeStatusLeft   EmployeeStatus = "left"
)

// Employee carries the two facts the salary cycle derives from: the
// joining date that anchors the 31-day windows and the monthly salary.
type Employee struct {
	shared.BaseAggregateRoot
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(200);not null"`
	Phone       string `gorm:"type:varchar(50)"`
	Designation string `gorm:"type:varchar(100)"`

	JoiningDate   time.Time         `gorm:"not null"`
	MonthlySalary valueobject.Money `gorm:"not null"`

	Status EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new active employee
func NewEmployee(code, name, designation string, joiningDate time.Time, monthlySalary valueobject.Money) (*Employee, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if joiningDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "joining date is required")
	}
	if monthlySalary.IsNegative() || monthlySalary.IsZero() {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidAmount, "monthly salary must be positive")
	}

	employee := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Designation:       designation,
		JoiningDate:       joiningDate,
		MonthlySalary:     monthlySalary,
		Status:            EmployeeStatusActive,
	}
	employee.AddDomainEvent(NewPartnerCreatedEvent("employee", employee.ID))
	return employee, nil
}

// Update updates the employee's basic information
func (e *Employee) Update(name, phone, designation string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	e.Name = name
	e.Phone = phone
	e.Designation = designation
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewPartnerUpdatedEvent("employee", e.ID))
	return nil
}

// ReviseSalary sets a new monthly salary. The revised figure applies to
// the cycle computed at the next read; past cycles are not restated.
func (e *Employee) ReviseSalary(monthlySalary valueobject.Money) error {
	if e.Status == EmployeeStatusLeft {
		return shared.NewDomainError("INVALID_STATE", "cannot revise salary of an employee who has left")
	}
	if monthlySalary.IsNegative() || monthlySalary.IsZero() {
		return shared.NewDomainError(shared.ErrCodeInvalidAmount, "monthly salary must be positive")
	}
	e.MonthlySalary = monthlySalary
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// MarkLeft records that the employee has left
func (e *Employee) MarkLeft() error {
	if e.Status == EmployeeStatusLeft {
		return shared.NewDomainError("INVALID_STATE", "employee has already left")
	}
	e.Status = EmployeeStatusLeft
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// IsActive returns true if the employee is on the payroll
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}
