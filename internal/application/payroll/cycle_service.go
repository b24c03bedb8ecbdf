package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/ledger"
	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/payroll"
)

// CycleService reports salary-cycle state. Cycles are never stored;
// every read derives them from the joining date and the ledger.
type CycleService struct {
	employeeRepo partner.EmployeeRepository
	entryRepo    ledger.EntryRepository
}

// NewCycleService creates a new CycleService
func NewCycleService(
	employeeRepo partner.EmployeeRepository,
	entryRepo ledger.EntryRepository,
) *CycleService {
	return &CycleService{
		employeeRepo: employeeRepo,
		entryRepo:    entryRepo,
	}
}

// GetCycle derives the employee's salary cycle containing asOf. A zero
// asOf means now.
func (s *CycleService) GetCycle(ctx context.Context, employeeID uuid.UUID, asOf time.Time) (*CycleResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	start, end := payroll.CurrentWindow(employee.JoiningDate, asOf)
	debits, err := s.entryRepo.FindDebitsInWindow(ctx,
		ledger.CounterpartyEmployee, employee.ID, start, end)
	if err != nil {
		return nil, err
	}

	payments := make([]payroll.Payment, len(debits))
	for i, d := range debits {
		payments[i] = payroll.Payment{Amount: d.Amount, Date: d.Date}
	}

	cycle := payroll.ComputeCycle(employee.JoiningDate, employee.MonthlySalary, payments, asOf)
	return ToCycleResponse(employee, cycle), nil
}
