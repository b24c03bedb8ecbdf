package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/payroll"
)

// CycleResponse represents the derived salary-cycle state in API responses
type CycleResponse struct {
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	CycleStart   time.Time       `json:"cycle_start"`
	CycleEnd     time.Time       `json:"cycle_end"`
	NextDueDate  time.Time       `json:"next_due_date"`
	Salary       decimal.Decimal `json:"salary"`
	PaidInCycle  decimal.Decimal `json:"paid_in_cycle"`
	DueInCycle   decimal.Decimal `json:"due_in_cycle"`
	Status       string          `json:"status"`
}

// ToCycleResponse converts a derived Cycle to CycleResponse
func ToCycleResponse(employee *partner.Employee, cycle payroll.Cycle) *CycleResponse {
	return &CycleResponse{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		CycleStart:   cycle.Start,
		CycleEnd:     cycle.End,
		NextDueDate:  cycle.NextDueDate(),
		Salary:       cycle.Salary.Rupees(),
		PaidInCycle:  cycle.PaidInCycle.Rupees(),
		DueInCycle:   cycle.DueInCycle.Rupees(),
		Status:       string(cycle.Status),
	}
}
