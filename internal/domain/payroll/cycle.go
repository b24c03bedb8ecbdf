package payroll

import (
	"time"

	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// Cycle length in days. Salary obligations roll over on a fixed 31-day
// rhythm anchored at the employee's joining date, not on calendar months.
const cycleDays = 31

// CycleStatus summarizes the employee's standing within the current cycle
type CycleStatus string

const (
	CycleStatusPaid    CycleStatus = "PAID"
	CycleStatusPartial CycleStatus = "PARTIAL"
	CycleStatusDue     CycleStatus = "DUE"
)

// Payment is one salary disbursement, as recorded in the ledger
type Payment struct {
	Amount valueobject.Money
	Date   time.Time
}

// Cycle is the derived state of the current obligation window. It is
// never persisted; callers recompute it from the joining date and the
// ledger on every read.
type Cycle struct {
	Start       time.Time
	End         time.Time
	Salary      valueobject.Money
	PaidInCycle valueobject.Money
	DueInCycle  valueobject.Money
	Status      CycleStatus
}

// NextDueDate is when the following cycle begins and the current
// obligation falls due.
func (c Cycle) NextDueDate() time.Time {
	return c.End
}

// CurrentWindow returns the half-open window [start, end) that contains
// now. Windows advance from the joining date in whole 31-day steps; a
// moment exactly at a window's end belongs to the next window.
func CurrentWindow(joiningDate, now time.Time) (start, end time.Time) {
	start = joiningDate
	end = start.AddDate(0, 0, cycleDays)
	for !end.After(now) {
		start = end
		end = start.AddDate(0, 0, cycleDays)
	}
	return start, end
}

// ComputeCycle derives the current cycle state from the salary and the
// disbursements recorded so far. Payments dated outside [start, end) do
// not count toward this cycle; a payment exactly at the end instant
// belongs to the next one.
func ComputeCycle(joiningDate time.Time, salary valueobject.Money, payments []Payment, now time.Time) Cycle {
	start, end := CurrentWindow(joiningDate, now)

	var paid valueobject.Money
	for _, p := range payments {
		if !p.Date.Before(start) && p.Date.Before(end) {
			paid = paid.Add(p.Amount)
		}
	}

	due := salary.Sub(paid).ClampFloor()

	status := CycleStatusDue
	switch {
	case due.IsZero():
		status = CycleStatusPaid
	case !paid.IsZero():
		status = CycleStatusPartial
	}

	return Cycle{
		Start:       start,
		End:         end,
		Salary:      salary,
		PaidInCycle: paid,
		DueInCycle:  due,
		Status:      status,
	}
}
