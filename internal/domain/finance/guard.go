package finance

import (
	"fmt"
	"time"

	"github.com/eventops/backend/internal/domain/billing"
	"github.com/eventops/backend/internal/domain/ledger"
	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/payroll"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// Guard holds the reconciliation rules evaluated before any ledger
// posting is stored. Every check is pure: the caller loads the target,
// the guard compares the amount against what the target can still
// absorb, and the posting service runs check and write in one
// transaction. The storage layer serializes concurrent postings per
// target; the guard itself carries no locking.
type Guard struct{}

// NewGuard creates a reconciliation guard
func NewGuard() *Guard {
	return &Guard{}
}

// CheckInvoiceCredit verifies a customer receipt fits within the
// invoice's remaining balance. Failures carry OVERPAYMENT with the
// permitted limit.
func (g *Guard) CheckInvoiceCredit(inv *billing.Invoice, amount valueobject.Money) error {
	if err := g.checkAmount(amount); err != nil {
		return err
	}
	if !inv.Status.CanAcceptPayment() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("invoice %s cannot accept payments in status %s", inv.InvoiceNumber, inv.Status))
	}
	remaining := inv.Remaining()
	if amount > remaining {
		return shared.NewDomainError(shared.ErrCodeOverpayment,
			fmt.Sprintf("credit of %s exceeds the remaining balance of %s on invoice %s",
				amount, remaining, inv.InvoiceNumber))
	}
	return nil
}

// CheckVendorDebit verifies a vendor payment fits within the payable
// balance accumulated from purchases.
func (g *Guard) CheckVendorDebit(vendor *partner.Vendor, amount valueobject.Money) error {
	if err := g.checkAmount(amount); err != nil {
		return err
	}
	balance := vendor.Balance()
	if amount > balance {
		return shared.NewDomainError(shared.ErrCodeOverpayment,
			fmt.Sprintf("debit of %s exceeds the outstanding balance of %s for vendor %s",
				amount, balance, vendor.Code))
	}
	return nil
}

// CheckEmployeeDebit verifies a salary disbursement fits within what is
// still due in the employee's current 31-day cycle. The cycle is
// derived on the spot from the joining date and the debits already
// posted; nothing cached is consulted.
func (g *Guard) CheckEmployeeDebit(employee *partner.Employee, priorDebits []ledger.Entry, amount valueobject.Money, now time.Time) error {
	if err := g.checkAmount(amount); err != nil {
		return err
	}

	payments := make([]payroll.Payment, 0, len(priorDebits))
	for _, e := range priorDebits {
		payments = append(payments, payroll.Payment{Amount: e.Amount, Date: e.Date})
	}

	cycle := payroll.ComputeCycle(employee.JoiningDate, employee.MonthlySalary, payments, now)
	if amount > cycle.DueInCycle {
		return shared.NewDomainError(shared.ErrCodeOverpayment,
			fmt.Sprintf("debit of %s exceeds the %s still due in the current salary cycle for employee %s",
				amount, cycle.DueInCycle, employee.Code))
	}
	return nil
}

func (g *Guard) checkAmount(amount valueobject.Money) error {
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidAmount, "posting amount must be positive")
	}
	return nil
}
