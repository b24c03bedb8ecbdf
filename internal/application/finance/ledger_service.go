package finance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventops/backend/internal/domain/billing"
	"github.com/eventops/backend/internal/domain/finance"
	"github.com/eventops/backend/internal/domain/ledger"
	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/payroll"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// Repositories bundles the repositories a posting touches. The factory
// builds them over the posting's transaction handle so the row lock,
// the guard check and the writes all share one transaction.
type Repositories struct {
	Invoices  billing.InvoiceRepository
	Vendors   partner.VendorRepository
	Employees partner.EmployeeRepository
	Entries   ledger.EntryRepository
}

// RepositoryFactory builds transaction-scoped repositories
type RepositoryFactory func(tx *gorm.DB) Repositories

// LedgerService posts ledger entries. Every posting locks its target
// row, runs the reconciliation guard against the locked state and
// writes entry plus side effects in a single transaction, so two
// concurrent postings against the same target cannot both pass the
// guard on stale reads.
type LedgerService struct {
	db    *gorm.DB
	repos RepositoryFactory
	guard *finance.Guard
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(db *gorm.DB, repos RepositoryFactory, guard *finance.Guard) *LedgerService {
	return &LedgerService{
		db:    db,
		repos: repos,
		guard: guard,
	}
}

// RecordCustomerPayment posts a CREDIT entry for money received against
// an invoice and applies the payment to the invoice
func (s *LedgerService) RecordCustomerPayment(ctx context.Context, req CustomerPaymentRequest) (*EntryResponse, error) {
	amount, err := valueobject.NewMoneyFromRupees(req.Amount)
	if err != nil {
		return nil, err
	}

	var entry *ledger.Entry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos(tx)

		invoice, err := repos.Invoices.FindByIDForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		if err := s.guard.CheckInvoiceCredit(invoice, amount); err != nil {
			return err
		}
		if err := invoice.ApplyPayment(amount); err != nil {
			return err
		}

		entry, err = ledger.NewCreditEntry(invoice.CustomerID, invoice.ID, amount, req.Date, req.Reason)
		if err != nil {
			return err
		}

		if err := repos.Invoices.Save(ctx, invoice); err != nil {
			return err
		}
		return repos.Entries.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return ToEntryResponse(entry), nil
}

// RecordVendorPayment posts a DEBIT entry for money paid to a vendor
// and applies it to the vendor's running balance
func (s *LedgerService) RecordVendorPayment(ctx context.Context, req VendorPaymentRequest) (*EntryResponse, error) {
	amount, err := valueobject.NewMoneyFromRupees(req.Amount)
	if err != nil {
		return nil, err
	}

	var entry *ledger.Entry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos(tx)

		vendor, err := repos.Vendors.FindByIDForUpdate(ctx, req.VendorID)
		if err != nil {
			return err
		}

		if err := s.guard.CheckVendorDebit(vendor, amount); err != nil {
			return err
		}
		if err := vendor.RecordPayment(amount); err != nil {
			return err
		}

		entry, err = ledger.NewDebitEntry(ledger.CounterpartyVendor, vendor.ID, amount, req.Date, req.Reason)
		if err != nil {
			return err
		}

		if err := repos.Vendors.Save(ctx, vendor); err != nil {
			return err
		}
		return repos.Entries.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return ToEntryResponse(entry), nil
}

// RecordVendorPurchase raises the vendor's payable balance. Purchases
// are not ledger postings themselves; they widen what later payments
// may debit.
func (s *LedgerService) RecordVendorPurchase(ctx context.Context, req VendorPurchaseRequest) error {
	amount, err := valueobject.NewMoneyFromRupees(req.Amount)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos(tx)

		vendor, err := repos.Vendors.FindByIDForUpdate(ctx, req.VendorID)
		if err != nil {
			return err
		}
		if err := vendor.RecordPurchase(amount); err != nil {
			return err
		}
		return repos.Vendors.Save(ctx, vendor)
	})
}

// RecordSalaryPayment posts a DEBIT entry for a salary disbursement.
// The guard recomputes the current 31-day cycle from the debits already
// on the ledger, so the disbursement can never exceed what is still due.
func (s *LedgerService) RecordSalaryPayment(ctx context.Context, req SalaryPaymentRequest) (*EntryResponse, error) {
	amount, err := valueobject.NewMoneyFromRupees(req.Amount)
	if err != nil {
		return nil, err
	}

	var entry *ledger.Entry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := s.repos(tx)

		employee, err := repos.Employees.FindByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		start, end := payroll.CurrentWindow(employee.JoiningDate, req.Date)
		priorDebits, err := repos.Entries.FindDebitsInWindow(ctx,
			ledger.CounterpartyEmployee, employee.ID, start, end)
		if err != nil {
			return err
		}

		if err := s.guard.CheckEmployeeDebit(employee, priorDebits, amount, req.Date); err != nil {
			return err
		}

		entry, err = ledger.NewDebitEntry(ledger.CounterpartyEmployee, employee.ID, amount, req.Date, req.Reason)
		if err != nil {
			return err
		}
		return repos.Entries.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return ToEntryResponse(entry), nil
}

// ListEntries retrieves ledger entries matching the filter
func (s *LedgerService) ListEntries(ctx context.Context, filter EntryListFilter) ([]EntryResponse, int64, error) {
	repos := s.repos(s.db)
	domainFilter := toDomainFilter(filter)

	entries, err := repos.Entries.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := repos.Entries.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEntryResponses(entries), total, nil
}

// ListInvoiceEntries retrieves every posting against an invoice in
// chronological order
func (s *LedgerService) ListInvoiceEntries(ctx context.Context, invoiceID uuid.UUID) ([]EntryResponse, error) {
	repos := s.repos(s.db)
	entries, err := repos.Entries.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}

// ListCounterpartyEntries retrieves postings for one counterparty
func (s *LedgerService) ListCounterpartyEntries(ctx context.Context, counterpartyType ledger.CounterpartyType, counterpartyID uuid.UUID, filter EntryListFilter) ([]EntryResponse, error) {
	repos := s.repos(s.db)
	entries, err := repos.Entries.FindByCounterparty(ctx, counterpartyType, counterpartyID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}

// toDomainFilter converts the API filter into the repository filter
func toDomainFilter(filter EntryListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "date"

	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.CounterpartyType != "" {
		domainFilter.Filters["counterparty_type"] = filter.CounterpartyType
	}
	if filter.CounterpartyID != nil {
		domainFilter.Filters["counterparty_id"] = *filter.CounterpartyID
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		domainFilter.Filters["date_to"] = *filter.DateTo
	}

	return domainFilter
}
