package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/billing"
	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles invoice-related business operations
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

// Create creates a new invoice in DRAFT with derived totals
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	// Reject duplicate invoice numbers up front
	if _, err := s.invoiceRepo.FindByNumber(ctx, req.InvoiceNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Invoice with this number already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
		}
		return nil, err
	}

	items, err := toLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	booking := billing.Booking{
		ReferenceName: req.ReferenceName,
		BookingDate:   req.BookingDate,
		EventDate:     req.EventDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Manager:       req.Manager,
	}

	invoice, err := billing.NewInvoice(req.InvoiceNumber, req.CustomerID, booking, req.SACCode, items)
	if err != nil {
		return nil, err
	}

	if req.Advance != nil {
		advance, err := valueobject.NewMoneyFromRupees(*req.Advance)
		if err != nil {
			return nil, err
		}
		if err := invoice.SetAdvance(advance); err != nil {
			return nil, err
		}
	}

	if req.Remarks != "" {
		invoice.SetRemarks(req.Remarks)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return ToInvoiceResponse(invoice), nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// GetByNumber retrieves an invoice by its unique invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// List retrieves invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceListResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceListResponse(&inv)
	}
	return responses, total, nil
}

// UpdateItems replaces the full line-item list and recomputes the totals
func (s *InvoiceService) UpdateItems(ctx context.Context, id uuid.UUID, req UpdateItemsRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := toLineItems(req.Items)
	if err != nil {
		return nil, err
	}
	if err := invoice.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// UpdateBooking updates the event details of an invoice
func (s *InvoiceService) UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking := billing.Booking{
		ReferenceName: req.ReferenceName,
		BookingDate:   req.BookingDate,
		EventDate:     req.EventDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Manager:       req.Manager,
	}
	if err := invoice.UpdateBooking(booking); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// SetAdvance records the advance held against an invoice
func (s *InvoiceService) SetAdvance(ctx context.Context, id uuid.UUID, req SetAdvanceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	advance, err := valueobject.NewMoneyFromRupees(req.Advance)
	if err != nil {
		return nil, err
	}
	if err := invoice.SetAdvance(advance); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// SetRemarks updates the remarks printed on the invoice
func (s *InvoiceService) SetRemarks(ctx context.Context, id uuid.UUID, req SetRemarksRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice.SetRemarks(req.Remarks)

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// Issue moves an invoice from DRAFT to ISSUED
func (s *InvoiceService) Issue(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.Issue(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// Cancel cancels an invoice that has not received payments
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.Cancel(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// Delete removes an invoice. Only drafts can be deleted; anything that
// has been issued stays on record and must be cancelled instead.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if invoice.Status != billing.InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}

	return s.invoiceRepo.Delete(ctx, id)
}

// toDomainFilter converts the API filter into the repository filter
func (s *InvoiceService) toDomainFilter(filter InvoiceListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search

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

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.EventDateFrom != nil {
		domainFilter.Filters["event_date_from"] = *filter.EventDateFrom
	}
	if filter.EventDateTo != nil {
		domainFilter.Filters["event_date_to"] = *filter.EventDateTo
	}

	return domainFilter
}
