package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/shared"
)

// InvoiceRepository defines the persistence interface for invoices.
// FindByIDForUpdate takes a row lock so concurrent payment postings
// against the same invoice serialize; it must run inside a transaction.
type InvoiceRepository interface {
	shared.Repository[Invoice]
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
}
