package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/shared"
)

// EntryRepository defines the persistence interface for ledger entries.
// Window queries are half-open: from inclusive, to exclusive, matching
// how salary cycles slice time.
type EntryRepository interface {
	shared.Repository[Entry]
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Entry, error)
	FindByCounterparty(ctx context.Context, counterpartyType CounterpartyType, counterpartyID uuid.UUID, filter shared.Filter) ([]Entry, error)
	FindDebitsInWindow(ctx context.Context, counterpartyType CounterpartyType, counterpartyID uuid.UUID, from, to time.Time) ([]Entry, error)
}
