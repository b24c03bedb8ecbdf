package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/shared"
)

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByCode(ctx context.Context, code string) (*Customer, error)
}

// VendorRepository defines the persistence interface for vendors.
// FindByIDForUpdate locks the vendor row so concurrent payment
// postings serialize; it must run inside a transaction.
type VendorRepository interface {
	shared.Repository[Vendor]
	FindByCode(ctx context.Context, code string) (*Vendor, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Vendor, error)
}

// EmployeeRepository defines the persistence interface for employees.
// FindByIDForUpdate locks the employee row so concurrent salary
// postings serialize; it must run inside a transaction.
type EmployeeRepository interface {
	shared.Repository[Employee]
	FindByCode(ctx context.Context, code string) (*Employee, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Employee, error)
}
