package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if _, err := s.customerRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Email != "" {
		if err := customer.Update(req.Name, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.GSTIN != "" {
		if err := customer.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		address, err := toAddress(*req.Address)
		if err != nil {
			return nil, err
		}
		customer.SetAddress(address)
	}
	customer.Notes = req.Notes

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// GetByCode retrieves a customer by its code
func (s *CustomerService) GetByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// List retrieves customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter PartnerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = *ToCustomerResponse(&c)
	}
	return responses, total, nil
}

// Update updates an existing customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if req.GSTIN != nil {
		if err := customer.SetGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		address, err := toAddress(*req.Address)
		if err != nil {
			return nil, err
		}
		customer.SetAddress(address)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// Deactivate marks a customer inactive
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// Activate marks a customer active again
func (s *CustomerService) Activate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Activate()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// toAddress converts an address request into the validated value object
func toAddress(req AddressRequest) (valueobject.Address, error) {
	return valueobject.NewAddress(req.Line1, req.Line2, req.City, req.State, req.StateCode, req.PinCode)
}
