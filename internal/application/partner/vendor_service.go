package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/shared"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	if _, err := s.vendorRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	vendor, err := partner.NewVendor(req.Code, req.Name, req.Category)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if err := vendor.Update(req.Name, req.Phone, req.Category); err != nil {
			return nil, err
		}
	}
	vendor.Notes = req.Notes

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	return ToVendorResponse(vendor), nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToVendorResponse(vendor), nil
}

// GetByCode retrieves a vendor by its code
func (s *VendorService) GetByCode(ctx context.Context, code string) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToVendorResponse(vendor), nil
}

// List retrieves vendors matching the filter
func (s *VendorService) List(ctx context.Context, filter PartnerListFilter) ([]VendorResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	vendors, err := s.vendorRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vendorRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		responses[i] = *ToVendorResponse(&v)
	}
	return responses, total, nil
}

// Update updates an existing vendor
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := vendor.Update(req.Name, req.Phone, req.Category); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		vendor.Notes = *req.Notes
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	return ToVendorResponse(vendor), nil
}

// Deactivate marks a vendor inactive
func (s *VendorService) Deactivate(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := vendor.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	return ToVendorResponse(vendor), nil
}
