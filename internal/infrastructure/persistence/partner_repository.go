package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/shared"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByCode finds a customer by its code
func (r *GormCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).First(&customer, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&partner.Customer{}), filter)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPartnerFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Customer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByIDForUpdate finds a vendor by ID with a row lock. Must run
// inside a transaction.
func (r *GormVendorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := lockForUpdate(r.db.WithContext(ctx)).
		First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByCode finds a vendor by its code
func (r *GormVendorRepository) FindByCode(ctx context.Context, code string) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindAll finds all vendors matching the filter
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	var vendors []partner.Vendor
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&partner.Vendor{}), filter)
	if err := query.Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete deletes a vendor
func (r *GormVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts vendors matching the filter
func (r *GormVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPartnerFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Vendor{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Employee, error) {
	var employee partner.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindByIDForUpdate finds an employee by ID with a row lock. Must run
// inside a transaction.
func (r *GormEmployeeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Employee, error) {
	var employee partner.Employee
	if err := lockForUpdate(r.db.WithContext(ctx)).
		First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindByCode finds an employee by its code
func (r *GormEmployeeRepository) FindByCode(ctx context.Context, code string) (*partner.Employee, error) {
	var employee partner.Employee
	if err := r.db.WithContext(ctx).First(&employee, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindAll finds all employees matching the filter
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Employee, error) {
	var employees []partner.Employee
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&partner.Employee{}), filter)
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *partner.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete deletes an employee
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPartnerFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Employee{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyPartnerFilter applies filter options shared by all partner kinds
func applyPartnerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyPartnerFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PartnerSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyPartnerFilterWithoutPagination applies filter options without pagination
func applyPartnerFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure the partner repositories implement their interfaces
var (
	_ partner.CustomerRepository = (*GormCustomerRepository)(nil)
	_ partner.VendorRepository   = (*GormVendorRepository)(nil)
	_ partner.EmployeeRepository = (*GormEmployeeRepository)(nil)
)
