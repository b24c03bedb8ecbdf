package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// EmployeeService handles employee-related business operations
type EmployeeService struct {
	employeeRepo partner.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo partner.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if _, err := s.employeeRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	salary, err := valueobject.NewMoneyFromRupees(req.MonthlySalary)
	if err != nil {
		return nil, err
	}

	employee, err := partner.NewEmployee(req.Code, req.Name, req.Designation, req.JoiningDate, salary)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if err := employee.Update(req.Name, req.Phone, req.Designation); err != nil {
			return nil, err
		}
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// GetByCode retrieves an employee by its code
func (s *EmployeeService) GetByCode(ctx context.Context, code string) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// List retrieves employees matching the filter
func (s *EmployeeService) List(ctx context.Context, filter PartnerListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	employees, err := s.employeeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = *ToEmployeeResponse(&e)
	}
	return responses, total, nil
}

// Update updates an existing employee
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := employee.Update(req.Name, req.Phone, req.Designation); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// ReviseSalary sets a new monthly salary, effective from the next
// cycle read
func (s *EmployeeService) ReviseSalary(ctx context.Context, id uuid.UUID, req ReviseSalaryRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	salary, err := valueobject.NewMoneyFromRupees(req.MonthlySalary)
	if err != nil {
		return nil, err
	}
	if err := employee.ReviseSalary(salary); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// MarkLeft records that an employee has left
func (s *EmployeeService) MarkLeft(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.MarkLeft(); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}
