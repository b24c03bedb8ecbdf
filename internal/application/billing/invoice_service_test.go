package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eventops/backend/internal/domain/billing"
	"github.com/eventops/backend/internal/domain/partner"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestCustomer() *partner.Customer {
	customer, _ := partner.NewCustomer("CUST001", "Rohan Sharma")
	return customer
}

func newTestCreateRequest(customerID uuid.UUID) CreateInvoiceRequest {
	return CreateInvoiceRequest{
		InvoiceNumber: "INV-2025-0001",
		CustomerID:    customerID,
		ReferenceName: "Sharma Wedding Reception",
		BookingDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EventDate:     time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		StartTime:     "18:00",
		EndTime:       "23:00",
		Manager:       "Priya",
		SACCode:       "998553",
		Items: []LineItemRequest{
			{
				Description:     "Banquet hall rental",
				Quantity:        decimal.NewFromInt(1),
				Rate:            decimal.NewFromInt(50000),
				DiscountPercent: decimal.NewFromInt(10),
				TaxPercent:      decimal.NewFromInt(18),
			},
		},
	}
}

func newTestInvoice(t *testing.T, customerID uuid.UUID) *billing.Invoice {
	t.Helper()
	item, err := billing.NewLineItem("Banquet hall rental",
		decimal.NewFromInt(1), valueobject.NewMoneyFromPaise(50_000_00),
		decimal.Zero, decimal.NewFromInt(18))
	if err != nil {
		t.Fatalf("building line item: %v", err)
	}
	invoice, err := billing.NewInvoice("INV-2025-0001", customerID, billing.Booking{
		ReferenceName: "Sharma Wedding Reception",
		BookingDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EventDate:     time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
	}, "998553", billing.LineItems{item})
	if err != nil {
		t.Fatalf("building invoice: %v", err)
	}
	return invoice
}

func TestInvoiceService_Create_Success(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	customer := newTestCustomer()
	req := newTestCreateRequest(customer.ID)

	mockInvoiceRepo.On("FindByNumber", ctx, req.InvoiceNumber).Return(nil, shared.ErrNotFound)
	mockCustomerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mockInvoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "INV-2025-0001", result.InvoiceNumber)
	assert.Equal(t, "DRAFT", result.Status)
	// 50000 - 5000 discount + 8100 tax on the taxable 45000
	assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.DiscountAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.TaxAmount.Equal(decimal.NewFromInt(8100)))
	assert.True(t, result.Total.Equal(decimal.NewFromInt(53100)))
	assert.True(t, result.TaxSplit.Percent.Equal(decimal.NewFromInt(9)))
	assert.True(t, result.TaxSplit.CGSTAmount.Equal(decimal.NewFromInt(4050)))
	mockInvoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_DuplicateNumber(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	customer := newTestCustomer()
	req := newTestCreateRequest(customer.ID)
	existing := newTestInvoice(t, customer.ID)

	mockInvoiceRepo.On("FindByNumber", ctx, req.InvoiceNumber).Return(existing, nil)

	result, err := service.Create(ctx, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockInvoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_UnknownCustomer(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	req := newTestCreateRequest(uuid.New())

	mockInvoiceRepo.On("FindByNumber", ctx, req.InvoiceNumber).Return(nil, shared.ErrNotFound)
	mockCustomerRepo.On("FindByID", ctx, req.CustomerID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CUSTOMER", domainErr.Code)
}

func TestInvoiceService_Create_NoItems(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	customer := newTestCustomer()
	req := newTestCreateRequest(customer.ID)
	req.Items = nil

	mockInvoiceRepo.On("FindByNumber", ctx, req.InvoiceNumber).Return(nil, shared.ErrNotFound)
	mockCustomerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	result, err := service.Create(ctx, req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrEmptyInvoice)
}

func TestInvoiceService_UpdateItems_RecomputesTotals(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	invoice := newTestInvoice(t, uuid.New())

	mockInvoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	mockInvoiceRepo.On("Save", ctx, invoice).Return(nil)

	result, err := service.UpdateItems(ctx, invoice.ID, UpdateItemsRequest{
		Items: []LineItemRequest{
			{
				Description: "Catering per plate",
				Quantity:    decimal.NewFromInt(200),
				Rate:        decimal.NewFromInt(450),
				TaxPercent:  decimal.NewFromInt(18),
			},
		},
	})

	assert.NoError(t, err)
	assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(90000)))
	assert.True(t, result.Total.Equal(decimal.NewFromInt(106200)))
	assert.Len(t, result.Items, 1)
}

func TestInvoiceService_Issue_Success(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	invoice := newTestInvoice(t, uuid.New())

	mockInvoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	mockInvoiceRepo.On("Save", ctx, invoice).Return(nil)

	result, err := service.Issue(ctx, invoice.ID)

	assert.NoError(t, err)
	assert.Equal(t, "ISSUED", result.Status)
}

func TestInvoiceService_Cancel_AfterPayment(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	invoice := newTestInvoice(t, uuid.New())
	assert.NoError(t, invoice.Issue())
	assert.NoError(t, invoice.ApplyPayment(valueobject.NewMoneyFromPaise(10_000_00)))

	mockInvoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

	result, err := service.Cancel(ctx, invoice.ID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockInvoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_Delete_OnlyDrafts(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	issued := newTestInvoice(t, uuid.New())
	assert.NoError(t, issued.Issue())

	mockInvoiceRepo.On("FindByID", ctx, issued.ID).Return(issued, nil)

	err := service.Delete(ctx, issued.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mockInvoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestInvoiceService_SetAdvance_NegativeRejected(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	invoice := newTestInvoice(t, uuid.New())

	mockInvoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

	result, err := service.SetAdvance(ctx, invoice.ID, SetAdvanceRequest{
		Advance: decimal.NewFromInt(-500),
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeInvalidAmount, domainErr.Code)
}

func TestInvoiceService_GetByID_NotFound(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	id := uuid.New()

	mockInvoiceRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	result, err := service.GetByID(ctx, id)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoiceService_List_MapsFilter(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(mockInvoiceRepo, mockCustomerRepo)

	ctx := context.Background()
	invoice := newTestInvoice(t, uuid.New())

	mockInvoiceRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "ISSUED" && f.Page == 2 && f.PageSize == 10
	})).Return([]billing.Invoice{*invoice}, nil)
	mockInvoiceRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	responses, total, err := service.List(ctx, InvoiceListFilter{
		Status:   "ISSUED",
		Page:     2,
		PageSize: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, responses, 1)
	assert.Equal(t, invoice.InvoiceNumber, responses[0].InvoiceNumber)
}
