package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainrendering "github.com/eventops/backend/internal/domain/rendering"
	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
	"github.com/eventops/backend/internal/infrastructure/rendering"
)

// MockPDFRenderer is a mock implementation of PDFRenderer
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *rendering.RenderRequest) (*rendering.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rendering.RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:      "Grand Palace Events",
		Address:   "12 MG Road, Pune, Maharashtra - 411001",
		Phone:     "9876543210",
		GSTIN:     "27AAACG1234F1Z5",
		StateCode: "27",
	}
}

func TestDocumentService_RenderInvoice_Success(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockRenderer := new(MockPDFRenderer)
	service := NewDocumentService(mockInvoiceRepo, mockCustomerRepo, mockRenderer, testCompanyProfile())

	ctx := context.Background()
	customer := newTestCustomer()
	invoice := newTestInvoice(t, customer.ID)
	require.NoError(t, invoice.SetAdvance(valueobject.NewMoneyFromPaise(10_000_00)))

	mockInvoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	mockCustomerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	var captured *rendering.RenderRequest
	mockRenderer.On("Render", ctx, mock.AnythingOfType("*rendering.RenderRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*rendering.RenderRequest)
		}).
		Return(&rendering.RenderResult{
			PDFData:        []byte("%PDF-1.4 fake"),
			PageCount:      1,
			RenderDuration: 120 * time.Millisecond,
		}, nil)

	result, err := service.RenderInvoice(ctx, invoice.ID)

	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-2025-0001.pdf", result.FileName)
	assert.Equal(t, []byte("%PDF-1.4 fake"), result.PDFData)
	assert.Equal(t, 1, result.PageCount)

	require.NotNil(t, captured)
	assert.Equal(t, domainrendering.PaperSizeA4, captured.PaperSize)
	assert.Equal(t, domainrendering.OrientationPortrait, captured.Orientation)
	assert.Equal(t, "Invoice INV-2025-0001", captured.Title)
	assert.Contains(t, captured.HTML, "INV-2025-0001")
	assert.Contains(t, captured.HTML, "Grand Palace Events")
	assert.Contains(t, captured.HTML, "Rohan Sharma")
	assert.Contains(t, captured.HTML, "Banquet hall rental")
	assert.Contains(t, captured.HTML, "CGST @ 9%")
	// total 59000.00, advance 10000.00
	assert.Contains(t, captured.HTML, "59000.00")
	assert.Contains(t, captured.HTML, "49000.00")
	assert.Contains(t, captured.HTML, "Rupees Fifty Nine Thousand Only")
}

func TestDocumentService_RenderInvoice_InvoiceNotFound(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockRenderer := new(MockPDFRenderer)
	service := NewDocumentService(mockInvoiceRepo, mockCustomerRepo, mockRenderer, testCompanyProfile())

	ctx := context.Background()
	id := uuid.New()

	mockInvoiceRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	result, err := service.RenderInvoice(ctx, id)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockRenderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestDocumentService_RenderInvoice_RendererFailure(t *testing.T) {
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockRenderer := new(MockPDFRenderer)
	service := NewDocumentService(mockInvoiceRepo, mockCustomerRepo, mockRenderer, testCompanyProfile())

	ctx := context.Background()
	customer := newTestCustomer()
	invoice := newTestInvoice(t, customer.ID)

	mockInvoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	mockCustomerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	renderErr := rendering.NewRenderError(rendering.ErrCodeStrategyExhausted,
		"all rendering strategies failed", nil)
	mockRenderer.On("Render", ctx, mock.Anything).Return(nil, renderErr)

	result, err := service.RenderInvoice(ctx, invoice.ID)

	assert.Nil(t, result)
	var rErr *rendering.RenderError
	assert.ErrorAs(t, err, &rErr)
	assert.Equal(t, rendering.ErrCodeStrategyExhausted, rErr.Code)
}
