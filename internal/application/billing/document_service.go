package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/billing"
	"github.com/eventops/backend/internal/domain/partner"
	domainrendering "github.com/eventops/backend/internal/domain/rendering"
	"github.com/eventops/backend/internal/infrastructure/rendering"
)

// documentDateFormat is the day-first date layout printed on invoices
const documentDateFormat = "02/01/2006"

// CompanyProfile is the seller identity printed on every document
type CompanyProfile struct {
	Name      string
	Address   string
	Phone     string
	GSTIN     string
	StateCode string
}

// InvoiceDocumentResult carries the rendered PDF and its metadata
type InvoiceDocumentResult struct {
	FileName       string
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// DocumentService renders invoices into printable PDF documents
type DocumentService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	renderer     rendering.PDFRenderer
	company      CompanyProfile
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	renderer rendering.PDFRenderer,
	company CompanyProfile,
) *DocumentService {
	return &DocumentService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		renderer:     renderer,
		company:      company,
	}
}

// RenderInvoice loads an invoice, lays it out as an A4 tax invoice and
// renders it to PDF
func (s *DocumentService) RenderInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceDocumentResult, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, err
	}

	doc := s.buildDocument(invoice, customer)

	html, err := rendering.RenderInvoiceHTML(doc)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &rendering.RenderRequest{
		HTML:        html,
		PaperSize:   domainrendering.PaperSizeA4,
		Orientation: domainrendering.OrientationPortrait,
		Margins:     domainrendering.DefaultMargins(),
		Title:       "Invoice " + invoice.InvoiceNumber,
	})
	if err != nil {
		return nil, err
	}

	return &InvoiceDocumentResult{
		FileName:       fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber),
		PDFData:        result.PDFData,
		PageCount:      result.PageCount,
		RenderDuration: result.RenderDuration,
	}, nil
}

// buildDocument lays the invoice out as template data. Every monetary
// figure is formatted in major units here; the template only prints.
func (s *DocumentService) buildDocument(invoice *billing.Invoice, customer *partner.Customer) *rendering.InvoiceDocument {
	lines := make([]rendering.DocumentLine, len(invoice.Items))
	for i, item := range invoice.Items {
		lines[i] = rendering.DocumentLine{
			SerialNumber: i + 1,
			Description:  item.Description,
			Quantity:     item.Quantity.String(),
			Rate:         item.Rate.String(),
			Discount:     item.DiscountAmount.String(),
			Tax:          item.TaxAmount.String(),
			Amount:       item.Amount.String(),
		}
	}

	split := invoice.TaxSplit()
	percent := split.Percent.String()

	return &rendering.InvoiceDocument{
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceDate:   invoice.CreatedAt.Format(documentDateFormat),

		CompanyName:      s.company.Name,
		CompanyAddress:   s.company.Address,
		CompanyPhone:     s.company.Phone,
		CompanyGSTIN:     s.company.GSTIN,
		CompanyStateCode: s.company.StateCode,

		CustomerName:      customer.Name,
		CustomerAddress:   customer.Address.String(),
		CustomerPhone:     customer.Phone,
		CustomerGSTIN:     customer.GSTIN,
		CustomerStateCode: customer.Address.StateCode,

		ReferenceName: invoice.ReferenceName,
		BookingDate:   invoice.BookingDate.Format(documentDateFormat),
		EventDate:     invoice.EventDate.Format(documentDateFormat),
		StartTime:     invoice.StartTime,
		EndTime:       invoice.EndTime,
		Manager:       invoice.Manager,
		SACCode:       invoice.SACCode,

		Lines: lines,

		Subtotal:    invoice.Subtotal.String(),
		Discount:    invoice.DiscountAmount.String(),
		CGSTPercent: percent,
		CGSTAmount:  split.CGSTAmount.String(),
		SGSTPercent: percent,
		SGSTAmount:  split.SGSTAmount.String(),
		Total:       invoice.Total.String(),

		Advance:    invoice.Advance.String(),
		BalanceDue: invoice.BalanceDue().String(),

		AmountInWords: invoice.Total.InWords(),
		Remarks:       invoice.Remarks,
	}
}
