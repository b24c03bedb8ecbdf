package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice_a4.html"))

// DocumentLine is one row of the printed line-item table. All monetary
// figures arrive pre-formatted in major units.
type DocumentLine struct {
	SerialNumber int
	Description  string
	Quantity     string
	Rate         string
	Discount     string
	Tax          string
	Amount       string
}

// InvoiceDocument is the data contract for the invoice template
type InvoiceDocument struct {
	InvoiceNumber string
	InvoiceDate   string

	CompanyName      string
	CompanyAddress   string
	CompanyPhone     string
	CompanyGSTIN     string
	CompanyStateCode string

	CustomerName      string
	CustomerAddress   string
	CustomerPhone     string
	CustomerGSTIN     string
	CustomerStateCode string

	ReferenceName string
	BookingDate   string
	EventDate     string
	StartTime     string
	EndTime       string
	Manager       string
	SACCode       string

	Lines []DocumentLine

	Subtotal    string
	Discount    string
	CGSTPercent string
	CGSTAmount  string
	SGSTPercent string
	SGSTAmount  string
	Total       string

	Advance    string
	BalanceDue string

	AmountInWords string
	Remarks       string
}

// RenderInvoiceHTML produces the complete A4 invoice document
func RenderInvoiceHTML(doc *InvoiceDocument) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}
