package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *InvoiceDocument {
	return &InvoiceDocument{
		InvoiceNumber:    "INV-2025-0042",
		InvoiceDate:      "15/06/2025",
		CompanyName:      "Grand Palace Events",
		CompanyAddress:   "12 MG Road, Pune, Maharashtra - 411001",
		CompanyPhone:     "9876543210",
		CompanyGSTIN:     "27AAACG1234F1Z5",
		CompanyStateCode: "27",
		CustomerName:     "Rohan Sharma",
		CustomerPhone:    "9123456780",
		ReferenceName:    "Sharma Wedding Reception",
		BookingDate:      "01/05/2025",
		EventDate:        "20/06/2025",
		StartTime:        "18:00",
		EndTime:          "23:00",
		Manager:          "Priya",
		SACCode:          "998553",
		Lines: []DocumentLine{
			{SerialNumber: 1, Description: "Banquet hall rental", Quantity: "1", Rate: "50000.00", Discount: "5000.00", Tax: "8100.00", Amount: "53100.00"},
			{SerialNumber: 2, Description: "Catering per plate", Quantity: "200", Rate: "450.00", Discount: "0.00", Tax: "16200.00", Amount: "106200.00"},
		},
		Subtotal:      "140000.00",
		Discount:      "5000.00",
		CGSTPercent:   "9",
		CGSTAmount:    "12150.00",
		SGSTPercent:   "9",
		SGSTAmount:    "12150.00",
		Total:         "159300.00",
		Advance:       "50000.00",
		BalanceDue:    "109300.00",
		AmountInWords: "Rupees One Lakh Fifty Nine Thousand Three Hundred Only",
		Remarks:       "Advance adjusted against final bill",
	}
}

func TestRenderInvoiceHTML(t *testing.T) {
	t.Run("renders every section of the document", func(t *testing.T) {
		html, err := RenderInvoiceHTML(sampleDocument())
		require.NoError(t, err)

		assert.Contains(t, html, "INV-2025-0042")
		assert.Contains(t, html, "Tax Invoice")
		assert.Contains(t, html, "Grand Palace Events")
		assert.Contains(t, html, "GSTIN: 27AAACG1234F1Z5")
		assert.Contains(t, html, "Rohan Sharma")
		assert.Contains(t, html, "Sharma Wedding Reception")
		assert.Contains(t, html, "SAC Code: 998553")
		assert.Contains(t, html, "Banquet hall rental")
		assert.Contains(t, html, "Catering per plate")
		assert.Contains(t, html, "CGST @ 9%")
		assert.Contains(t, html, "SGST @ 9%")
		assert.Contains(t, html, "159300.00")
		assert.Contains(t, html, "Balance Due")
		assert.Contains(t, html, "Rupees One Lakh Fifty Nine Thousand Three Hundred Only")
		assert.Contains(t, html, "Advance adjusted against final bill")
		assert.Contains(t, html, "Authorised Signatory")
	})

	t.Run("omits optional blocks when empty", func(t *testing.T) {
		doc := sampleDocument()
		doc.CustomerGSTIN = ""
		doc.SACCode = ""
		doc.Remarks = ""

		html, err := RenderInvoiceHTML(doc)
		require.NoError(t, err)

		assert.NotContains(t, html, "SAC Code")
		assert.NotContains(t, html, "Remarks")
	})

	t.Run("escapes markup in user supplied fields", func(t *testing.T) {
		doc := sampleDocument()
		doc.CustomerName = "<script>alert(1)</script>"

		html, err := RenderInvoiceHTML(doc)
		require.NoError(t, err)

		assert.NotContains(t, html, "<script>alert(1)</script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})
}
