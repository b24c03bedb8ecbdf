package billing

import (
	"github.com/shopspring/decimal"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// Totals holds the invoice-level aggregates. Each figure is the exact
// integer sum of the corresponding per-line figure, so
// Total == Subtotal - DiscountAmount + TaxAmount always holds.
type Totals struct {
	Subtotal       valueobject.Money `json:"subtotal"`
	DiscountAmount valueobject.Money `json:"discount_amount"`
	TaxAmount      valueobject.Money `json:"tax_amount"`
	Total          valueobject.Money `json:"total"`
}

// ComputeTotals aggregates the line items. Returns EMPTY_INVOICE when
// there are no items; totals are never reported for an empty document.
func ComputeTotals(items LineItems) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, shared.ErrEmptyInvoice
	}

	var t Totals
	for _, item := range items {
		t.Subtotal = t.Subtotal.Add(item.Base)
		t.DiscountAmount = t.DiscountAmount.Add(item.DiscountAmount)
		t.TaxAmount = t.TaxAmount.Add(item.TaxAmount)
		t.Total = t.Total.Add(item.Amount)
	}
	return t, nil
}

// TaxSplit is one row of the document's tax summary. Intra-state supplies
// split the levy evenly between the central and state components, so each
// half carries taxPercent/2.
type TaxSplit struct {
	Percent    decimal.Decimal
	CGSTAmount valueobject.Money
	SGSTAmount valueobject.Money
}

// ComputeTaxSplit derives the CGST/SGST halves of the aggregate tax.
// An odd paise of tax goes to the CGST half so the two components still
// sum to the exact tax amount.
func ComputeTaxSplit(items LineItems, totals Totals) TaxSplit {
	percent := decimal.Zero
	uniform := true
	for i, item := range items {
		if i == 0 {
			percent = item.TaxPercent
			continue
		}
		if !item.TaxPercent.Equal(percent) {
			uniform = false
			break
		}
	}
	if !uniform && totals.Subtotal.Sub(totals.DiscountAmount).Paise() > 0 {
		// Mixed rates: report the blended effective rate.
		taxable := totals.Subtotal.Sub(totals.DiscountAmount)
		percent = totals.TaxAmount.Decimal().Mul(percentHundred).Div(taxable.Decimal()).Round(2)
	}

	sgst := valueobject.NewMoneyFromPaise(totals.TaxAmount.Paise() / 2)
	cgst := totals.TaxAmount.Sub(sgst)
	return TaxSplit{
		Percent:    percent.Div(decimal.NewFromInt(2)),
		CGSTAmount: cgst,
		SGSTAmount: sgst,
	}
}
