package billing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

// LineItem is one chargeable row on an invoice. The derived amounts are
// computed once at construction and never mutated; editing a line means
// building a new one.
//
// Derivation, each step rounded to whole paise exactly once:
//
//	base     = quantity * rate
//	discount = base * discountPercent / 100
//	tax      = (base - discount) * taxPercent / 100
//	amount   = base - discount + tax
type LineItem struct {
	Description     string            `json:"description"`
	Quantity        decimal.Decimal   `json:"quantity"`
	Rate            valueobject.Money `json:"rate"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	TaxPercent      decimal.Decimal   `json:"tax_percent"`
	Base            valueobject.Money `json:"base"`
	DiscountAmount  valueobject.Money `json:"discount_amount"`
	TaxAmount       valueobject.Money `json:"tax_amount"`
	Amount          valueobject.Money `json:"amount"`
}

var percentHundred = decimal.NewFromInt(100)

// NewLineItem validates the inputs and computes the derived amounts.
// Rejections carry INVALID_AMOUNT so callers can surface which figure
// was out of range.
func NewLineItem(description string, quantity decimal.Decimal, rate valueobject.Money, discountPercent, taxPercent decimal.Decimal) (LineItem, error) {
	if description == "" {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "line item description cannot be empty")
	}
	if quantity.IsNegative() {
		return LineItem{}, shared.NewDomainError(shared.ErrCodeInvalidAmount,
			fmt.Sprintf("quantity must not be negative, got %s", quantity.String()))
	}
	if rate.IsNegative() {
		return LineItem{}, shared.NewDomainError(shared.ErrCodeInvalidAmount,
			fmt.Sprintf("rate must not be negative, got %s", rate.String()))
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(percentHundred) {
		return LineItem{}, shared.NewDomainError(shared.ErrCodeInvalidAmount,
			fmt.Sprintf("discount percent must be between 0 and 100, got %s", discountPercent.String()))
	}
	if taxPercent.IsNegative() {
		return LineItem{}, shared.NewDomainError(shared.ErrCodeInvalidAmount,
			fmt.Sprintf("tax percent must not be negative, got %s", taxPercent.String()))
	}

	base := valueobject.RoundPaise(rate.Decimal().Mul(quantity))
	discount := base.Percent(discountPercent)
	tax := base.Sub(discount).Percent(taxPercent)
	amount := base.Sub(discount).Add(tax)

	return LineItem{
		Description:     description,
		Quantity:        quantity,
		Rate:            rate,
		DiscountPercent: discountPercent,
		TaxPercent:      taxPercent,
		Base:            base,
		DiscountAmount:  discount,
		TaxAmount:       tax,
		Amount:          amount,
	}, nil
}

// LineItems is the ordered collection of invoice rows, stored as a JSONB column
type LineItems []LineItem

// Value implements driver.Valuer for database storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]LineItem{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database retrieval
func (l *LineItems) Scan(value any) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into LineItems", value)
	}
	return json.Unmarshal(data, l)
}
