package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object for billing addresses.
// State and StateCode matter for tax documents: the state code decides
// the CGST/SGST split shown on invoices.
type Address struct {
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateCode string `json:"stateCode"`
	PinCode   string `json:"pinCode,omitempty"`
}

// NewAddress creates a validated Address. Line1, city and state are
// required; the rest are optional.
func NewAddress(line1, line2, city, state, stateCode, pinCode string) (Address, error) {
	a := Address{
		Line1:     strings.TrimSpace(line1),
		Line2:     strings.TrimSpace(line2),
		City:      strings.TrimSpace(city),
		State:     strings.TrimSpace(state),
		StateCode: strings.TrimSpace(stateCode),
		PinCode:   strings.TrimSpace(pinCode),
	}
	if a.Line1 == "" {
		return Address{}, fmt.Errorf("address line cannot be empty")
	}
	if a.City == "" {
		return Address{}, fmt.Errorf("city cannot be empty")
	}
	if a.State == "" {
		return Address{}, fmt.Errorf("state cannot be empty")
	}
	if len(a.Line1) > 200 || len(a.Line2) > 200 {
		return Address{}, fmt.Errorf("address line cannot exceed 200 characters")
	}
	return a, nil
}

// EmptyAddress returns an empty address for optional address fields
func EmptyAddress() Address {
	return Address{}
}

// IsEmpty returns true if every field is blank
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// String returns the full single-line form used on printed documents
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.PinCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Value implements driver.Valuer, storing the address as JSON
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}
	return json.Unmarshal(data, a)
}
