package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidAmount       = NewDomainError("INVALID_AMOUNT", "Monetary amount is invalid")
	ErrEmptyInvoice        = NewDomainError("EMPTY_INVOICE", "Invoice has no line items")
)

// Error codes for errors that carry computed context. Callers build these
// with NewDomainError so the message can include the relevant figures.
const (
	ErrCodeInvalidAmount           = "INVALID_AMOUNT"
	ErrCodeEmptyInvoice            = "EMPTY_INVOICE"
	ErrCodeOverpayment             = "OVERPAYMENT"
	ErrCodeRenderStrategyExhausted = "RENDER_STRATEGY_EXHAUSTED"
)
