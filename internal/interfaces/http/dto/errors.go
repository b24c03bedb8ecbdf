package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeOverpayment is used when a posting would exceed what is owed
	ErrCodeOverpayment = "ERR_OVERPAYMENT"
	// ErrCodeEmptyInvoice is used when an invoice would end up with no line items
	ErrCodeEmptyInvoice = "ERR_EMPTY_INVOICE"
	// ErrCodeInvalidAmount is used when a money amount is zero, negative or out of range
	ErrCodeInvalidAmount = "ERR_INVALID_AMOUNT"
	// ErrCodeInvalidCustomer is used when an invoice references an unknown customer
	ErrCodeInvalidCustomer = "ERR_INVALID_CUSTOMER"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Rendering error codes
const (
	// ErrCodeRenderFailed is used when PDF rendering fails outright
	ErrCodeRenderFailed = "ERR_RENDER_FAILED"
	// ErrCodeRenderExhausted is used when every rendering strategy has failed
	ErrCodeRenderExhausted = "ERR_RENDER_EXHAUSTED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeOverpayment:     http.StatusUnprocessableEntity,
	ErrCodeEmptyInvoice:    http.StatusUnprocessableEntity,
	ErrCodeInvalidAmount:   http.StatusBadRequest,
	ErrCodeInvalidCustomer: http.StatusBadRequest,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Rendering errors -> 502 Bad Gateway (the renderer sits behind the API)
	ErrCodeRenderFailed:    http.StatusBadGateway,
	ErrCodeRenderExhausted: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain-layer error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"OVERPAYMENT":          ErrCodeOverpayment,
	"EMPTY_INVOICE":        ErrCodeEmptyInvoice,
	"INVALID_AMOUNT":       ErrCodeInvalidAmount,
	"INVALID_CUSTOMER":     ErrCodeInvalidCustomer,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// If the code is already in the API format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
