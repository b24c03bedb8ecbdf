package rendering

import (
	"bytes"
	"context"
	"time"

	"github.com/eventops/backend/internal/domain/rendering"
)

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	// HTML content to render
	HTML string
	// PaperSize defines the output paper dimensions
	PaperSize rendering.PaperSize
	// Orientation defines portrait or landscape
	Orientation rendering.Orientation
	// Margins in millimeters
	Margins rendering.Margins
	// Title for the PDF document metadata
	Title string
	// Timeout overrides the per-attempt rendering timeout
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for rendering HTML to PDF
type PDFRenderer interface {
	// Render converts HTML content to a PDF document
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout     = "RENDER_TIMEOUT"
	ErrCodeRenderFailed      = "RENDER_FAILED"
	ErrCodeInvalidHTML       = "INVALID_HTML"
	ErrCodeBinaryNotFound    = "BINARY_NOT_FOUND"
	ErrCodeInvalidPaperSize  = "INVALID_PAPER_SIZE"
	ErrCodeStrategyExhausted = "RENDER_STRATEGY_EXHAUSTED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// mmToInches converts millimeters to inches; Chrome print parameters
// take inches.
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// estimatePageCount estimates the page count from PDF data by counting
// "/Type /Page" occurrences, minus the parent "/Type /Pages" objects.
func estimatePageCount(pdfData []byte) int {
	count := bytes.Count(pdfData, []byte("/Type /Page"))
	parentCount := bytes.Count(pdfData, []byte("/Type /Pages"))
	return max(count-parentCount, 1)
}
