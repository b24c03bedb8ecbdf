package rendering

import "github.com/eventops/backend/internal/domain/shared"

// PaperSize identifies the output page dimensions
type PaperSize string

const (
	PaperSizeA4     PaperSize = "A4"
	PaperSizeA5     PaperSize = "A5"
	PaperSizeLetter PaperSize = "LETTER"
)

// IsValid checks if the paper size is supported
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeA5, PaperSizeLetter:
		return true
	}
	return false
}

// Dimensions returns width and height in millimeters (portrait)
func (p PaperSize) Dimensions() (width, height float64) {
	switch p {
	case PaperSizeA5:
		return 148, 210
	case PaperSizeLetter:
		return 215.9, 279.4
	default:
		return 210, 297
	}
}

// Orientation defines the page orientation
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Margins represents the page margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// NewMargins creates a validated Margins value object
func NewMargins(top, right, bottom, left int) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError("INVALID_INPUT", "margins cannot be negative")
	}
	if top > 100 || right > 100 || bottom > 100 || left > 100 {
		return Margins{}, shared.NewDomainError("INVALID_INPUT", "margins cannot exceed 100mm")
	}
	return Margins{Top: top, Right: right, Bottom: bottom, Left: left}, nil
}

// DefaultMargins returns the 10mm margins used on invoice documents
func DefaultMargins() Margins {
	return Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}
}
