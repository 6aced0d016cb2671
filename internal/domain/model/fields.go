package model

// ExtractedFields holds the values scanned out of an OCR'd document image.
type ExtractedFields struct {
	Name string
	Type string
	Text string
}
