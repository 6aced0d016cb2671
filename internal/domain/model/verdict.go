package model

// ResolutionVerdict is the outcome of checking an image against the print
// resolution policy. Error is set only when the verdict could not be computed.
type ResolutionVerdict struct {
	Accepted  bool
	DPIX      float64
	DPIY      float64
	WidthPx   int
	HeightPx  int
	Estimated bool
	Error     *Error
}
