package dto

type VerdictResponse struct {
	OK     bool    `json:"ok"`
	DPIX   float64 `json:"dpi_x"`
	DPIY   float64 `json:"dpi_y"`
	Width  int     `json:"largura"`
	Height int     `json:"altura"`
	Error  string  `json:"erro,omitempty"`
}
