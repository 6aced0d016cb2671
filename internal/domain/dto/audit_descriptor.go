package dto

type AuditDescriptor struct {
	ID         string  `json:"id"`
	Operation  string  `json:"operation"`
	Filename   string  `json:"filename"`
	Size       int64   `json:"size"`
	Succeeded  bool    `json:"succeeded"`
	ErrorKind  string  `json:"error_kind,omitempty"`
	Accepted   *bool   `json:"accepted,omitempty"`
	DPIX       float64 `json:"dpi_x,omitempty"`
	DPIY       float64 `json:"dpi_y,omitempty"`
	Pages      int     `json:"pages,omitempty"`
	ArchiveKey string  `json:"archive_key,omitempty"`
	DurationMs int64   `json:"duration_ms"`
	Created    int64   `json:"created"`
}
