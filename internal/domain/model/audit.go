package model

import "time"

type Operation string

const (
	OperationVerify  Operation = "verify_dpi"
	OperationConvert Operation = "convert_pdf"
	OperationExtract Operation = "extract_fields"
)

// AuditRecord is one handled request as stored in the history collection.
type AuditRecord struct {
	ID         string    `bson:"_id"`
	Operation  Operation `bson:"operation"`
	Filename   string    `bson:"filename"`
	Size       int64     `bson:"size"`
	Succeeded  bool      `bson:"succeeded"`
	ErrorKind  Kind      `bson:"error_kind,omitempty"`
	Accepted   *bool     `bson:"accepted,omitempty"`
	DPIX       float64   `bson:"dpi_x,omitempty"`
	DPIY       float64   `bson:"dpi_y,omitempty"`
	Pages      int       `bson:"pages,omitempty"`
	ArchiveKey string    `bson:"archive_key,omitempty"`
	DurationMs int64     `bson:"duration_ms"`
	CreatedAt  time.Time `bson:"created_at"`
}
