package database

import (
	"context"
	"time"

	"docgate/internal/domain/model"
)

// Lister defines the interface for listing audit records from the database.
type Lister interface {
	List(ctx context.Context, operation model.Operation, since, until *time.Time, limit int64) ([]model.AuditRecord, error)
}
