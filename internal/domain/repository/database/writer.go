package database

import (
	"context"

	"docgate/internal/domain/model"
)

type Writer interface {
	Write(ctx context.Context, record *model.AuditRecord) error
}
