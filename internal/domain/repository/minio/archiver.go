package minio

import (
	"context"

	"docgate/internal/domain/entity"
)

type Archiver interface {
	Archive(ctx context.Context, objectName string, data []byte, contentType string) (entity.ArchiveResult, error)
}
