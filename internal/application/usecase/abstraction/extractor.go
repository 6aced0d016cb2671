package abstraction

import (
	"context"

	"docgate/internal/domain/entity"
	"docgate/internal/domain/model"
)

type Extractor interface {
	Extract(ctx context.Context, blob entity.UploadedBlob) (model.ExtractedFields, error)
}
