package abstraction

import (
	"context"

	"docgate/internal/domain/entity"
)

type Converter interface {
	Authorize(ctx context.Context, token string) error
	Convert(ctx context.Context, blob entity.UploadedBlob, token string) (entity.ConversionArtifact, error)
}
