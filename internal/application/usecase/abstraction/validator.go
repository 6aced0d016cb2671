package abstraction

import (
	"context"

	"docgate/internal/domain/entity"
	"docgate/internal/domain/model"
)

type Validator interface {
	Validate(ctx context.Context, blob entity.UploadedBlob) model.ResolutionVerdict
}
