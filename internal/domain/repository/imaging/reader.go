package imaging

import (
	"io"

	"docgate/internal/domain/entity"
)

type MetadataReader interface {
	Read(r io.ReadSeeker) (entity.ImageMetadata, error)
}
