package abstraction

import (
	"context"
	"time"

	"docgate/internal/domain/dto"
)

// Lister defines the interface for browsing the request history.
type Lister interface {
	ListHistory(ctx context.Context, operation string, since, until *time.Time, limit int64,
	) ([]dto.AuditDescriptor, int, error)
}
