package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docgate/internal/domain/model"
	"docgate/internal/domain/repository/database"
	"docgate/pkg/logger"
)

// auditTrail writes history records when a writer is configured. Failures
// are logged and never change the outcome of the request.
type auditTrail struct {
	writer database.Writer
}

func (a auditTrail) record(ctx context.Context, rec *model.AuditRecord) {
	if a.writer == nil {
		return
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now().UTC()

	if err := a.writer.Write(context.WithoutCancel(ctx), rec); err != nil {
		logger.Error("failed to write audit record", "operation", rec.Operation, "err", err)
	}
}

func errorKind(err error) model.Kind {
	if err == nil {
		return ""
	}

	if classified, ok := asError(err); ok {
		return classified.Kind
	}

	return model.KindInternal
}
