package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"docgate/internal/domain/dto"
	"docgate/internal/domain/model"
	"docgate/internal/domain/repository/database"
)

var knownOperations = map[model.Operation]struct{}{
	model.OperationVerify:  {},
	model.OperationConvert: {},
	model.OperationExtract: {},
}

// Lister implements the Lister abstraction over the audit history.
type Lister struct {
	lister   database.Lister
	maxLimit int64
}

// NewLister caps every page at maxLimit records; 0 means no cap.
func NewLister(lister database.Lister, maxLimit int64) *Lister {
	return &Lister{
		lister:   lister,
		maxLimit: maxLimit,
	}
}

// ListHistory returns the newest matching records. A limit of 0 asks for
// the largest page allowed.
func (l *Lister) ListHistory(ctx context.Context, operation string, since, until *time.Time, limit int64,
) ([]dto.AuditDescriptor, int, error) {
	if l.lister == nil {
		return nil, http.StatusNotFound, errors.New("history is disabled")
	}

	op := model.Operation(operation)
	if _, ok := knownOperations[op]; operation != "" && !ok {
		return nil, http.StatusBadRequest, errors.New("unknown operation")
	}

	if since != nil && until != nil && since.After(*until) {
		return nil, http.StatusBadRequest, errors.New("'since' is after 'until'")
	}

	if limit < 0 {
		return nil, http.StatusBadRequest, errors.New("'limit' must not be negative")
	}

	if limit == 0 || (l.maxLimit > 0 && limit > l.maxLimit) {
		limit = l.maxLimit
	}

	records, err := l.lister.List(ctx, op, since, until, limit)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to list history")
	}

	descriptors := make([]dto.AuditDescriptor, 0, len(records))
	for _, rec := range records {
		descriptors = append(descriptors, dto.AuditDescriptor{
			ID:         rec.ID,
			Operation:  string(rec.Operation),
			Filename:   rec.Filename,
			Size:       rec.Size,
			Succeeded:  rec.Succeeded,
			ErrorKind:  string(rec.ErrorKind),
			Accepted:   rec.Accepted,
			DPIX:       rec.DPIX,
			DPIY:       rec.DPIY,
			Pages:      rec.Pages,
			ArchiveKey: rec.ArchiveKey,
			DurationMs: rec.DurationMs,
			Created:    rec.CreatedAt.Unix(),
		})
	}

	return descriptors, http.StatusOK, nil
}
