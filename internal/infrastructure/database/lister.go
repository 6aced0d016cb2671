package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docgate/internal/domain/model"
	"docgate/pkg/logger"
)

type AuditLister struct {
	db *Database
}

func NewAuditLister(db *Database) *AuditLister {
	return &AuditLister{db: db}
}

// List returns the newest records first. An empty operation matches all of
// them; a non-positive limit returns everything.
func (l *AuditLister) List(ctx context.Context, operation model.Operation, since, until *time.Time, limit int64,
) ([]model.AuditRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	filter := bson.M{}
	if operation != "" {
		filter["operation"] = operation
	}

	if since != nil || until != nil {
		createdFilter := bson.M{}
		if since != nil {
			createdFilter["$gte"] = *since
		}
		if until != nil {
			createdFilter["$lte"] = *until
		}
		filter["created_at"] = createdFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := l.db.collection().Find(ctx, filter, opts)
	if err != nil {
		logger.Error("failed to query audit records", "err", err)

		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.AuditRecord
	if err = cursor.All(ctx, &records); err != nil {
		logger.Error("failed to decode audit records", "err", err)

		return nil, err
	}

	return records, nil
}
