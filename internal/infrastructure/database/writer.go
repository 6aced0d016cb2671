package database

import (
	"context"

	"docgate/internal/domain/model"
)

type AuditWriter struct {
	db *Database
}

func NewAuditWriter(db *Database) *AuditWriter {
	return &AuditWriter{db: db}
}

func (w *AuditWriter) Write(ctx context.Context, record *model.AuditRecord) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	_, err := w.db.collection().InsertOne(ctx, record)

	return err
}
