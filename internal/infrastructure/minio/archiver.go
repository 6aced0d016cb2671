package minio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"

	"docgate/internal/domain/entity"
)

// Archiver keeps a copy of every converted document.
type Archiver struct {
	minioClient *minio.Client
	cfg         *ArchiverConfig
}

func NewArchiver(minioClient *minio.Client, cfg *ArchiverConfig) *Archiver {
	return &Archiver{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (a *Archiver) Archive(ctx context.Context, objectName string, data []byte, contentType string,
) (entity.ArchiveResult, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Timeout)*time.Millisecond)
	defer cancel()

	info, err := a.minioClient.PutObject(ctx, a.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		})
	if err != nil {
		return entity.ArchiveResult{}, fmt.Errorf("put object %s: %w", objectName, err)
	}

	return entity.ArchiveResult{
		Size:     info.Size,
		Type:     contentType,
		Location: a.cfg.Bucket + "/" + info.Key,
		Bucket:   a.cfg.Bucket,
	}, nil
}
