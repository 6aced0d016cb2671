package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"docgate/internal/domain/entity"
	"docgate/internal/domain/model"
	"docgate/internal/domain/repository/database"
	"docgate/internal/domain/repository/imaging"
	"docgate/internal/domain/repository/metrics"
	"docgate/internal/domain/repository/ocr"
	"docgate/pkg/logger"
)

const (
	nameKeyword = "nome"
	typeKeyword = "tipo"
)

// Extractor pulls the name and document type lines out of a scanned form.
type Extractor struct {
	recognizer ocr.Recognizer
	metrics    metrics.Recorder
	audit      auditTrail
}

func NewExtractor(recognizer ocr.Recognizer, recorder metrics.Recorder, history database.Writer) *Extractor {
	return &Extractor{
		recognizer: recognizer,
		metrics:    recorder,
		audit:      auditTrail{writer: history},
	}
}

func (e *Extractor) Extract(ctx context.Context, blob entity.UploadedBlob) (model.ExtractedFields, error) {
	start := time.Now()
	fields, err := e.extract(ctx, blob)

	outcome := conversionSucceeded
	if err != nil {
		outcome = string(errorKind(err))
	}
	e.metrics.ObserveExtraction(outcome)

	e.audit.record(ctx, &model.AuditRecord{
		Operation:  model.OperationExtract,
		Filename:   blob.Filename,
		Size:       blob.Size(),
		Succeeded:  err == nil,
		ErrorKind:  errorKind(err),
		DurationMs: time.Since(start).Milliseconds(),
	})

	return fields, err
}

func (e *Extractor) extract(ctx context.Context, blob entity.UploadedBlob) (model.ExtractedFields, error) {
	if detected := mimetype.Detect(blob.Data); !strings.HasPrefix(detected.String(), "image/") {
		return model.ExtractedFields{}, model.NewError(model.KindInvalidImage, "invalid or corrupted image", nil)
	}

	text, err := e.recognizer.Recognize(ctx, blob.Data)
	if errors.Is(err, imaging.ErrCorruptImage) {
		logger.Debug("rejected image before recognition", "file", blob.Filename, "err", err)

		return model.ExtractedFields{}, model.NewError(model.KindInvalidImage, "invalid or corrupted image", err)
	}

	if err != nil {
		logger.Error("text recognition failed", "file", blob.Filename, "err", err)

		return model.ExtractedFields{}, internalError("text recognition failed", err)
	}

	return ScanFields(text), nil
}

// ScanFields keeps the first line mentioning each keyword. The value is
// what follows the first colon, or the whole line when there is none.
func ScanFields(text string) model.ExtractedFields {
	fields := model.ExtractedFields{Text: strings.TrimSpace(text)}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if fields.Name == "" && strings.Contains(lower, nameKeyword) {
			fields.Name = fieldValue(line)
		}

		if fields.Type == "" && strings.Contains(lower, typeKeyword) {
			fields.Type = fieldValue(line)
		}
	}

	return fields
}

func fieldValue(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		if value := strings.TrimSpace(line[idx+1:]); value != "" {
			return value
		}
	}

	return line
}
