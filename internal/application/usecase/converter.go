package usecase

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"docgate/internal/domain/entity"
	"docgate/internal/domain/model"
	"docgate/internal/domain/repository/broker"
	"docgate/internal/domain/repository/database"
	"docgate/internal/domain/repository/engine"
	"docgate/internal/domain/repository/metrics"
	"docgate/internal/domain/repository/minio"
	"docgate/internal/domain/repository/pdf"
	"docgate/internal/domain/repository/workspace"
	"docgate/pkg/logger"
	"docgate/pkg/utils"
)

const (
	PDFContentType = "application/pdf"

	conversionSucceeded = "success"

	ReasonTimeout       = "timeout"
	ReasonCanceled      = "canceled"
	ReasonUnavailable   = "engine_unavailable"
	ReasonInvalidOutput = "invalid_output"
)

type ConverterConfig struct {
	// Secret is read from the environment; empty disables the check.
	Secret          string `yaml:"-"`
	InputExtension  string `yaml:"input_extension"`
	OutputExtension string `yaml:"output_extension"`
	InputFileName   string `yaml:"input_file_name"`
}

func DefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		InputExtension:  ".docx",
		OutputExtension: ".pdf",
		InputFileName:   "input.docx",
	}
}

func (c ConverterConfig) Check() error {
	for _, ext := range []string{c.InputExtension, c.OutputExtension} {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("converter extension %q must start with a dot", ext)
		}
	}

	if strings.EqualFold(c.InputExtension, c.OutputExtension) {
		return errors.New("converter input and output extensions must differ")
	}

	if c.InputFileName == "" || c.InputFileName != filepath.Base(c.InputFileName) {
		return fmt.Errorf("converter.input_file_name %q must be a bare file name", c.InputFileName)
	}

	return nil
}

type conversionEvent struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	InputSize   int64  `json:"input_size"`
	OutputSize  int64  `json:"output_size"`
	Pages       int    `json:"pages"`
	ArchiveKey  string `json:"archive_key,omitempty"`
	ConvertedAt int64  `json:"converted_at"`
}

type Converter struct {
	cfg        ConverterConfig
	workspaces workspace.Manager
	engine     engine.Engine
	inspector  pdf.Inspector
	archiver   minio.Archiver
	publisher  broker.Publisher
	metrics    metrics.Recorder
	audit      auditTrail
}

// NewConverter wires the orchestrator. archiver, publisher and history may be
// nil when the corresponding sink is disabled.
func NewConverter(cfg ConverterConfig, workspaces workspace.Manager, eng engine.Engine, inspector pdf.Inspector,
	archiver minio.Archiver, publisher broker.Publisher, history database.Writer, recorder metrics.Recorder,
) *Converter {
	return &Converter{
		cfg:        cfg,
		workspaces: workspaces,
		engine:     eng,
		inspector:  inspector,
		archiver:   archiver,
		publisher:  publisher,
		metrics:    recorder,
		audit:      auditTrail{writer: history},
	}
}

// Convert renders blob to PDF. Every failure is a *model.Error; the
// workspace is removed before Convert returns, whatever the outcome.
func (c *Converter) Convert(ctx context.Context, blob entity.UploadedBlob, token string,
) (entity.ConversionArtifact, error) {
	start := time.Now()
	artifact, err := c.convert(ctx, blob, token)
	c.observe(ctx, blob, artifact, err, time.Since(start))

	return artifact, err
}

// Authorize checks token alone, so callers can refuse a request before
// reading its body. A refusal is counted and audited like a failed Convert.
func (c *Converter) Authorize(ctx context.Context, token string) error {
	if c.authorized(token) {
		return nil
	}

	err := errUnauthorized()
	c.observe(ctx, entity.UploadedBlob{}, entity.ConversionArtifact{}, err, 0)

	return err
}

func (c *Converter) observe(ctx context.Context, blob entity.UploadedBlob, artifact entity.ConversionArtifact,
	err error, elapsed time.Duration,
) {
	outcome := conversionSucceeded
	if err != nil {
		outcome = string(errorKind(err))
	}
	c.metrics.ObserveConversion(outcome, elapsed)

	c.audit.record(ctx, &model.AuditRecord{
		ID:         artifact.ID,
		Operation:  model.OperationConvert,
		Filename:   blob.Filename,
		Size:       blob.Size(),
		Succeeded:  err == nil,
		ErrorKind:  errorKind(err),
		Pages:      artifact.Pages,
		ArchiveKey: artifact.ArchiveKey,
		DurationMs: elapsed.Milliseconds(),
	})
}

func (c *Converter) convert(ctx context.Context, blob entity.UploadedBlob, token string,
) (entity.ConversionArtifact, error) {
	if !c.authorized(token) {
		return entity.ConversionArtifact{}, errUnauthorized()
	}

	if err := c.checkInput(blob); err != nil {
		return entity.ConversionArtifact{}, err
	}

	ws, err := c.workspaces.Create()
	if err != nil {
		logger.Error("failed to create workspace", "err", err)

		return entity.ConversionArtifact{}, internalError("could not prepare the conversion", err)
	}
	defer func() {
		if err := ws.Destroy(); err != nil {
			logger.Error("failed to remove workspace", "dir", ws.Dir(), "err", err)
		}
	}()

	inputPath, err := ws.WriteInput(c.cfg.InputFileName, blob.Data)
	if err != nil {
		logger.Error("failed to write conversion input", "dir", ws.Dir(), "err", err)

		return entity.ConversionArtifact{}, internalError("could not prepare the conversion", err)
	}

	if err := c.engine.Convert(ctx, inputPath, ws.Dir()); err != nil {
		return entity.ConversionArtifact{}, classifyEngineError(blob.Filename, err)
	}

	outputs, err := ws.FindByExtension(c.cfg.OutputExtension)
	if err != nil {
		logger.Error("failed to scan workspace", "dir", ws.Dir(), "err", err)

		return entity.ConversionArtifact{}, internalError("could not read the conversion output", err)
	}

	switch len(outputs) {
	case 0:
		logger.Error("conversion engine exited cleanly without output", "file", blob.Filename)

		return entity.ConversionArtifact{}, model.NewError(model.KindNoOutputProduced,
			"conversion produced no output", nil)
	case 1:
	default:
		logger.Error("conversion engine produced several outputs", "file", blob.Filename, "count", len(outputs))

		return entity.ConversionArtifact{}, model.NewError(model.KindAmbiguousOutput,
			"conversion produced more than one output", fmt.Errorf("%d candidates", len(outputs)))
	}

	data, err := os.ReadFile(outputs[0])
	if err != nil {
		logger.Error("failed to read conversion output", "path", outputs[0], "err", err)

		return entity.ConversionArtifact{}, internalError("could not read the conversion output", err)
	}

	pages, err := c.inspector.PageCount(bytes.NewReader(data))
	if err != nil {
		logger.Error("conversion output is not a readable pdf", "file", blob.Filename, "err", err)

		return entity.ConversionArtifact{}, model.NewError(model.KindConversionEngineError,
			"conversion failed", err).WithReason(ReasonInvalidOutput)
	}

	artifact := entity.ConversionArtifact{
		ID:          uuid.NewString(),
		Data:        data,
		ContentType: PDFContentType,
		Pages:       pages,
	}
	artifact.ArchiveKey = c.archive(ctx, artifact)
	c.announce(ctx, blob, artifact)

	logger.Info("document converted", "id", artifact.ID, "file", blob.Filename, "pages", pages,
		"size", len(data))

	return artifact, nil
}

func errUnauthorized() *model.Error {
	return model.NewError(model.KindUnauthorized, "invalid or missing token", nil)
}

func (c *Converter) authorized(token string) bool {
	if c.cfg.Secret == "" {
		return true
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(c.cfg.Secret)) == 1
}

func (c *Converter) checkInput(blob entity.UploadedBlob) error {
	if strings.TrimSpace(blob.Filename) == "" {
		return model.NewError(model.KindInvalidInput, "file name is required", nil)
	}

	if !strings.EqualFold(filepath.Ext(blob.Filename), c.cfg.InputExtension) {
		return model.NewError(model.KindInvalidInput,
			fmt.Sprintf("only %s files are accepted", c.cfg.InputExtension), nil)
	}

	if len(blob.Data) == 0 {
		return model.NewError(model.KindInvalidInput, "file is empty", nil)
	}

	if detected := mimetype.Detect(blob.Data); !utils.MatchesMimeType(blob.Filename, detected.String()) {
		// the engine decides what it can open; the mismatch is only noted
		logger.Warn("upload content does not match its extension", "file", blob.Filename,
			"detected", detected.String())
	}

	return nil
}

func classifyEngineError(filename string, err error) *model.Error {
	classified := model.NewError(model.KindConversionEngineError, "conversion failed", err)

	switch {
	case errors.Is(err, engine.ErrEngineTimeout):
		classified.WithReason(ReasonTimeout)
	case errors.Is(err, engine.ErrEngineCanceled):
		classified.WithReason(ReasonCanceled)
	case errors.Is(err, engine.ErrEngineUnavailable):
		classified.WithReason(ReasonUnavailable)
	}

	logger.Error("conversion engine failed", "file", filename, "reason", classified.Reason, "err", err)

	return classified
}

func (c *Converter) archive(ctx context.Context, artifact entity.ConversionArtifact) string {
	if c.archiver == nil {
		return ""
	}

	objectName := artifact.ID + utils.ExtensionForMimeType(artifact.ContentType)
	result, err := c.archiver.Archive(context.WithoutCancel(ctx), objectName, artifact.Data, artifact.ContentType)
	if err != nil {
		logger.Error("failed to archive converted document", "id", artifact.ID, "err", err)

		return ""
	}

	return result.Location
}

func (c *Converter) announce(ctx context.Context, blob entity.UploadedBlob, artifact entity.ConversionArtifact) {
	if c.publisher == nil {
		return
	}

	body, err := json.Marshal(conversionEvent{
		ID:          artifact.ID,
		Filename:    blob.Filename,
		InputSize:   blob.Size(),
		OutputSize:  int64(len(artifact.Data)),
		Pages:       artifact.Pages,
		ArchiveKey:  artifact.ArchiveKey,
		ConvertedAt: time.Now().Unix(),
	})
	if err != nil {
		logger.Error("failed to encode conversion event", "id", artifact.ID, "err", err)

		return
	}

	if err := c.publisher.Publish(context.WithoutCancel(ctx), string(body)); err != nil {
		logger.Error("failed to publish conversion event", "id", artifact.ID, "err", err)
	}
}
