package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"docgate/internal/domain/entity"
	"docgate/internal/domain/model"
	"docgate/internal/domain/repository/database"
	"docgate/internal/domain/repository/imaging"
	"docgate/internal/domain/repository/metrics"
	"docgate/pkg/logger"
)

const (
	verdictAccepted = "accepted"
	verdictRejected = "rejected"
)

// ValidatorConfig is the print resolution policy. The defaults describe an
// ISO A4 page and its 300 DPI scan.
type ValidatorConfig struct {
	MinDPI           float64 `yaml:"min_dpi"`
	PageWidthInches  float64 `yaml:"page_width_in_inches"`
	PageHeightInches float64 `yaml:"page_height_in_inches"`
	TargetWidthPx    int     `yaml:"target_width_px"`
	TargetHeightPx   int     `yaml:"target_height_px"`
	TolerancePx      int     `yaml:"tolerance_px"`
	// MaxPixels bounds the declared image area before decoding; 0 lifts it.
	MaxPixels int64 `yaml:"max_pixels"`
}

func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MinDPI:           200,
		PageWidthInches:  8.27,
		PageHeightInches: 11.69,
		TargetWidthPx:    2480,
		TargetHeightPx:   3507,
		TolerancePx:      5,
		MaxPixels:        89478485,
	}
}

func (c ValidatorConfig) Check() error {
	if c.MinDPI <= 0 {
		return fmt.Errorf("validator.min_dpi must be positive, got %v", c.MinDPI)
	}

	if c.PageWidthInches <= 0 || c.PageHeightInches <= 0 {
		return errors.New("validator page size must be positive")
	}

	if c.TargetWidthPx <= 0 || c.TargetHeightPx <= 0 {
		return errors.New("validator target pixel size must be positive")
	}

	if c.TolerancePx < 0 {
		return fmt.Errorf("validator.tolerance_px must not be negative, got %d", c.TolerancePx)
	}

	if c.MaxPixels < 0 {
		return fmt.Errorf("validator.max_pixels must not be negative, got %d", c.MaxPixels)
	}

	return nil
}

// estimate derives both axes from the assumed page size.
func (c ValidatorConfig) estimate(widthPx, heightPx int) (float64, float64) {
	return math.Round(float64(widthPx) / c.PageWidthInches),
		math.Round(float64(heightPx) / c.PageHeightInches)
}

func (c ValidatorConfig) accepts(dpiX, dpiY float64, widthPx, heightPx int) bool {
	dpiOK := dpiX >= c.MinDPI && dpiY >= c.MinDPI
	sizeOK := abs(widthPx-c.TargetWidthPx) <= c.TolerancePx && abs(heightPx-c.TargetHeightPx) <= c.TolerancePx

	return dpiOK || sizeOK
}

type Validator struct {
	reader  imaging.MetadataReader
	cfg     ValidatorConfig
	metrics metrics.Recorder
	audit   auditTrail
}

func NewValidator(reader imaging.MetadataReader, cfg ValidatorConfig, recorder metrics.Recorder,
	history database.Writer,
) *Validator {
	return &Validator{
		reader:  reader,
		cfg:     cfg,
		metrics: recorder,
		audit:   auditTrail{writer: history},
	}
}

// Validate checks blob against the resolution policy. A rejected image is a
// normal verdict; Error is only set when no verdict could be computed.
func (v *Validator) Validate(ctx context.Context, blob entity.UploadedBlob) model.ResolutionVerdict {
	start := time.Now()
	verdict := v.evaluate(blob)

	outcome := verdictRejected
	switch {
	case verdict.Error != nil:
		outcome = string(verdict.Error.Kind)
	case verdict.Accepted:
		outcome = verdictAccepted
	}
	v.metrics.ObserveVerdict(outcome)

	rec := &model.AuditRecord{
		Operation:  model.OperationVerify,
		Filename:   blob.Filename,
		Size:       blob.Size(),
		Succeeded:  verdict.Error == nil,
		DPIX:       verdict.DPIX,
		DPIY:       verdict.DPIY,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if verdict.Error != nil {
		rec.ErrorKind = verdict.Error.Kind
	} else {
		accepted := verdict.Accepted
		rec.Accepted = &accepted
	}
	v.audit.record(ctx, rec)

	return verdict
}

func (v *Validator) evaluate(blob entity.UploadedBlob) (verdict model.ResolutionVerdict) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("resolution check panicked", "file", blob.Filename, "panic", fmt.Sprint(r))
			verdict = model.ResolutionVerdict{
				Error: internalError("internal error while checking the image", fmt.Errorf("panic: %v", r)),
			}
		}
	}()

	meta, err := v.reader.Read(bytes.NewReader(blob.Data))
	if err != nil {
		if errors.Is(err, imaging.ErrUnrecognizedFormat) || errors.Is(err, imaging.ErrCorruptImage) {
			logger.Debug("rejected invalid image", "file", blob.Filename, "err", err)

			return model.ResolutionVerdict{
				Error: model.NewError(model.KindInvalidImage, "invalid or corrupted image", err),
			}
		}

		logger.Error("failed to read image", "file", blob.Filename, "err", err)

		return model.ResolutionVerdict{
			Error: internalError("internal error while checking the image", err),
		}
	}

	dpiX, dpiY := meta.DPIX, meta.DPIY
	estimated := false
	// one missing axis invalidates both reported values
	if dpiX == 0 || dpiY == 0 {
		dpiX, dpiY = v.cfg.estimate(meta.WidthPx, meta.HeightPx)
		estimated = true
	}

	// the policy sees the stored density; only the report is rounded
	return model.ResolutionVerdict{
		Accepted:  v.cfg.accepts(dpiX, dpiY, meta.WidthPx, meta.HeightPx),
		DPIX:      round2(dpiX),
		DPIY:      round2(dpiY),
		WidthPx:   meta.WidthPx,
		HeightPx:  meta.HeightPx,
		Estimated: estimated,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
