package ocr

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	docimaging "docgate/internal/infrastructure/imaging"
)

// Tesseract recognizes text with a fresh gosseract client per call; clients
// are not safe for concurrent use.
type Tesseract struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

func NewTesseract(cfg Config) *Tesseract {
	return &Tesseract{
		cfg:           cfg,
		clientFactory: gosseract.NewClient,
	}
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prepared, err := t.prepare(image)
	if err != nil {
		return "", err
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(t.cfg.Languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}

	if err := c.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	return text, nil
}

// prepare converts the scan to grayscale and enlarges narrow images.
// Oversized images fail with imaging.ErrCorruptImage before any decoding.
func (t *Tesseract) prepare(data []byte) ([]byte, error) {
	if _, _, err := docimaging.CheckDimensions(bytes.NewReader(data), t.cfg.MaxPixels); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = imaging.Grayscale(img)
	if w := img.Bounds().Dx(); t.cfg.MinWidthPx > 0 && w < t.cfg.MinWidthPx {
		img = imaging.Resize(img, t.cfg.MinWidthPx, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), nil
}
