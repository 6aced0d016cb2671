package imaging

import (
	"errors"
	"fmt"
	"io"

	imglib "github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	// Decoders for formats the standard library does not register.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"docgate/internal/domain/entity"
)

// supportedFormats maps sniffed MIME types onto decoder format names.
var supportedFormats = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/tiff": "tiff",
	"image/webp": "webp",
}

type Reader struct {
	maxPixels int64
}

// NewReader refuses to decode images declaring more than maxPixels pixels;
// 0 lifts the limit.
func NewReader(maxPixels int64) *Reader {
	return &Reader{
		maxPixels: maxPixels,
	}
}

// Read recognizes, fully decodes and measures the image in rs. Unknown formats
// yield ErrUnrecognizedFormat, undecodable or oversized payloads
// ErrCorruptImage; anything else is an I/O failure.
func (r *Reader) Read(rs io.ReadSeeker) (entity.ImageMetadata, error) {
	mtype, err := mimetype.DetectReader(rs)
	if err != nil {
		return entity.ImageMetadata{}, fmt.Errorf("sniff image header: %w", err)
	}

	format, ok := supportedFormats[mtype.String()]
	if !ok {
		return entity.ImageMetadata{}, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, mtype.String())
	}

	if err := rewind(rs); err != nil {
		return entity.ImageMetadata{}, err
	}

	if _, _, err := CheckDimensions(rs, r.maxPixels); err != nil {
		return entity.ImageMetadata{}, err
	}

	if err := rewind(rs); err != nil {
		return entity.ImageMetadata{}, err
	}

	img, err := imglib.Decode(rs)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return entity.ImageMetadata{}, fmt.Errorf("%w: truncated %s: %v", ErrCorruptImage, format, err)
		}

		return entity.ImageMetadata{}, fmt.Errorf("%w: %s: %v", ErrCorruptImage, format, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return entity.ImageMetadata{}, fmt.Errorf("%w: empty %s", ErrCorruptImage, format)
	}

	// The full decode consumed the stream; metadata is read from the start.
	if err := rewind(rs); err != nil {
		return entity.ImageMetadata{}, err
	}

	data, err := io.ReadAll(rs)
	if err != nil {
		return entity.ImageMetadata{}, fmt.Errorf("read image metadata: %w", err)
	}

	dpiX, dpiY := readDensity(format, data)

	return entity.ImageMetadata{
		Format:   format,
		WidthPx:  bounds.Dx(),
		HeightPx: bounds.Dy(),
		DPIX:     dpiX,
		DPIY:     dpiY,
	}, nil
}

func rewind(rs io.ReadSeeker) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind image stream: %w", err)
	}

	return nil
}
