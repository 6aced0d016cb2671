package imaging

import (
	"fmt"
	"image"
	"io"
)

// DefaultMaxPixels matches the decompression bomb limit of common imaging
// toolkits: a quarter GiB of 24 bit pixels.
const DefaultMaxPixels = 1024 * 1024 * 1024 / 4 / 3

// CheckDimensions reads only the image header from r and rejects images whose
// declared area exceeds maxPixels. A maxPixels of 0 disables the limit.
func CheckDimensions(r io.Reader, maxPixels int64) (int, int, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: header: %v", ErrCorruptImage, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: empty %s", ErrCorruptImage, format)
	}

	if area := int64(cfg.Width) * int64(cfg.Height); maxPixels > 0 && area > maxPixels {
		return 0, 0, fmt.Errorf("%w: %s declares %dx%d pixels, limit is %d",
			ErrCorruptImage, format, cfg.Width, cfg.Height, maxPixels)
	}

	return cfg.Width, cfg.Height, nil
}
