package ocr

import (
	"errors"

	"docgate/internal/infrastructure/imaging"
)

type Config struct {
	Languages []string `yaml:"languages"`
	// MinWidthPx upscales narrower images before recognition; 0 disables it.
	MinWidthPx int `yaml:"min_width_px"`
	// MaxPixels bounds the declared image area before decoding; 0 lifts it.
	MaxPixels int64 `yaml:"max_pixels"`
}

func DefaultConfig() Config {
	return Config{
		Languages:  []string{"por"},
		MinWidthPx: 1000,
		MaxPixels:  imaging.DefaultMaxPixels,
	}
}

func (c Config) Check() error {
	if len(c.Languages) == 0 {
		return errors.New("ocr.languages must not be empty")
	}

	if c.MinWidthPx < 0 {
		return errors.New("ocr.min_width_px must not be negative")
	}

	if c.MaxPixels < 0 {
		return errors.New("ocr.max_pixels must not be negative")
	}

	return nil
}
