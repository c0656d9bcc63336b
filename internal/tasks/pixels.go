package tasks

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

// MaxImagePixels caps width*height of any image that gets decoded in full.
const MaxImagePixels = 89_478_485

var ErrTooManyPixels = errors.New("image exceeds pixel limit")

// CheckDimensions reads only the image header and rejects images whose full
// decode would exceed MaxImagePixels.
func CheckDimensions(r io.Reader) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("image has zero size %dx%d", cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return cfg, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func checkFileDimensions(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = CheckDimensions(f)
	return err
}
