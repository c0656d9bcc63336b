package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

const jpegQuality = 85

// DefaultResizeWidths are the widths generated for every upload.
var DefaultResizeWidths = []int{1000, 500, 200}

type ResizeImagePayload struct {
	Path  string `json:"path"`
	Sizes []int  `json:"sizes,omitempty"`
}

// VariantRecorder stores the generated copies on the image row.
type VariantRecorder interface {
	SetVariantsByPath(ctx context.Context, path string, variants []domain.ImageVariant) error
}

type Resizer struct {
	images VariantRecorder
	log    *zap.Logger
}

func NewResizer(images VariantRecorder, log *zap.Logger) *Resizer {
	return &Resizer{images: images, log: log.Named("resize")}
}

func (r *Resizer) Handle(ctx context.Context, raw json.RawMessage) error {
	var p ResizeImagePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode resize payload: %w", err)
	}
	variants, err := r.Resize(p.Path, p.Sizes)
	if err != nil {
		return err
	}
	if r.images == nil {
		return nil
	}
	if err := r.images.SetVariantsByPath(ctx, p.Path, variants); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.log.Warn("no image row for resized file", zap.String("path", p.Path))
			return nil
		}
		return fmt.Errorf("record variants of %s: %w", p.Path, err)
	}
	return nil
}

// Resize writes "<stem>_<w>px<ext>" next to path for each positive width.
// A failing width is logged and skipped.
func (r *Resizer) Resize(path string, sizes []int) ([]domain.ImageVariant, error) {
	if len(sizes) == 0 {
		sizes = DefaultResizeWidths
	}

	if err := checkFileDimensions(path); err != nil {
		return nil, fmt.Errorf("check image %s: %w", path, err)
	}

	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	bounds := src.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		return nil, fmt.Errorf("image %s has zero size", path)
	}

	dir := filepath.Dir(path)
	ext := strings.ToLower(filepath.Ext(path))
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	format, outExt := outputFormat(ext)

	variants := make([]domain.ImageVariant, 0, len(sizes))
	for _, w := range sizes {
		if w <= 0 {
			r.log.Warn("skipping non-positive width", zap.Int("width", w), zap.String("path", path))
			continue
		}
		h := int(math.Round(float64(origH) * float64(w) / float64(origW)))
		if h < 1 {
			h = 1
		}

		out := filepath.Join(dir, fmt.Sprintf("%s_%dpx%s", stem, w, outExt))
		if err := writeVariant(src, w, h, format, out); err != nil {
			r.log.Error("resize failed", zap.Int("width", w), zap.String("path", path), zap.Error(err))
			continue
		}
		r.log.Info("variant written", zap.String("path", out), zap.Int("width", w), zap.Int("height", h))
		variants = append(variants, domain.ImageVariant{Width: w, Height: h, Path: filepath.ToSlash(out)})
	}
	return variants, nil
}

func writeVariant(src image.Image, w, h int, format imaging.Format, out string) error {
	var dst image.Image = imaging.Resize(src, w, h, imaging.Lanczos)
	if format == imaging.JPEG {
		// jpeg has no alpha channel
		bg := imaging.New(w, h, color.White)
		dst = imaging.Overlay(bg, dst, image.Pt(0, 0), 1.0)
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".resize-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	err = imaging.Encode(tmp, dst, format, imaging.JPEGQuality(jpegQuality))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, out); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// outputFormat maps the source extension to an encoder. WebP has no Go encoder, so it becomes PNG.
func outputFormat(ext string) (imaging.Format, string) {
	switch ext {
	case ".jpg", ".jpeg":
		return imaging.JPEG, ext
	default:
		return imaging.PNG, ".png"
	}
}
