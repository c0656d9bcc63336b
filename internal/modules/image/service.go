package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/tasks"
)

const DefaultMaxSize = 5 << 20

// allowedTypes maps accepted MIME types to the stored file extension.
var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Store interface {
	Create(ctx context.Context, img *domain.Image) error
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
	List(ctx context.Context, limit, offset int) ([]domain.Image, error)
}

type Service struct {
	images  Store
	queue   tasks.Enqueuer
	dir     string
	maxSize int64
	log     *zap.Logger
}

func NewService(images Store, queue tasks.Enqueuer, dir string, maxSize int64, log *zap.Logger) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Service{
		images:  images,
		queue:   queue,
		dir:     dir,
		maxSize: maxSize,
		log:     log.Named("images"),
	}
}

// Upload validates an image, stores it under a random name, records its
// metadata and schedules resizing. A failed enqueue does not fail the upload.
func (s *Service) Upload(ctx context.Context, fh *multipart.FileHeader) (*domain.Image, error) {
	declared := strings.ToLower(strings.TrimSpace(strings.Split(fh.Header.Get("Content-Type"), ";")[0]))
	if declared != "" && declared != "application/octet-stream" {
		if _, ok := allowedTypes[declared]; !ok {
			return nil, apperr.ErrUnsupportedFormat.WithDetail("Неподдерживаемый тип файла: " + declared)
		}
	}

	if fh.Size > s.maxSize {
		return nil, s.tooLarge()
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, apperr.ErrEmptyFile
	}
	if int64(len(data)) > s.maxSize {
		return nil, s.tooLarge()
	}

	if _, err := tasks.CheckDimensions(bytes.NewReader(data)); err != nil {
		if errors.Is(err, tasks.ErrTooManyPixels) {
			return nil, apperr.ErrInvalidImage.WithDetail("Слишком большое разрешение изображения!")
		}
		return nil, apperr.ErrInvalidImage
	}
	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.ErrInvalidImage
	}

	sniffed := mimetype.Detect(data).String()
	ext, ok := allowedTypes[sniffed]
	if !ok {
		return nil, apperr.ErrUnsupportedFormat.WithDetail("Неподдерживаемый формат изображения: " + sniffed)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + "." + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	contentType := declared
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = sniffed
	}
	bounds := decoded.Bounds()
	img := &domain.Image{
		Filename:    name,
		Path:        path,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Variants:    []domain.ImageVariant{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.images.Create(ctx, img); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("save image record: %w", err)
	}

	s.enqueueResize(ctx, path)
	return img, nil
}

// MaxSize is the largest accepted file in bytes.
func (s *Service) MaxSize() int64 { return s.maxSize }

func (s *Service) tooLarge() error {
	return apperr.ErrFileTooLarge.WithDetail(
		fmt.Sprintf("Файл слишком большой. Максимальный размер файла: %.2f МБ", float64(s.maxSize)/(1<<20)))
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

func (s *Service) List(ctx context.Context, q ListImagesQuery) ([]domain.Image, error) {
	return s.images.List(ctx, q.PerPage, q.PerPage*(q.Page-1))
}

func (s *Service) enqueueResize(ctx context.Context, path string) {
	if s.queue == nil {
		return
	}
	task, err := tasks.NewTask(tasks.TaskResizeImage, tasks.ResizeImagePayload{Path: path, Sizes: tasks.DefaultResizeWidths})
	if err == nil {
		err = s.queue.Enqueue(ctx, task)
	}
	if err != nil {
		s.log.Warn("resize task not enqueued", zap.String("path", path), zap.Error(err))
	}
}
