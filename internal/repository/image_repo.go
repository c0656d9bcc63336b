package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

type imageModel struct {
	ID          int64          `gorm:"column:id;primaryKey"`
	Filename    string         `gorm:"column:filename;size:255;not null;uniqueIndex"`
	Path        string         `gorm:"column:path;not null"`
	ContentType string         `gorm:"column:content_type;size:50;not null"`
	Size        int64          `gorm:"column:size;not null"`
	Width       int            `gorm:"column:width"`
	Height      int            `gorm:"column:height"`
	Variants    datatypes.JSON `gorm:"column:variants"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

func (imageModel) TableName() string { return "images" }

func toDomainImage(m imageModel) (*domain.Image, error) {
	img := &domain.Image{
		ID:          m.ID,
		Filename:    m.Filename,
		Path:        m.Path,
		ContentType: m.ContentType,
		Size:        m.Size,
		Width:       m.Width,
		Height:      m.Height,
		Variants:    []domain.ImageVariant{},
		CreatedAt:   m.CreatedAt,
	}
	if len(m.Variants) > 0 && string(m.Variants) != "null" {
		if err := json.Unmarshal(m.Variants, &img.Variants); err != nil {
			return nil, fmt.Errorf("decode variants of image %d: %w", m.ID, err)
		}
	}
	return img, nil
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) error {
	variants, err := json.Marshal(nonNilVariants(img.Variants))
	if err != nil {
		return err
	}
	m := imageModel{
		Filename:    img.Filename,
		Path:        img.Path,
		ContentType: img.ContentType,
		Size:        img.Size,
		Width:       img.Width,
		Height:      img.Height,
		Variants:    datatypes.JSON(variants),
		CreatedAt:   img.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	saved, err := toDomainImage(m)
	if err != nil {
		return err
	}
	*img = *saved
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	var m imageModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainImage(m)
}

// List returns images newest first.
func (r *ImageRepository) List(ctx context.Context, limit, offset int) ([]domain.Image, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []imageModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Image, 0, len(rows))
	for _, m := range rows {
		img, err := toDomainImage(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *img)
	}
	return out, nil
}

// SetVariantsByPath records resized copies on the image stored at path.
func (r *ImageRepository) SetVariantsByPath(ctx context.Context, path string, variants []domain.ImageVariant) error {
	raw, err := json.Marshal(nonNilVariants(variants))
	if err != nil {
		return err
	}
	tx := r.db.WithContext(ctx).Model(&imageModel{}).
		Where("path = ?", path).
		Update("variants", datatypes.JSON(raw))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func nonNilVariants(v []domain.ImageVariant) []domain.ImageVariant {
	if v == nil {
		return []domain.ImageVariant{}
	}
	return v
}
