package repositories

import (
	"context"
	"errors"

	"github.com/avtozap/carservice/app/models"
	"gorm.io/gorm"
)

// PartRepository reads one variant table. All lookups return (nil, nil) when
// the row is absent; callers decide what absence means.
type PartRepository interface {
	GetByID(ctx context.Context, id string) (*models.Part, error)
	GetBySlug(ctx context.Context, slug string) (*models.Part, error)
	All(ctx context.Context) ([]models.Part, error)
	ByCategory(ctx context.Context, categoryID string) ([]models.Part, error)
}

// partVariant is what a variant struct must expose for the generic
// repository to flatten it into a models.Part.
type partVariant interface {
	Kind() models.PartKind
	Base() models.PartBase
}

type variantRepository[T any, PT interface {
	*T
	partVariant
}] struct {
	db *gorm.DB
}

func newVariantRepository[T any, PT interface {
	*T
	partVariant
}](db *gorm.DB) PartRepository {
	return &variantRepository[T, PT]{db: db}
}

func (r *variantRepository[T, PT]) GetByID(ctx context.Context, id string) (*models.Part, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *variantRepository[T, PT]) GetBySlug(ctx context.Context, slug string) (*models.Part, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *variantRepository[T, PT]) first(ctx context.Context, query string, arg string) (*models.Part, error) {
	var row T
	err := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Preload("Category").
		First(&row, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	v := PT(&row)
	return &models.Part{Kind: v.Kind(), PartBase: v.Base()}, nil
}

func (r *variantRepository[T, PT]) All(ctx context.Context) ([]models.Part, error) {
	var rows []T
	if err := r.db.WithContext(ctx).Preload("Manufacturer").Preload("Category").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.flatten(rows), nil
}

func (r *variantRepository[T, PT]) ByCategory(ctx context.Context, categoryID string) ([]models.Part, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.flatten(rows), nil
}

func (r *variantRepository[T, PT]) flatten(rows []T) []models.Part {
	parts := make([]models.Part, 0, len(rows))
	for i := range rows {
		v := PT(&rows[i])
		parts = append(parts, models.Part{Kind: v.Kind(), PartBase: v.Base()})
	}
	return parts
}
