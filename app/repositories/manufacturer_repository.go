package repositories

import (
	"context"

	"github.com/avtozap/carservice/app/models"
	"gorm.io/gorm"
)

type ManufacturerRepository interface {
	All(ctx context.Context) ([]models.Manufacturer, error)
	Create(ctx context.Context, manufacturer *models.Manufacturer) error
}

type gormManufacturerRepository struct {
	db *gorm.DB
}

func NewManufacturerRepository(db *gorm.DB) ManufacturerRepository {
	return &gormManufacturerRepository{db: db}
}

func (r *gormManufacturerRepository) All(ctx context.Context) ([]models.Manufacturer, error) {
	var manufacturers []models.Manufacturer
	if err := r.db.WithContext(ctx).Order("name").Find(&manufacturers).Error; err != nil {
		return nil, err
	}
	return manufacturers, nil
}

func (r *gormManufacturerRepository) Create(ctx context.Context, manufacturer *models.Manufacturer) error {
	return r.db.WithContext(ctx).Create(manufacturer).Error
}
