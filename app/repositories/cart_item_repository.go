package repositories

import (
	"context"
	"errors"

	"github.com/avtozap/carservice/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItemRepository interface {
	// GetOrCreate inserts the item unless a line for the same
	// (cart, part kind, part id) already exists, in which case the existing
	// row is loaded into item. The returned flag reports whether a row was
	// created.
	GetOrCreate(ctx context.Context, item *models.CartItem) (bool, error)
	GetByCartAndPart(ctx context.Context, cartID string, ref models.PartRef) (*models.CartItem, error)
	Update(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, item *models.CartItem) error
	ListByCart(ctx context.Context, cartID string) ([]models.CartItem, error)
	// Totals aggregates the cart's lines: item count and cost sum.
	Totals(ctx context.Context, cartID string) (int, decimal.Decimal, error)
}

type gormCartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepository {
	return &gormCartItemRepository{db: db}
}

func (r *gormCartItemRepository) GetOrCreate(ctx context.Context, item *models.CartItem) (bool, error) {
	err := r.db.WithContext(ctx).Create(item).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, err
	}
	// Lost the insert race or the line simply exists: reuse it.
	existing, err := r.GetByCartAndPart(ctx, item.CartID, item.Ref())
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, gorm.ErrRecordNotFound
	}
	*item = *existing
	return false, nil
}

func (r *gormCartItemRepository) GetByCartAndPart(ctx context.Context, cartID string, ref models.PartRef) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "cart_id = ? AND part_kind = ? AND part_id = ?", cartID, ref.Kind, ref.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormCartItemRepository) Update(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *gormCartItemRepository) Delete(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *gormCartItemRepository) ListByCart(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormCartItemRepository) Totals(ctx context.Context, cartID string) (int, decimal.Decimal, error) {
	var row struct {
		Count int64
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("COUNT(id) AS count, COALESCE(SUM(total_cost), 0) AS total").
		Where("cart_id = ?", cartID).
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return int(row.Count), row.Total, nil
}
