package repositories

import (
	"context"
	"errors"

	"github.com/avtozap/carservice/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCartAlreadyOrdered is returned by MarkOrdered when the cart's in_order
// flag was already set, which means another checkout won.
var ErrCartAlreadyOrdered = errors.New("cart is already part of an order")

type CartRepository interface {
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	GetWithItems(ctx context.Context, id string) (*models.Cart, error)
	GetOrCreateActiveForCustomer(ctx context.Context, customerID string) (*models.Cart, error)
	GetOrCreateActiveForSession(ctx context.Context, sessionKey string) (*models.Cart, error)
	UpdateTotals(ctx context.Context, cartID string, totalProducts int, totalCost decimal.Decimal) error
	GetForUpdate(ctx context.Context, tx *gorm.DB, cartID string) (*models.Cart, error)
	MarkOrdered(ctx context.Context, tx *gorm.DB, cartID string) error
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

func (r *gormCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).First(&cart, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) GetWithItems(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items").First(&cart, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) GetOrCreateActiveForCustomer(ctx context.Context, customerID string) (*models.Cart, error) {
	activeKey := models.CustomerActiveKey(customerID)
	return r.getOrCreateActive(ctx, activeKey, func() *models.Cart {
		return &models.Cart{
			CustomerID: &customerID,
			ActiveKey:  &activeKey,
		}
	})
}

func (r *gormCartRepository) GetOrCreateActiveForSession(ctx context.Context, sessionKey string) (*models.Cart, error) {
	activeKey := models.SessionActiveKey(sessionKey)
	return r.getOrCreateActive(ctx, activeKey, func() *models.Cart {
		return &models.Cart{
			SessionKey:       sessionKey,
			ForAnonymousUser: true,
			ActiveKey:        &activeKey,
		}
	})
}

// getOrCreateActive relies on the unique index over active_key: when two
// requests race on the create, the loser gets a duplicate-key error and
// re-reads the winner's row.
func (r *gormCartRepository) getOrCreateActive(ctx context.Context, activeKey string, build func() *models.Cart) (*models.Cart, error) {
	cart, err := r.findActive(ctx, activeKey)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	fresh := build()
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.findActive(ctx, activeKey)
		}
		return nil, err
	}
	return fresh, nil
}

func (r *gormCartRepository) findActive(ctx context.Context, activeKey string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "active_key = ? AND in_order = ?", activeKey, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// UpdateTotals is the single writer of the derived aggregate columns.
func (r *gormCartRepository) UpdateTotals(ctx context.Context, cartID string, totalProducts int, totalCost decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"total_products": totalProducts,
			"total_cost":     totalCost,
		}).Error
}

func (r *gormCartRepository) GetForUpdate(ctx context.Context, tx *gorm.DB, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// MarkOrdered flips in_order and releases the active-key slot in one guarded
// UPDATE. Zero rows affected means a concurrent checkout already consumed
// the cart.
func (r *gormCartRepository) MarkOrdered(ctx context.Context, tx *gorm.DB, cartID string) error {
	res := tx.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND in_order = ?", cartID, false).
		Updates(map[string]interface{}{
			"in_order":   true,
			"active_key": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartAlreadyOrdered
	}
	return nil
}
