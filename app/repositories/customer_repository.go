package repositories

import (
	"context"
	"errors"

	"github.com/avtozap/carservice/app/models"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	// GetOrCreateByUserID backs cart resolution: the customer row appears
	// lazily on a user's first shop interaction.
	GetOrCreateByUserID(ctx context.Context, userID string) (*models.Customer, error)
}

type gormCustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &gormCustomerRepository{db: db}
}

func (r *gormCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Preload("User").First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *gormCustomerRepository) GetByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *gormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *gormCustomerRepository) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	customer, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	fresh := &models.Customer{UserID: userID}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		// The unique index on user_id decides races; the loser re-reads.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	return fresh, nil
}
