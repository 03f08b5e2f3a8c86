package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs a function inside one database transaction. Checkout
// depends on this instead of *gorm.DB directly so the transactional contract
// can be exercised in tests without a live database.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}
