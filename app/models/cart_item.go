package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one line of a cart: a polymorphic part reference plus a
// quantity. The composite unique index makes get-or-create safe under
// concurrent adds of the same part.
//
// TotalCost is quantity times the part price captured at the last save. A
// later catalog price change does not rewrite existing lines.
type CartItem struct {
	ID         string   `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CustomerID *string  `gorm:"size:36;index"`
	CartID     string   `gorm:"size:36;not null;uniqueIndex:idx_cart_part,priority:1"`
	Cart       *Cart    `gorm:"foreignKey:CartID"`
	PartKind   PartKind `gorm:"size:30;not null;uniqueIndex:idx_cart_part,priority:2"`
	PartID     string   `gorm:"size:36;not null;uniqueIndex:idx_cart_part,priority:3"`
	Qty        int      `gorm:"not null;default:1"`
	TotalCost  decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}

func (ci *CartItem) Ref() PartRef {
	return PartRef{Kind: ci.PartKind, ID: ci.PartID}
}
