package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusNew        = "new"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "ready"
	OrderStatusCompleted  = "completed"
)

const (
	BuyingTypeSelfPickup = "self_pickup"
	BuyingTypeDelivery   = "delivery"
)

// orderStatusNext encodes the linear status machine. There are no reverse
// transitions.
var orderStatusNext = map[string]string{
	OrderStatusNew:        OrderStatusInProgress,
	OrderStatusInProgress: OrderStatusReady,
	OrderStatusReady:      OrderStatusCompleted,
}

// CanTransitionOrderStatus reports whether to is the single allowed
// successor of from.
func CanTransitionOrderStatus(from, to string) bool {
	return orderStatusNext[from] == to
}

// Order freezes a cart into a purchase record. It references its source cart
// for history but does not own it; the cart's InOrder flag is flipped in the
// same transaction that creates the order.
type Order struct {
	ID         string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CustomerID string    `gorm:"size:36;index;not null"`
	Customer   *Customer `gorm:"foreignKey:CustomerID"`
	FirstName  string    `gorm:"size:100;not null"`
	LastName   string    `gorm:"size:100;not null"`
	Phone      string    `gorm:"size:20;not null"`
	Address    string    `gorm:"size:255;not null"`
	Status     string    `gorm:"size:30;not null;default:'new'"`
	BuyingType string    `gorm:"size:30;not null;default:'self_pickup'"`
	Comment    string    `gorm:"type:text"`
	OrderDate  time.Time `gorm:"not null"`
	CartID     string    `gorm:"size:36;index;not null"`
	Cart       *Cart     `gorm:"foreignKey:CartID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
