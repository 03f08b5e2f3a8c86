package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is the single active basket of one identity. TotalProducts and
// TotalCost are derived aggregates: only CartService.Recalculate writes them.
//
// ActiveKey enforces "exactly one active cart per identity" at the database
// level. It holds "customer:<id>" for logged-in owners or "session:<key>" for
// anonymous ones while InOrder is false, and is set to NULL at checkout.
// MySQL unique indexes ignore NULLs, so any number of ordered carts can pile
// up in history while a second concurrent create of an active cart fails.
type Cart struct {
	ID               string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CustomerID       *string   `gorm:"size:36;index"`
	Customer         *Customer `gorm:"foreignKey:CustomerID"`
	SessionKey       string    `gorm:"size:64;index"`
	Items            []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalProducts    int             `gorm:"not null;default:0"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0.00"`
	InOrder          bool            `gorm:"not null;default:false"`
	ForAnonymousUser bool            `gorm:"not null;default:false"`
	ActiveKey        *string         `gorm:"size:100;uniqueIndex"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// CustomerActiveKey and SessionActiveKey build the ActiveKey value for the
// two identity flavors.
func CustomerActiveKey(customerID string) string { return "customer:" + customerID }
func SessionActiveKey(sessionKey string) string  { return "session:" + sessionKey }
