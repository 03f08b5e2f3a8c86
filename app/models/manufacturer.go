package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Manufacturer struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:150;not null"`
	Country   string `gorm:"size:150"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Manufacturer) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
