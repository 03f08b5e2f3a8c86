package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PartKind tags which variant table a polymorphic part reference points at.
type PartKind string

const (
	KindFilter        PartKind = "filter"
	KindBrakes        PartKind = "brakes"
	KindIgnition      PartKind = "ignition"
	KindSuspension    PartKind = "suspension"
	KindExhaustSystem PartKind = "exhaust_system"
	KindFuelSystem    PartKind = "fuel_system"
)

// PartKinds lists every variant, in the order they appear in the catalog.
var PartKinds = []PartKind{
	KindFilter,
	KindBrakes,
	KindIgnition,
	KindSuspension,
	KindExhaustSystem,
	KindFuelSystem,
}

func (k PartKind) Valid() bool {
	switch k {
	case KindFilter, KindBrakes, KindIgnition, KindSuspension, KindExhaustSystem, KindFuelSystem:
		return true
	}
	return false
}

// PartRef is the tagged union used by cart line items instead of a
// database-level generic relation: the kind picks the variant table,
// the ID picks the row.
type PartRef struct {
	Kind PartKind
	ID   string
}

// PartBase carries the catalog fields shared by all six variants.
// Each variant embeds it, so every variant table has its own slug column
// with its own unique index.
type PartBase struct {
	ID             string       `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ManufacturerID string       `gorm:"size:36;index;not null"`
	Manufacturer   Manufacturer `gorm:"foreignKey:ManufacturerID"`
	Title          string       `gorm:"size:150;not null"`
	Code           string       `gorm:"size:100;not null"`
	CategoryID     string       `gorm:"size:36;index;not null"`
	Category       Category     `gorm:"foreignKey:CategoryID"`
	Slug           string       `gorm:"size:150;not null;uniqueIndex"`
	Image          string       `gorm:"size:255"`
	Price          decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *PartBase) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// Base lets code generic over the six variants reach the shared fields.
func (p PartBase) Base() PartBase { return p }

type Filter struct {
	PartBase   `gorm:"embedded"`
	FilterType string `gorm:"size:100"`
}

type Brakes struct {
	PartBase     `gorm:"embedded"`
	DiscDiameter int
	PadMaterial  string `gorm:"size:100"`
}

type Ignition struct {
	PartBase  `gorm:"embedded"`
	SparkGap  string `gorm:"size:50"`
	CoilCount int
}

type Suspension struct {
	PartBase   `gorm:"embedded"`
	SpringType string `gorm:"size:100"`
}

type ExhaustSystem struct {
	PartBase     `gorm:"embedded"`
	PipeDiameter int
}

type FuelSystem struct {
	PartBase     `gorm:"embedded"`
	InjectorType string `gorm:"size:100"`
}

func (Filter) Kind() PartKind        { return KindFilter }
func (Brakes) Kind() PartKind        { return KindBrakes }
func (Ignition) Kind() PartKind      { return KindIgnition }
func (Suspension) Kind() PartKind    { return KindSuspension }
func (ExhaustSystem) Kind() PartKind { return KindExhaustSystem }
func (FuelSystem) Kind() PartKind    { return KindFuelSystem }

// Part is the read-side view of any variant row: the common fields plus the
// kind tag, which is what handlers and the cart need.
type Part struct {
	Kind PartKind
	PartBase
}

func (p Part) Ref() PartRef {
	return PartRef{Kind: p.Kind, ID: p.ID}
}
