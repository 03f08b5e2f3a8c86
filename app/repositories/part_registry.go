package repositories

import (
	"context"
	"fmt"

	"github.com/avtozap/carservice/app/models"
	"gorm.io/gorm"
)

// PartRegistry routes a PartRef to the repository of its variant table. It is
// the Go rendition of a generic relation: the kind tag picks the table, the
// ID picks the row.
type PartRegistry struct {
	repos map[models.PartKind]PartRepository
}

func NewPartRegistry(db *gorm.DB) *PartRegistry {
	return &PartRegistry{
		repos: map[models.PartKind]PartRepository{
			models.KindFilter:        newVariantRepository[models.Filter](db),
			models.KindBrakes:        newVariantRepository[models.Brakes](db),
			models.KindIgnition:      newVariantRepository[models.Ignition](db),
			models.KindSuspension:    newVariantRepository[models.Suspension](db),
			models.KindExhaustSystem: newVariantRepository[models.ExhaustSystem](db),
			models.KindFuelSystem:    newVariantRepository[models.FuelSystem](db),
		},
	}
}

func (reg *PartRegistry) Repo(kind models.PartKind) (PartRepository, bool) {
	repo, ok := reg.repos[kind]
	return repo, ok
}

// Resolve returns the part a reference points at, or (nil, nil) when either
// the kind is unknown or the row is gone.
func (reg *PartRegistry) Resolve(ctx context.Context, ref models.PartRef) (*models.Part, error) {
	repo, ok := reg.repos[ref.Kind]
	if !ok {
		return nil, nil
	}
	return repo.GetByID(ctx, ref.ID)
}

func (reg *PartRegistry) ResolveSlug(ctx context.Context, kind models.PartKind, slug string) (*models.Part, error) {
	repo, ok := reg.repos[kind]
	if !ok {
		return nil, nil
	}
	return repo.GetBySlug(ctx, slug)
}

// AllParts walks every variant table in catalog order.
func (reg *PartRegistry) AllParts(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	for _, kind := range models.PartKinds {
		rows, err := reg.repos[kind].All(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing %s parts: %w", kind, err)
		}
		parts = append(parts, rows...)
	}
	return parts, nil
}

func (reg *PartRegistry) PartsByCategory(ctx context.Context, categoryID string) ([]models.Part, error) {
	var parts []models.Part
	for _, kind := range models.PartKinds {
		rows, err := reg.repos[kind].ByCategory(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("listing %s parts for category %s: %w", kind, categoryID, err)
		}
		parts = append(parts, rows...)
	}
	return parts, nil
}
