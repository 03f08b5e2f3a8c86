package seeders

import (
	"github.com/avtozap/carservice/app/db/fakers"
	"github.com/avtozap/carservice/app/models"
	"gorm.io/gorm"
)

var categoryNames = []string{
	"Filters",
	"Brakes",
	"Ignition",
	"Suspension",
	"Exhaust systems",
	"Fuel systems",
}

const partsPerVariant = 5

// DBSeed fills the catalog with sample reference data: a handful of
// manufacturers, one category per part variant, and a few parts in each
// variant table.
func DBSeed(db *gorm.DB) error {
	manufacturers := make([]*models.Manufacturer, 0, 4)
	for i := 0; i < 4; i++ {
		m := fakers.ManufacturerFaker()
		if err := db.Create(m).Error; err != nil {
			return err
		}
		manufacturers = append(manufacturers, m)
	}

	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		c := fakers.CategoryFaker(name)
		if err := db.Create(c).Error; err != nil {
			return err
		}
		categories = append(categories, c)
	}

	pick := func(i int) *models.Manufacturer { return manufacturers[i%len(manufacturers)] }

	for i := 0; i < partsPerVariant; i++ {
		if err := db.Create(fakers.FilterFaker(pick(i), categories[0])).Error; err != nil {
			return err
		}
		if err := db.Create(fakers.BrakesFaker(pick(i+1), categories[1])).Error; err != nil {
			return err
		}
		if err := db.Create(fakers.IgnitionFaker(pick(i+2), categories[2])).Error; err != nil {
			return err
		}
		if err := db.Create(fakers.SuspensionFaker(pick(i+3), categories[3])).Error; err != nil {
			return err
		}
		if err := db.Create(fakers.ExhaustSystemFaker(pick(i), categories[4])).Error; err != nil {
			return err
		}
		if err := db.Create(fakers.FuelSystemFaker(pick(i+1), categories[5])).Error; err != nil {
			return err
		}
	}

	return nil
}
