package fakers

import (
	"math/rand"

	"github.com/avtozap/carservice/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var countries = []string{"Germany", "Japan", "Italy", "France", "Sweden", "USA"}

func ManufacturerFaker() *models.Manufacturer {
	return &models.Manufacturer{
		ID:      uuid.New().String(),
		Name:    faker.LastName(),
		Country: countries[rand.Intn(len(countries))],
	}
}

func CategoryFaker(name string) *models.Category {
	return &models.Category{
		ID:   uuid.New().String(),
		Name: name,
		Slug: slug.Make(name),
	}
}

func partBaseFaker(manufacturer *models.Manufacturer, category *models.Category) models.PartBase {
	title := faker.Word() + " " + faker.Word()
	price := decimal.NewFromInt(int64(rand.Intn(49000)+1000)).Div(decimal.NewFromInt(10)).Round(2)

	return models.PartBase{
		ID:             uuid.New().String(),
		ManufacturerID: manufacturer.ID,
		Title:          title,
		Code:           faker.UUIDDigit()[:10],
		CategoryID:     category.ID,
		Slug:           slug.Make(title + "-" + uuid.NewString()[:6]),
		Image:          "/images/parts/placeholder.png",
		Price:          price,
	}
}

var filterTypes = []string{"oil", "air", "fuel", "cabin"}
var padMaterials = []string{"ceramic", "semi-metallic", "organic"}
var springTypes = []string{"coil", "leaf", "torsion"}
var injectorTypes = []string{"single-point", "multi-point", "direct"}

func FilterFaker(m *models.Manufacturer, c *models.Category) *models.Filter {
	return &models.Filter{
		PartBase:   partBaseFaker(m, c),
		FilterType: filterTypes[rand.Intn(len(filterTypes))],
	}
}

func BrakesFaker(m *models.Manufacturer, c *models.Category) *models.Brakes {
	return &models.Brakes{
		PartBase:     partBaseFaker(m, c),
		DiscDiameter: 240 + rand.Intn(120),
		PadMaterial:  padMaterials[rand.Intn(len(padMaterials))],
	}
}

func IgnitionFaker(m *models.Manufacturer, c *models.Category) *models.Ignition {
	return &models.Ignition{
		PartBase:  partBaseFaker(m, c),
		SparkGap:  "0.8mm",
		CoilCount: 1 + rand.Intn(4),
	}
}

func SuspensionFaker(m *models.Manufacturer, c *models.Category) *models.Suspension {
	return &models.Suspension{
		PartBase:   partBaseFaker(m, c),
		SpringType: springTypes[rand.Intn(len(springTypes))],
	}
}

func ExhaustSystemFaker(m *models.Manufacturer, c *models.Category) *models.ExhaustSystem {
	return &models.ExhaustSystem{
		PartBase:     partBaseFaker(m, c),
		PipeDiameter: 45 + rand.Intn(30),
	}
}

func FuelSystemFaker(m *models.Manufacturer, c *models.Category) *models.FuelSystem {
	return &models.FuelSystem{
		PartBase:     partBaseFaker(m, c),
		InjectorType: injectorTypes[rand.Intn(len(injectorTypes))],
	}
}
