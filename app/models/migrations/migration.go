package migrations

import (
	"github.com/avtozap/carservice/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Manufacturer{},
		&models.Category{},
		&models.Filter{},
		&models.Brakes{},
		&models.Ignition{},
		&models.Suspension{},
		&models.ExhaustSystem{},
		&models.FuelSystem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	)
}
