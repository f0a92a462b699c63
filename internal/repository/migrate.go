package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every row model owned by
// this package. Used by cmd/seed and the test suites; production schemas
// are managed out of band.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&hotelModel{},
		&roomModel{},
		&serviceModel{},
		&reservationModel{},
		&reservationServiceModel{},
		&invoiceModel{},
		&invoiceServiceModel{},
		&eventModel{},
	)
}
