package models

import "gorm.io/gorm"

// AutoMigrate creates the reservation and reminder tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Reservation{},
		&ReminderLog{},
	)
}
