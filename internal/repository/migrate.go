package repository

import (
	"motofix/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the engine uses. Order
// matters: referenced tables first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.MechanicProfile{},
		&domain.Motorcycle{},
		&bookingModel{},
		&domain.WorkOffer{},
		&domain.Notification{},
		&domain.ChatRoom{},
		&domain.Message{},
	)
}
