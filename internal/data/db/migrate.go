package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/shop-backend/internal/domain/shop"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&shop.Member{},
		&shop.Item{},
		&shop.Delivery{},
		&shop.Order{},
		&shop.OrderLine{},
	)
}
