package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/shop-backend/internal/data/repos/shop"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type MemberRepo = shop.MemberRepo
type ItemRepo = shop.ItemRepo
type OrderRepo = shop.OrderRepo

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return shop.NewMemberRepo(db, baseLog)
}
func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return shop.NewItemRepo(db, baseLog)
}
func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return shop.NewOrderRepo(db, baseLog)
}
