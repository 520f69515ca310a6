package app

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/shop-backend/internal/data/cache"
	"github.com/yungbote/shop-backend/internal/data/repos"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type Repos struct {
	Members repos.MemberRepo
	Items   repos.ItemRepo
	Orders  repos.OrderRepo
}

// wireRepos puts the member read-through cache in front of the member repo
// when a redis client is available.
func wireRepos(db *gorm.DB, log *logger.Logger, rdb *redis.Client, memberTTL time.Duration) Repos {
	log.Info("Wiring repos...")
	var members repos.MemberRepo = repos.NewMemberRepo(db, log)
	if rdb != nil {
		members = cache.NewCachedMemberRepo(members, rdb, memberTTL, log)
	}
	return Repos{
		Members: members,
		Items:   repos.NewItemRepo(db, log),
		Orders:  repos.NewOrderRepo(db, log),
	}
}
