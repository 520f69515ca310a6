package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/shop-backend/internal/data/repos"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

const (
	notFoundMarker = "notfound"
	notFoundTTL    = time.Minute
)

// CachedMemberRepo is a read-through cache in front of a MemberRepo for
// lookups by id. Reads inside a transaction bypass the cache. Redis failures
// degrade to the underlying repo.
type CachedMemberRepo struct {
	repos.MemberRepo

	redis *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

var _ repos.MemberRepo = (*CachedMemberRepo)(nil)

func NewCachedMemberRepo(real repos.MemberRepo, rdb *redis.Client, ttl time.Duration, baseLog *logger.Logger) *CachedMemberRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedMemberRepo{
		MemberRepo: real,
		redis:      rdb,
		ttl:        ttl,
		log:        baseLog.With("repo", "CachedMemberRepo"),
	}
}

func memberKey(id uint) string {
	return fmt.Sprintf("member:%d", id)
}

// Create drops any cached entry for the new id once the row is visible. Inside
// a transaction that is only after commit, so the caller must call Invalidate
// then.
func (c *CachedMemberRepo) Create(dbc dbctx.Context, member *types.Member) (*types.Member, error) {
	out, err := c.MemberRepo.Create(dbc, member)
	if err != nil || out == nil {
		return out, err
	}
	if dbc.Tx == nil {
		c.invalidate(dbc, out.ID)
	}
	return out, nil
}

// Invalidate drops the cached entry, including a not-found marker, for id.
func (c *CachedMemberRepo) Invalidate(ctx context.Context, id uint) {
	c.invalidate(dbctx.Context{Ctx: ctx}, id)
}

func (c *CachedMemberRepo) FindOne(dbc dbctx.Context, id uint) (*types.Member, error) {
	if c.redis == nil || dbc.Tx != nil || id == 0 {
		return c.MemberRepo.FindOne(dbc, id)
	}
	key := memberKey(id)

	data, err := c.redis.Get(dbc.Ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, nil
		}
		var member types.Member
		if err := json.Unmarshal(data, &member); err != nil {
			c.log.Warn("failed to decode cached member, continuing with db", "member_id", id, "error", err)
			break
		}
		return &member, nil
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("redis get failed, continuing with db", "member_id", id, "error", err)
	}

	member, err := c.MemberRepo.FindOne(dbc, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		if err := c.redis.Set(dbc.Ctx, key, notFoundMarker, notFoundTTL).Err(); err != nil {
			c.log.Warn("failed to cache member miss", "member_id", id, "error", err)
		}
		return nil, nil
	}

	payload, err := json.Marshal(member)
	if err != nil {
		c.log.Warn("failed to encode member", "member_id", id, "error", err)
		return member, nil
	}
	if err := c.redis.Set(dbc.Ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("failed to cache member", "member_id", id, "error", err)
	}
	return member, nil
}

func (c *CachedMemberRepo) invalidate(dbc dbctx.Context, id uint) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(dbc.Ctx, memberKey(id)).Err(); err != nil {
		c.log.Warn("failed to invalidate member cache", "member_id", id, "error", err)
	}
}
