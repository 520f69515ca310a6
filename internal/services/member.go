package services

import (
	"context"

	"github.com/yungbote/shop-backend/internal/data/repos"
	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type MemberService interface {
	// Join registers a member and returns its id. A taken name fails with
	// shop.ErrDuplicateMember.
	Join(ctx context.Context, name string, address types.Address) (uint, error)
	FindMembers(ctx context.Context) ([]*types.Member, error)
	// FindOne returns nil, nil when the member does not exist.
	FindOne(ctx context.Context, id uint) (*types.Member, error)
}

// memberCacheInvalidator is implemented by member repos that cache lookups
// and need the committed id to drop stale entries.
type memberCacheInvalidator interface {
	Invalidate(ctx context.Context, id uint)
}

type memberService struct {
	log      *logger.Logger
	members  repos.MemberRepo
	registry domainagg.MemberAggregate
}

func NewMemberService(log *logger.Logger, members repos.MemberRepo, registry domainagg.MemberAggregate) MemberService {
	return &memberService{
		log:      log.With("service", "MemberService"),
		members:  members,
		registry: registry,
	}
}

func (s *memberService) Join(ctx context.Context, name string, address types.Address) (uint, error) {
	res, err := s.registry.Register(ctx, domainagg.RegisterMemberInput{Name: name, Address: address})
	if err != nil {
		return 0, err
	}
	if inv, ok := s.members.(memberCacheInvalidator); ok {
		inv.Invalidate(ctx, res.MemberID)
	}
	s.log.Info("member joined", "member_id", res.MemberID, "member_name", name)
	return res.MemberID, nil
}

func (s *memberService) FindMembers(ctx context.Context) ([]*types.Member, error) {
	return s.members.FindAll(dbctx.Context{Ctx: ctx})
}

func (s *memberService) FindOne(ctx context.Context, id uint) (*types.Member, error) {
	return s.members.FindOne(dbctx.Context{Ctx: ctx}, id)
}
