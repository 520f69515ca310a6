package shop

import (
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type MemberRepo interface {
	Create(dbc dbctx.Context, member *types.Member) (*types.Member, error)

	FindOne(dbc dbctx.Context, id uint) (*types.Member, error)
	FindByName(dbc dbctx.Context, name string) ([]*types.Member, error)
	FindAll(dbc dbctx.Context) ([]*types.Member, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (r *memberRepo) Create(dbc dbctx.Context, member *types.Member) (*types.Member, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if member == nil {
		return nil, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepo) FindOne(dbc dbctx.Context, id uint) (*types.Member, error) {
	if id == 0 {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Member
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// FindByName matches the stored name exactly.
func (r *memberRepo) FindByName(dbc dbctx.Context, name string) ([]*types.Member, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Member
	name = strings.TrimSpace(name)
	if name == "" {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("name = ?", name).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *memberRepo) FindAll(dbc dbctx.Context) ([]*types.Member, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Member
	if err := t.WithContext(dbc.Ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
