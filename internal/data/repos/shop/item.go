package shop

import (
	"gorm.io/gorm"

	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type ItemRepo interface {
	Create(dbc dbctx.Context, item *types.Item) (*types.Item, error)

	FindOne(dbc dbctx.Context, id uint) (*types.Item, error)
	FindByIDs(dbc dbctx.Context, ids []uint) ([]*types.Item, error)
	FindAll(dbc dbctx.Context) ([]*types.Item, error)

	// UpdateFields is the administrative edit path. It bumps the version so
	// concurrent stock writers observe a conflict instead of overwriting it.
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) Create(dbc dbctx.Context, item *types.Item) (*types.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if item == nil {
		return nil, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) FindOne(dbc dbctx.Context, id uint) (*types.Item, error) {
	if id == 0 {
		return nil, nil
	}
	rows, err := r.FindByIDs(dbc, []uint{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *itemRepo) FindByIDs(dbc dbctx.Context, ids []uint) ([]*types.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Item
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) FindAll(dbc dbctx.Context) ([]*types.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Item
	if err := t.WithContext(dbc.Ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == 0 || len(updates) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	values["version"] = gorm.Expr("version + 1")
	return t.WithContext(dbc.Ctx).
		Model(&types.Item{}).
		Where("id = ?", id).
		Updates(values).Error
}
