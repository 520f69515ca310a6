package shop

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

// OrderRepo persists order aggregates. Associations are never loaded
// implicitly: FindAll returns bare orders and callers materialize what they
// need through the Resolve* methods, each of which costs at most one query.
type OrderRepo interface {
	Save(dbc dbctx.Context, order *types.Order) error

	FindOne(dbc dbctx.Context, id uint) (*types.Order, error)
	FindAll(dbc dbctx.Context, search types.OrderSearch) ([]*types.Order, error)
	FindAllWithMemberAndDelivery(dbc dbctx.Context) ([]*types.Order, error)
	SearchWithMemberAndDelivery(dbc dbctx.Context, search types.OrderSearch) ([]*types.Order, error)

	ResolveMember(dbc dbctx.Context, order *types.Order) (*types.Member, error)
	ResolveDelivery(dbc dbctx.Context, order *types.Order) (*types.Delivery, error)
	ResolveLines(dbc dbctx.Context, order *types.Order) ([]types.OrderLine, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

// Save writes the delivery, the order row and any new lines as one unit.
// Member and item rows are referenced, never written; stock changes go
// through the stock compare-and-set path.
func (r *orderRepo) Save(dbc dbctx.Context, order *types.Order) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if order == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		if order.Delivery != nil {
			if order.Delivery.ID == 0 {
				if err := tx.Create(order.Delivery).Error; err != nil {
					return err
				}
			}
			order.DeliveryID = order.Delivery.ID
		}
		if order.Member != nil && order.MemberID == 0 {
			order.MemberID = order.Member.ID
		}

		if order.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
				return err
			}
		}

		for i := range order.Lines {
			line := &order.Lines[i]
			line.OrderID = order.ID
			if line.Item != nil && line.ItemID == 0 {
				line.ItemID = line.Item.ID
			}
			if line.ID != 0 {
				continue
			}
			if err := tx.Omit(clause.Associations).Create(line).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindOne loads the full aggregate: member, delivery, and lines with items.
func (r *orderRepo) FindOne(dbc dbctx.Context, id uint) (*types.Order, error) {
	if id == 0 {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Order
	if err := t.WithContext(dbc.Ctx).
		Joins("Member").
		Joins("Delivery").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id ASC") }).
		Preload("Lines.Item").
		Where("orders.id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// FindAll runs exactly one query. The member name filter is an exact match
// evaluated through a join; the member itself is not loaded.
func (r *orderRepo) FindAll(dbc dbctx.Context, search types.OrderSearch) ([]*types.Order, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	search = search.Normalized()

	q := t.WithContext(dbc.Ctx).Model(&types.Order{}).Select("orders.*")
	if search.MemberName != "" {
		q = q.Joins("JOIN members ON members.id = orders.member_id").
			Where("members.name = ?", search.MemberName)
	}
	if search.Status != "" {
		q = q.Where("orders.status = ?", search.Status)
	}

	var out []*types.Order
	if err := q.Order("orders.id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindAllWithMemberAndDelivery returns every order with Member and Delivery
// populated by the same statement.
func (r *orderRepo) FindAllWithMemberAndDelivery(dbc dbctx.Context) ([]*types.Order, error) {
	return r.SearchWithMemberAndDelivery(dbc, types.OrderSearch{})
}

// SearchWithMemberAndDelivery is FindAll with Member and Delivery joined into
// the one statement.
func (r *orderRepo) SearchWithMemberAndDelivery(dbc dbctx.Context, search types.OrderSearch) ([]*types.Order, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	search = search.Normalized()

	q := t.WithContext(dbc.Ctx)
	if search.MemberName != "" {
		cond := t.Session(&gorm.Session{NewDB: true}).Where(&types.Member{Name: search.MemberName})
		q = q.InnerJoins("Member", cond)
	} else {
		q = q.Joins("Member")
	}
	q = q.Joins("Delivery")
	if search.Status != "" {
		q = q.Where("orders.status = ?", search.Status)
	}

	var out []*types.Order
	if err := q.Order("orders.id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) ResolveMember(dbc dbctx.Context, order *types.Order) (*types.Member, error) {
	if order == nil {
		return nil, nil
	}
	if order.Member != nil && order.Member.ID == order.MemberID {
		return order.Member, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []*types.Member
	if err := t.WithContext(dbc.Ctx).Where("id = ?", order.MemberID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	order.Member = rows[0]
	return order.Member, nil
}

func (r *orderRepo) ResolveDelivery(dbc dbctx.Context, order *types.Order) (*types.Delivery, error) {
	if order == nil {
		return nil, nil
	}
	if order.Delivery != nil && order.Delivery.ID == order.DeliveryID {
		return order.Delivery, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []*types.Delivery
	if err := t.WithContext(dbc.Ctx).Where("id = ?", order.DeliveryID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	order.Delivery = rows[0]
	return order.Delivery, nil
}

// ResolveLines loads the lines with their items joined in one statement.
// Every persisted order has at least one line, so a nil slice means "not
// loaded".
func (r *orderRepo) ResolveLines(dbc dbctx.Context, order *types.Order) ([]types.OrderLine, error) {
	if order == nil {
		return nil, nil
	}
	if order.Lines != nil {
		return order.Lines, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	lines := []types.OrderLine{}
	if err := t.WithContext(dbc.Ctx).
		Joins("Item").
		Where("order_lines.order_id = ?", order.ID).
		Order("order_lines.id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	order.Lines = lines
	return lines, nil
}
