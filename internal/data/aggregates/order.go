package aggregates

import (
	"context"
	"fmt"
	"sort"

	"github.com/yungbote/shop-backend/internal/data/repos"
	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
)

type OrderAggregateDeps struct {
	Base BaseDeps

	Members repos.MemberRepo
	Items   repos.ItemRepo
	Orders  repos.OrderRepo
}

type orderAggregate struct {
	deps OrderAggregateDeps
}

func NewOrderAggregate(deps OrderAggregateDeps) domainagg.OrderAggregate {
	deps.Base = deps.Base.withDefaults()
	return &orderAggregate{deps: deps}
}

func (a *orderAggregate) Contract() domainagg.Contract {
	return domainagg.OrderAggregateContract
}

func (a *orderAggregate) configured() bool {
	return a.deps.Members != nil && a.deps.Items != nil && a.deps.Orders != nil
}

// PlaceOrder removes stock for every line, then saves delivery, order and
// lines. Several lines for the same item draw from one running stock count.
func (a *orderAggregate) PlaceOrder(ctx context.Context, in domainagg.PlaceOrderInput) (domainagg.PlaceOrderResult, error) {
	op := a.Contract().Op("Place")
	var out domainagg.PlaceOrderResult

	if in.MemberID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing member_id", nil)
	}
	if len(in.Lines) == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "order requires at least one line", nil)
	}
	itemIDs := make([]uint, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.ItemID == 0 {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "missing item_id", nil)
		}
		if l.Count <= 0 {
			return out, domainagg.NewError(domainagg.CodeValidation, op, "count must be positive", types.ErrInvalidQuantity)
		}
		itemIDs = append(itemIDs, l.ItemID)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "order aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		member, err := a.deps.Members.FindOne(dbc, in.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("member %d not found", in.MemberID), nil)
		}

		items, err := a.deps.Items.FindByIDs(dbc, itemIDs)
		if err != nil {
			return err
		}
		byID := make(map[uint]*types.Item, len(items))
		versions := make(map[uint]int, len(items))
		for _, it := range items {
			byID[it.ID] = it
			versions[it.ID] = it.Version
		}

		lines := make([]types.OrderLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			item := byID[l.ItemID]
			if item == nil {
				return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("item %d not found", l.ItemID), nil)
			}
			line, err := types.CreateOrderLine(item, item.UnitPrice(), l.Count)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		order, err := types.CreateOrder(member, types.NewDelivery(member.Address), lines...)
		if err != nil {
			return ValidationError(err.Error())
		}

		if err := a.persistItems(dbc, byID, versions); err != nil {
			return err
		}
		if err := a.deps.Orders.Save(dbc, order); err != nil {
			return err
		}

		out = domainagg.PlaceOrderResult{OrderID: order.ID, TotalPrice: order.TotalPrice()}
		return nil
	})
	return out, err
}

// CancelOrder flips an ORDERED order to CANCELLED and returns each line's
// count to stock. Orders whose delivery completed cannot be cancelled.
func (a *orderAggregate) CancelOrder(ctx context.Context, in domainagg.CancelOrderInput) (domainagg.CancelOrderResult, error) {
	op := a.Contract().Op("Cancel")
	var out domainagg.CancelOrderResult

	if in.OrderID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing order_id", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "order aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := a.deps.Orders.FindOne(dbc, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("order %d not found", in.OrderID), nil)
		}

		// Lines for the same item must restore into one running count.
		byID := make(map[uint]*types.Item, len(order.Lines))
		versions := make(map[uint]int, len(order.Lines))
		for i := range order.Lines {
			item := order.Lines[i].Item
			if item == nil {
				continue
			}
			if shared, ok := byID[item.ID]; ok {
				order.Lines[i].Item = shared
				continue
			}
			byID[item.ID] = item
			versions[item.ID] = item.Version
		}

		if err := order.Cancel(); err != nil {
			return err
		}
		if err := a.persistItems(dbc, byID, versions); err != nil {
			return err
		}

		ok, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, types.Order{}.TableName(), order.ID,
			[]string{string(types.OrderStatusOrdered)},
			map[string]any{"status": types.OrderStatusCancelled},
		)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, fmt.Sprintf("order %d changed status concurrently", order.ID)); err != nil {
			return err
		}

		out = domainagg.CancelOrderResult{OrderID: order.ID, Status: order.Status}
		return nil
	})
	return out, err
}

// persistItems writes stock in ascending item id order so concurrent writers
// touching the same items lock them in the same sequence.
func (a *orderAggregate) persistItems(dbc dbctx.Context, byID map[uint]*types.Item, versions map[uint]int) error {
	ids := make([]uint, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := persistStock(dbc, a.deps.Base.CASGuard, byID[id], versions[id]); err != nil {
			return err
		}
	}
	return nil
}
