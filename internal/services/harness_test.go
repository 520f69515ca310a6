package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/shop-backend/internal/data/aggregates"
	"github.com/yungbote/shop-backend/internal/data/repos"
	repotest "github.com/yungbote/shop-backend/internal/data/repos/testutil"
	"github.com/yungbote/shop-backend/internal/observability"
)

type harness struct {
	db      *gorm.DB
	members MemberService
	items   ItemService
	orders  OrderService
	query   OrderQueryService
	metrics *observability.Metrics
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	metrics := observability.New()

	memberRepo := repos.NewMemberRepo(db, log)
	itemRepo := repos.NewItemRepo(db, log)
	orderRepo := repos.NewOrderRepo(db, log)

	base := aggregates.BaseDeps{DB: db, Log: log, Hooks: aggregates.NewObservabilityHooks(metrics)}
	memberAgg := aggregates.NewMemberAggregate(aggregates.MemberAggregateDeps{Base: base, Members: memberRepo})
	stockAgg := aggregates.NewStockAggregate(aggregates.StockAggregateDeps{Base: base, Items: itemRepo})
	orderAgg := aggregates.NewOrderAggregate(aggregates.OrderAggregateDeps{
		Base:    base,
		Members: memberRepo,
		Items:   itemRepo,
		Orders:  orderRepo,
	})

	return &harness{
		db:      db,
		members: NewMemberService(log, memberRepo, memberAgg),
		items:   NewItemService(log, itemRepo, stockAgg),
		orders:  NewOrderService(log, orderRepo, orderAgg),
		query:   NewOrderQueryService(log, orderRepo, metrics),
		metrics: metrics,
	}
}

// placeOrders registers n members and gives each one order for a shared book.
func (h *harness) placeOrders(t *testing.T, ctx context.Context, names ...string) []uint {
	t.Helper()
	book := repotest.SeedBook(t, ctx, h.db, "shared", 1000, 1000)
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		memberID, err := h.members.Join(ctx, name, addressFor(name))
		if err != nil {
			t.Fatalf("Join(%s): %v", name, err)
		}
		orderID, err := h.orders.Order(ctx, memberID, book.ID, 1)
		if err != nil {
			t.Fatalf("Order(%s): %v", name, err)
		}
		ids = append(ids, orderID)
	}
	return ids
}
