package services

import (
	"context"

	"github.com/yungbote/shop-backend/internal/data/repos"
	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type OrderService interface {
	// Order places a single-line order for memberID and returns its id.
	Order(ctx context.Context, memberID, itemID uint, count int) (uint, error)
	CancelOrder(ctx context.Context, orderID uint) error
	// FindOrders returns matching orders with Member and Delivery loaded.
	FindOrders(ctx context.Context, search types.OrderSearch) ([]*types.Order, error)
}

type orderService struct {
	log    *logger.Logger
	orders repos.OrderRepo
	agg    domainagg.OrderAggregate
}

func NewOrderService(log *logger.Logger, orders repos.OrderRepo, agg domainagg.OrderAggregate) OrderService {
	return &orderService{
		log:    log.With("service", "OrderService"),
		orders: orders,
		agg:    agg,
	}
}

func (s *orderService) Order(ctx context.Context, memberID, itemID uint, count int) (uint, error) {
	res, err := s.agg.PlaceOrder(ctx, domainagg.PlaceOrderInput{
		MemberID: memberID,
		Lines:    []domainagg.PlaceOrderLineInput{{ItemID: itemID, Count: count}},
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("order placed", "order_id", res.OrderID, "member_id", memberID, "total_price", res.TotalPrice)
	return res.OrderID, nil
}

func (s *orderService) CancelOrder(ctx context.Context, orderID uint) error {
	if _, err := s.agg.CancelOrder(ctx, domainagg.CancelOrderInput{OrderID: orderID}); err != nil {
		return err
	}
	s.log.Info("order cancelled", "order_id", orderID)
	return nil
}

func (s *orderService) FindOrders(ctx context.Context, search types.OrderSearch) ([]*types.Order, error) {
	search = search.Normalized()
	if search.Status != "" && !search.Status.Valid() {
		return nil, domainagg.NewError(domainagg.CodeValidation, "Shop.Order.Find", "unknown order status "+string(search.Status), nil)
	}
	return s.orders.SearchWithMemberAndDelivery(dbctx.Context{Ctx: ctx}, search)
}
