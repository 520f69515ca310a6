package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	shopdb "github.com/yungbote/shop-backend/internal/data/db"
	"github.com/yungbote/shop-backend/internal/data/repos"
	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/observability"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

// Strategy selects how the order listing is fetched and shaped.
type Strategy string

const (
	// StrategyRawEntities loads bare orders and resolves member, delivery and
	// lines per order: 1 + 3N statements.
	StrategyRawEntities Strategy = "v1"
	// StrategySimpleDTO loads bare orders and resolves member and delivery per
	// order: 1 + 2N statements.
	StrategySimpleDTO Strategy = "v2"
	// StrategyPrejoined fetches orders with member and delivery joined: 1 statement.
	StrategyPrejoined Strategy = "v3"
)

func ParseStrategy(raw string) (Strategy, bool) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case StrategyRawEntities, StrategySimpleDTO, StrategyPrejoined:
		return s, true
	default:
		return "", false
	}
}

// SimpleOrderDTO is the flat, acyclic form of an order.
type SimpleOrderDTO struct {
	OrderID         uint              `json:"order_id"`
	MemberName      string            `json:"member_name"`
	OrderDate       time.Time         `json:"order_date"`
	OrderStatus     types.OrderStatus `json:"order_status"`
	DeliveryAddress types.Address     `json:"delivery_address"`
}

func NewSimpleOrderDTO(o *types.Order) SimpleOrderDTO {
	dto := SimpleOrderDTO{
		OrderID:     o.ID,
		OrderDate:   o.OrderDate,
		OrderStatus: o.Status,
	}
	if o.Member != nil {
		dto.MemberName = o.Member.Name
	}
	if o.Delivery != nil {
		dto.DeliveryAddress = o.Delivery.Address
	}
	return dto
}

type OrderQueryService interface {
	RawOrders(ctx context.Context) ([]*types.Order, error)
	SimpleOrders(ctx context.Context) ([]SimpleOrderDTO, error)
	SimpleOrdersPrejoined(ctx context.Context) ([]SimpleOrderDTO, error)
	// Project runs the given strategy and always returns the flat form, so
	// the three strategies can be compared element-wise.
	Project(ctx context.Context, strategy Strategy) ([]SimpleOrderDTO, error)
}

type orderQueryService struct {
	log     *logger.Logger
	orders  repos.OrderRepo
	metrics *observability.Metrics
}

func NewOrderQueryService(log *logger.Logger, orders repos.OrderRepo, metrics *observability.Metrics) OrderQueryService {
	return &orderQueryService{
		log:     log.With("service", "OrderQueryService"),
		orders:  orders,
		metrics: metrics,
	}
}

func (s *orderQueryService) RawOrders(ctx context.Context) ([]*types.Order, error) {
	var out []*types.Order
	err := s.observe(ctx, StrategyRawEntities, func(dbc dbctx.Context) error {
		rows, err := s.orders.FindAll(dbc, types.OrderSearch{})
		if err != nil {
			return err
		}
		for _, o := range rows {
			if _, err := s.orders.ResolveMember(dbc, o); err != nil {
				return err
			}
			if _, err := s.orders.ResolveDelivery(dbc, o); err != nil {
				return err
			}
			if _, err := s.orders.ResolveLines(dbc, o); err != nil {
				return err
			}
		}
		out = rows
		return nil
	})
	return out, err
}

func (s *orderQueryService) SimpleOrders(ctx context.Context) ([]SimpleOrderDTO, error) {
	var out []SimpleOrderDTO
	err := s.observe(ctx, StrategySimpleDTO, func(dbc dbctx.Context) error {
		rows, err := s.orders.FindAll(dbc, types.OrderSearch{})
		if err != nil {
			return err
		}
		out, err = s.flatten(dbc, rows)
		return err
	})
	return out, err
}

func (s *orderQueryService) SimpleOrdersPrejoined(ctx context.Context) ([]SimpleOrderDTO, error) {
	var out []SimpleOrderDTO
	err := s.observe(ctx, StrategyPrejoined, func(dbc dbctx.Context) error {
		rows, err := s.orders.FindAllWithMemberAndDelivery(dbc)
		if err != nil {
			return err
		}
		// resolvers are free here: both associations came back with the rows
		out, err = s.flatten(dbc, rows)
		return err
	})
	return out, err
}

func (s *orderQueryService) Project(ctx context.Context, strategy Strategy) ([]SimpleOrderDTO, error) {
	switch strategy {
	case StrategyRawEntities:
		rows, err := s.RawOrders(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]SimpleOrderDTO, 0, len(rows))
		for _, o := range rows {
			out = append(out, NewSimpleOrderDTO(o))
		}
		return out, nil
	case StrategySimpleDTO:
		return s.SimpleOrders(ctx)
	case StrategyPrejoined:
		return s.SimpleOrdersPrejoined(ctx)
	default:
		return nil, domainagg.NewError(domainagg.CodeValidation, "Shop.OrderQuery.Project", fmt.Sprintf("unknown strategy %q", strategy), nil)
	}
}

func (s *orderQueryService) flatten(dbc dbctx.Context, rows []*types.Order) ([]SimpleOrderDTO, error) {
	out := make([]SimpleOrderDTO, 0, len(rows))
	for _, o := range rows {
		if _, err := s.orders.ResolveMember(dbc, o); err != nil {
			return nil, err
		}
		if _, err := s.orders.ResolveDelivery(dbc, o); err != nil {
			return nil, err
		}
		out = append(out, NewSimpleOrderDTO(o))
	}
	return out, nil
}

// observe wraps a read in a span and records how many statements it issued.
func (s *orderQueryService) observe(ctx context.Context, strategy Strategy, fn func(dbc dbctx.Context) error) error {
	ctx, span := observability.StartSpan(ctx, "OrderQueryService."+string(strategy),
		attribute.String("shop.order_query.strategy", string(strategy)))
	defer span.End()

	ctx, queries := shopdb.CountQueries(ctx)
	if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
		span.RecordError(err)
		return domainagg.Wrap(domainagg.CodeInternal, "Shop.OrderQuery."+string(strategy), err)
	}
	n := queries()
	span.SetAttributes(attribute.Int64("shop.order_query.statements", n))
	s.metrics.ObserveProjection(string(strategy), n)
	s.log.Debug("order projection", "strategy", strategy, "statements", n)
	return nil
}
