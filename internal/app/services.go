package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/shop-backend/internal/data/aggregates"
	"github.com/yungbote/shop-backend/internal/observability"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
	"github.com/yungbote/shop-backend/internal/services"
)

type Services struct {
	Members    services.MemberService
	Items      services.ItemService
	Orders     services.OrderService
	OrderQuery services.OrderQueryService
}

func wireServices(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, r Repos) Services {
	log.Info("Wiring services...")
	base := aggregates.BaseDeps{
		DB:       db,
		Log:      log,
		Runner:   aggregates.NewGormTxRunner(db),
		Hooks:    aggregates.NewObservabilityHooks(metrics),
		CASGuard: aggregates.NewCASGuard(db),
	}

	memberAgg := aggregates.NewMemberAggregate(aggregates.MemberAggregateDeps{
		Base:    base,
		Members: r.Members,
	})
	stockAgg := aggregates.NewStockAggregate(aggregates.StockAggregateDeps{
		Base:  base,
		Items: r.Items,
	})
	orderAgg := aggregates.NewOrderAggregate(aggregates.OrderAggregateDeps{
		Base:    base,
		Members: r.Members,
		Items:   r.Items,
		Orders:  r.Orders,
	})

	return Services{
		Members:    services.NewMemberService(log, r.Members, memberAgg),
		Items:      services.NewItemService(log, r.Items, stockAgg),
		Orders:     services.NewOrderService(log, r.Orders, orderAgg),
		OrderQuery: services.NewOrderQueryService(log, r.Orders, metrics),
	}
}
