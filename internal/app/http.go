package app

import (
	"gorm.io/gorm"

	shophttp "github.com/yungbote/shop-backend/internal/http"
	httpH "github.com/yungbote/shop-backend/internal/http/handlers"
	"github.com/yungbote/shop-backend/internal/observability"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Member     *httpH.MemberHandler
	Item       *httpH.ItemHandler
	Order      *httpH.OrderHandler
	OrderQuery *httpH.OrderQueryHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Member:     httpH.NewMemberHandler(services.Members),
		Item:       httpH.NewItemHandler(services.Items),
		Order:      httpH.NewOrderHandler(services.Orders),
		OrderQuery: httpH.NewOrderQueryHandler(services.OrderQuery),
	}
}

func wireServer(cfg Config, log *logger.Logger, metrics *observability.Metrics, handlers Handlers) *shophttp.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return shophttp.NewServer(shophttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       serviceName,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.Health,
		MemberHandler:     handlers.Member,
		ItemHandler:       handlers.Item,
		OrderHandler:      handlers.Order,
		OrderQueryHandler: handlers.OrderQuery,
	}, cfg.HTTPAddr)
}
