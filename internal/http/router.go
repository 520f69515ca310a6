package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/shop-backend/internal/http/handlers"
	httpMW "github.com/yungbote/shop-backend/internal/http/middleware"
	"github.com/yungbote/shop-backend/internal/observability"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	MemberHandler     *httpH.MemberHandler
	ItemHandler       *httpH.ItemHandler
	OrderHandler      *httpH.OrderHandler
	OrderQueryHandler *httpH.OrderQueryHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/healthcheck", "/metrics"))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Members
		if cfg.MemberHandler != nil {
			api.POST("/members", cfg.MemberHandler.Join)
			api.GET("/members", cfg.MemberHandler.List)
			api.GET("/members/:id", cfg.MemberHandler.Get)
		}

		// Items
		if cfg.ItemHandler != nil {
			api.POST("/items", cfg.ItemHandler.CreateBook)
			api.GET("/items", cfg.ItemHandler.List)
			api.GET("/items/:id", cfg.ItemHandler.Get)
			api.PUT("/items/:id", cfg.ItemHandler.Update)
			api.POST("/items/:id/stock", cfg.ItemHandler.AdjustStock)
		}

		// Orders
		if cfg.OrderHandler != nil {
			api.POST("/orders", cfg.OrderHandler.Place)
			api.GET("/orders", cfg.OrderHandler.List)
			api.POST("/orders/:id/cancel", cfg.OrderHandler.Cancel)
		}

		// Order listing read shapes
		if cfg.OrderQueryHandler != nil {
			api.GET("/v1/simple-orders", cfg.OrderQueryHandler.RawOrders)
			api.GET("/v2/simple-orders", cfg.OrderQueryHandler.SimpleOrders)
			api.GET("/v3/simple-orders", cfg.OrderQueryHandler.SimpleOrdersPrejoined)
		}
	}

	return r
}
