package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shop-backend/internal/http/response"
	"github.com/yungbote/shop-backend/internal/services"
)

// OrderQueryHandler serves the order listing in its three read shapes.
type OrderQueryHandler struct {
	query services.OrderQueryService
}

func NewOrderQueryHandler(query services.OrderQueryService) *OrderQueryHandler {
	return &OrderQueryHandler{query: query}
}

// GET /api/v1/simple-orders
// Entities with member, delivery and lines resolved per order.
func (h *OrderQueryHandler) RawOrders(c *gin.Context) {
	rows, err := h.query.RawOrders(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_orders_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/v2/simple-orders
func (h *OrderQueryHandler) SimpleOrders(c *gin.Context) {
	h.project(c, services.StrategySimpleDTO)
}

// GET /api/v3/simple-orders
func (h *OrderQueryHandler) SimpleOrdersPrejoined(c *gin.Context) {
	h.project(c, services.StrategyPrejoined)
}

func (h *OrderQueryHandler) project(c *gin.Context, strategy services.Strategy) {
	rows, err := h.query.Project(c.Request.Context(), strategy)
	if err != nil {
		response.RespondServiceError(c, "list_orders_failed", err)
		return
	}
	response.RespondOK(c, rows)
}
