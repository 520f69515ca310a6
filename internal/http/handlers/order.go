package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/http/response"
	"github.com/yungbote/shop-backend/internal/services"
)

type OrderHandler struct {
	orders services.OrderService
}

func NewOrderHandler(orders services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
	ItemID   uint `json:"item_id" binding:"required"`
	Count    int  `json:"count"`
}

// POST /api/orders
func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	id, err := h.orders.Order(c.Request.Context(), req.MemberID, req.ItemID, req.Count)
	if err != nil {
		response.RespondServiceError(c, "place_order_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"order_id": id})
}

// GET /api/orders?status=&member_name=
func (h *OrderHandler) List(c *gin.Context) {
	var search types.OrderSearch
	if err := c.ShouldBindQuery(&search); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	orders, err := h.orders.FindOrders(c.Request.Context(), search)
	if err != nil {
		response.RespondServiceError(c, "list_orders_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"orders": orders})
}

// POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_order_id", err)
		return
	}
	if err := h.orders.CancelOrder(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, "cancel_order_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"order_id": id, "status": types.OrderStatusCancelled})
}
