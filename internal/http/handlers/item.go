package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/http/response"
	"github.com/yungbote/shop-backend/internal/services"
)

type ItemHandler struct {
	items services.ItemService
}

func NewItemHandler(items services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

type createBookRequest struct {
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
}

type updateItemRequest struct {
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
}

type stockRequest struct {
	Delta int `json:"delta"`
}

// POST /api/items
func (h *ItemHandler) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.items.SaveItem(c.Request.Context(), types.NewBook(req.Name, req.Price, req.StockQuantity, req.Author, req.ISBN))
	if err != nil {
		response.RespondServiceError(c, "save_item_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"item": item})
}

// GET /api/items
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.FindItems(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_items_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	item, err := h.items.FindOne(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, "load_item_failed", err)
		return
	}
	if item == nil {
		response.RespondError(c, http.StatusNotFound, "item_not_found", nil)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// PUT /api/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.items.UpdateItem(c.Request.Context(), id, services.UpdateItemInput{
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		response.RespondServiceError(c, "update_item_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// POST /api/items/:id/stock
// body: { "delta": n }  positive adds, negative removes
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var res domainagg.StockChangeResult
	if req.Delta < 0 {
		res, err = h.items.RemoveStock(c.Request.Context(), id, -req.Delta)
	} else {
		res, err = h.items.AddStock(c.Request.Context(), id, req.Delta)
	}
	if err != nil {
		response.RespondServiceError(c, "adjust_stock_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"item_id":        res.ItemID,
		"stock_quantity": res.StockQuantity,
	})
}
