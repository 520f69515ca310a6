package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/shop-backend/internal/data/repos"
	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

// UpdateItemInput is the administrative edit. It overwrites stock directly
// and is not part of the stock ledger.
type UpdateItemInput struct {
	Name          string
	Price         int
	StockQuantity int
}

type ItemService interface {
	SaveItem(ctx context.Context, item *types.Item) (*types.Item, error)
	UpdateItem(ctx context.Context, id uint, in UpdateItemInput) (*types.Item, error)
	FindItems(ctx context.Context) ([]*types.Item, error)
	FindOne(ctx context.Context, id uint) (*types.Item, error)

	AddStock(ctx context.Context, id uint, quantity int) (domainagg.StockChangeResult, error)
	RemoveStock(ctx context.Context, id uint, quantity int) (domainagg.StockChangeResult, error)
}

type itemService struct {
	log   *logger.Logger
	items repos.ItemRepo
	stock domainagg.StockAggregate
}

func NewItemService(log *logger.Logger, items repos.ItemRepo, stock domainagg.StockAggregate) ItemService {
	return &itemService{
		log:   log.With("service", "ItemService"),
		items: items,
		stock: stock,
	}
}

func validateItemFields(op, name string, price, stock int) error {
	if strings.TrimSpace(name) == "" {
		return domainagg.NewError(domainagg.CodeValidation, op, "item name is required", nil)
	}
	if price < 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "price must be >= 0", nil)
	}
	if stock < 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "stock_quantity must be >= 0", types.ErrInvalidQuantity)
	}
	return nil
}

func (s *itemService) SaveItem(ctx context.Context, item *types.Item) (*types.Item, error) {
	const op = "Shop.Item.Save"
	if item == nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing item", nil)
	}
	switch item.DType {
	case types.KindBook, types.KindAlbum, types.KindMovie:
	default:
		return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown item kind %q", item.DType), nil)
	}
	item.Name = strings.TrimSpace(item.Name)
	if err := validateItemFields(op, item.Name, item.Price, item.StockQuantity); err != nil {
		return nil, err
	}
	out, err := s.items.Create(dbctx.Context{Ctx: ctx}, item)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	s.log.Debug("item saved", "item_id", out.ID, "dtype", out.DType)
	return out, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id uint, in UpdateItemInput) (*types.Item, error) {
	const op = "Shop.Item.Update"
	name := strings.TrimSpace(in.Name)
	if err := validateItemFields(op, name, in.Price, in.StockQuantity); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	current, err := s.items.FindOne(dbc, id)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if current == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("item %d not found", id), nil)
	}
	if err := s.items.UpdateFields(dbc, id, map[string]interface{}{
		"name":           name,
		"price":          in.Price,
		"stock_quantity": in.StockQuantity,
	}); err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return s.items.FindOne(dbc, id)
}

func (s *itemService) FindItems(ctx context.Context) ([]*types.Item, error) {
	return s.items.FindAll(dbctx.Context{Ctx: ctx})
}

func (s *itemService) FindOne(ctx context.Context, id uint) (*types.Item, error) {
	return s.items.FindOne(dbctx.Context{Ctx: ctx}, id)
}

func (s *itemService) AddStock(ctx context.Context, id uint, quantity int) (domainagg.StockChangeResult, error) {
	return s.stock.AddStock(ctx, domainagg.StockChangeInput{ItemID: id, Quantity: quantity})
}

func (s *itemService) RemoveStock(ctx context.Context, id uint, quantity int) (domainagg.StockChangeResult, error) {
	return s.stock.RemoveStock(ctx, domainagg.StockChangeInput{ItemID: id, Quantity: quantity})
}
