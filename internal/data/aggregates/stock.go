package aggregates

import (
	"context"
	"fmt"

	"github.com/yungbote/shop-backend/internal/data/repos"
	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
)

type StockAggregateDeps struct {
	Base BaseDeps

	Items repos.ItemRepo
}

type stockAggregate struct {
	deps StockAggregateDeps
}

func NewStockAggregate(deps StockAggregateDeps) domainagg.StockAggregate {
	deps.Base = deps.Base.withDefaults()
	return &stockAggregate{deps: deps}
}

func (a *stockAggregate) Contract() domainagg.Contract {
	return domainagg.StockAggregateContract
}

func (a *stockAggregate) AddStock(ctx context.Context, in domainagg.StockChangeInput) (domainagg.StockChangeResult, error) {
	return a.change(ctx, a.Contract().Op("AddStock"), in, (*types.Item).AddStock)
}

func (a *stockAggregate) RemoveStock(ctx context.Context, in domainagg.StockChangeInput) (domainagg.StockChangeResult, error) {
	return a.change(ctx, a.Contract().Op("RemoveStock"), in, (*types.Item).RemoveStock)
}

func (a *stockAggregate) change(ctx context.Context, op string, in domainagg.StockChangeInput, apply func(*types.Item, int) error) (domainagg.StockChangeResult, error) {
	var out domainagg.StockChangeResult
	if in.ItemID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing item_id", nil)
	}
	if a.deps.Items == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "item repo not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		item, err := a.deps.Items.FindOne(dbc, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("item %d not found", in.ItemID), nil)
		}

		expected := item.Version
		if err := apply(item, in.Quantity); err != nil {
			return err
		}
		if in.Quantity != 0 {
			if err := persistStock(dbc, a.deps.Base.CASGuard, item, expected); err != nil {
				return err
			}
		}

		out = domainagg.StockChangeResult{
			ItemID:        item.ID,
			StockQuantity: item.StockQuantity,
			Version:       item.Version,
		}
		return nil
	})
	return out, err
}
