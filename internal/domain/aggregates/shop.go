package aggregates

import (
	"context"

	"github.com/yungbote/shop-backend/internal/domain/shop"
)

var MemberAggregateContract = Contract{
	Name:  "Shop.Member",
	Notes: "Owns the name-uniqueness check and member insert in one transaction; a unique index backs the check.",
}

var StockAggregateContract = Contract{
	Name:  "Shop.Stock",
	Notes: "Owns item stock read-modify-write guarded by the item version column.",
}

var OrderAggregateContract = Contract{
	Name:  "Shop.Order",
	Notes: "Owns order placement (stock removal + order/lines/delivery insert) and cancellation (status flip + stock restore).",
}

// MemberAggregate owns member registration.
//
// Register fails with CodeValidation wrapping shop.ErrDuplicateMember when the
// name is taken.
type MemberAggregate interface {
	Aggregate

	Register(ctx context.Context, in RegisterMemberInput) (RegisterMemberResult, error)
}

type RegisterMemberInput struct {
	Name    string
	Address shop.Address
}

type RegisterMemberResult struct {
	MemberID uint
}

// StockAggregate owns the item stock counter.
//
// RemoveStock fails with CodeInvariantViolation wrapping shop.ErrInsufficientStock
// and leaves stock unchanged. A concurrent writer is reported as CodeConflict.
type StockAggregate interface {
	Aggregate

	AddStock(ctx context.Context, in StockChangeInput) (StockChangeResult, error)
	RemoveStock(ctx context.Context, in StockChangeInput) (StockChangeResult, error)
}

type StockChangeInput struct {
	ItemID   uint
	Quantity int
}

type StockChangeResult struct {
	ItemID        uint
	StockQuantity int
	Version       int
}

// OrderAggregate owns order placement and cancellation.
type OrderAggregate interface {
	Aggregate

	PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error)
	CancelOrder(ctx context.Context, in CancelOrderInput) (CancelOrderResult, error)
}

type PlaceOrderLineInput struct {
	ItemID uint
	Count  int
}

type PlaceOrderInput struct {
	MemberID uint
	Lines    []PlaceOrderLineInput
}

type PlaceOrderResult struct {
	OrderID    uint
	TotalPrice int
}

type CancelOrderInput struct {
	OrderID uint
}

type CancelOrderResult struct {
	OrderID uint
	Status  shop.OrderStatus
}
