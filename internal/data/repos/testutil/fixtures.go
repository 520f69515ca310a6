package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shop-backend/internal/domain/shop"
)

func SeedMember(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Member {
	tb.Helper()
	m := &types.Member{
		Name:    name,
		Address: types.Address{City: "Seoul", Street: name + " street", Zipcode: "12345"},
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return m
}

func SeedBook(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, price, stock int) *types.Item {
	tb.Helper()
	it := types.NewBook(name, price, stock, "author", "isbn-"+name)
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	return it
}

// SeedOrder writes an ORDERED order with one line per item, bypassing stock
// accounting. Items are not decremented.
func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, member *types.Member, count int, items ...*types.Item) *types.Order {
	tb.Helper()
	delivery := types.NewDelivery(member.Address)
	if err := tx.WithContext(ctx).Create(delivery).Error; err != nil {
		tb.Fatalf("seed delivery: %v", err)
	}
	o := &types.Order{
		MemberID:   member.ID,
		DeliveryID: delivery.ID,
		OrderDate:  time.Now().UTC().Truncate(time.Second),
		Status:     types.OrderStatusOrdered,
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	for _, it := range items {
		line := &types.OrderLine{OrderID: o.ID, ItemID: it.ID, OrderPrice: it.Price, Count: count}
		if err := tx.WithContext(ctx).Omit(clause.Associations).Create(line).Error; err != nil {
			tb.Fatalf("seed order line: %v", err)
		}
	}
	return o
}

// CompleteDelivery marks the order's delivery COMP.
func CompleteDelivery(tb testing.TB, ctx context.Context, tx *gorm.DB, order *types.Order) {
	tb.Helper()
	if err := tx.WithContext(ctx).
		Model(&types.Delivery{}).
		Where("id = ?", order.DeliveryID).
		Update("status", types.DeliveryComplete).Error; err != nil {
		tb.Fatalf("complete delivery: %v", err)
	}
}
