package services

import (
	"context"
	"errors"
	"testing"

	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
)

func TestItemServiceSaveAndUpdate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	book, err := h.items.SaveItem(ctx, types.NewBook("JPA", 10000, 10, "kim", "978"))
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}
	movie, err := h.items.SaveItem(ctx, types.NewMovie("Heat", 9000, 2, "Mann", "Pacino"))
	if err != nil {
		t.Fatalf("SaveItem(movie): %v", err)
	}

	updated, err := h.items.UpdateItem(ctx, book.ID, UpdateItemInput{Name: "JPA 2nd", Price: 12000, StockQuantity: 3})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Name != "JPA 2nd" || updated.Price != 12000 || updated.StockQuantity != 3 || updated.Author != "kim" {
		t.Fatalf("UpdateItem: unexpected %+v", updated)
	}

	items, err := h.items.FindItems(ctx)
	if err != nil {
		t.Fatalf("FindItems: %v", err)
	}
	if len(items) != 2 || items[1].ID != movie.ID || items[1].Director != "Mann" {
		t.Fatalf("FindItems: unexpected %+v", items)
	}

	if _, err := h.items.UpdateItem(ctx, 999, UpdateItemInput{Name: "x"}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("UpdateItem(absent): expected not_found, got %v", err)
	}
	if got, err := h.items.FindOne(ctx, 999); err != nil || got != nil {
		t.Fatalf("FindOne(absent): %+v %v", got, err)
	}
}

func TestItemServiceRejectsInvalidItems(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name string
		item *types.Item
	}{
		{name: "nil", item: nil},
		{name: "unknown kind", item: &types.Item{DType: "X", Name: "x"}},
		{name: "blank name", item: types.NewBook(" ", 1, 1, "", "")},
		{name: "negative price", item: types.NewBook("b", -1, 1, "", "")},
		{name: "negative stock", item: types.NewAlbum("a", 1, -1, "", "")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.items.SaveItem(ctx, tc.item); !domainagg.IsCode(err, domainagg.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestItemServiceStockLedger(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	book, err := h.items.SaveItem(ctx, types.NewBook("JPA", 10000, 10, "kim", "978"))
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}
	if _, err := h.items.RemoveStock(ctx, book.ID, 3); err != nil {
		t.Fatalf("RemoveStock: %v", err)
	}
	_, err = h.items.RemoveStock(ctx, book.ID, 8)
	if !errors.Is(err, types.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	res, err := h.items.AddStock(ctx, book.ID, 1)
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if res.StockQuantity != 8 {
		t.Fatalf("stock: want=8 got=%d", res.StockQuantity)
	}
	got, err := h.items.FindOne(ctx, book.ID)
	if err != nil || got.StockQuantity != 8 {
		t.Fatalf("reload: %+v %v", got, err)
	}
}
