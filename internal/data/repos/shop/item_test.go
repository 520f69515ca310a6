package shop

import (
	"context"
	"testing"

	"github.com/yungbote/shop-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
)

func TestItemRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewItemRepo(db, testutil.Logger(t))

	book, err := repo.Create(dbc, types.NewBook("JPA", 10000, 10, "kim", "978"))
	if err != nil {
		t.Fatalf("Create book: %v", err)
	}
	album, err := repo.Create(dbc, types.NewAlbum("Blue", 15000, 3, "band", "live"))
	if err != nil {
		t.Fatalf("Create album: %v", err)
	}

	got, err := repo.FindOne(dbc, book.ID)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if got == nil || !got.IsBook() || got.Author != "kim" || got.StockQuantity != 10 {
		t.Fatalf("FindOne: unexpected %+v", got)
	}
	if got, err := repo.FindOne(dbc, 0); err != nil || got != nil {
		t.Fatalf("FindOne(0): want nil,nil got %+v,%v", got, err)
	}

	all, err := repo.FindAll(dbc)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 || all[1].ID != album.ID || all[1].DType != types.KindAlbum {
		t.Fatalf("FindAll: unexpected %+v", all)
	}

	if err := repo.UpdateFields(dbc, book.ID, map[string]interface{}{"name": "JPA 2nd", "price": 12000}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	updated, err := repo.FindOne(dbc, book.ID)
	if err != nil {
		t.Fatalf("FindOne after update: %v", err)
	}
	if updated.Name != "JPA 2nd" || updated.Price != 12000 {
		t.Fatalf("UpdateFields not applied: %+v", updated)
	}
	if updated.Version != book.Version+1 {
		t.Fatalf("version: want=%d got=%d", book.Version+1, updated.Version)
	}
}

func TestItemRepoRejectsNegativeStockAtStorage(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewItemRepo(db, testutil.Logger(t))

	book := testutil.SeedBook(t, ctx, tx, "book", 100, 1)
	if err := repo.UpdateFields(dbc, book.ID, map[string]interface{}{"stock_quantity": -1}); err == nil {
		t.Fatalf("expected check constraint to reject negative stock")
	}
}
