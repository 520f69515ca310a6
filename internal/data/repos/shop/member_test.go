package shop

import (
	"context"
	"testing"

	"github.com/yungbote/shop-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
)

func TestMemberRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewMemberRepo(db, testutil.Logger(t))

	kim, err := repo.Create(dbc, &types.Member{Name: "kim", Address: types.Address{City: "Seoul", Street: "1", Zipcode: "111"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if kim.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	testutil.SeedMember(t, ctx, tx, "lee")

	got, err := repo.FindOne(dbc, kim.ID)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if got == nil || got.Name != "kim" || got.Address.City != "Seoul" {
		t.Fatalf("FindOne: unexpected %+v", got)
	}

	missing, err := repo.FindOne(dbc, kim.ID+1000)
	if err != nil {
		t.Fatalf("FindOne(absent): %v", err)
	}
	if missing != nil {
		t.Fatalf("FindOne(absent): expected nil, got %+v", missing)
	}

	byName, err := repo.FindByName(dbc, "kim")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != kim.ID {
		t.Fatalf("FindByName: unexpected %+v", byName)
	}
	if rows, _ := repo.FindByName(dbc, "ki"); len(rows) != 0 {
		t.Fatalf("FindByName should match exactly, got %d rows", len(rows))
	}
	if rows, _ := repo.FindByName(dbc, "KIM"); len(rows) != 0 {
		t.Fatalf("FindByName should be case sensitive, got %d rows", len(rows))
	}

	all, err := repo.FindAll(dbc)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 || all[0].Name != "kim" || all[1].Name != "lee" {
		t.Fatalf("FindAll: unexpected %+v", all)
	}
}

func TestMemberRepoUniqueNameBackstop(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewMemberRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := repo.Create(dbc, &types.Member{Name: "park"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create(dbc, &types.Member{Name: "park"}); err == nil {
		t.Fatalf("expected unique index violation on duplicate name")
	}
}
