package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/logger"
)

func newSQLiteService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Driver:     DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, logger.Nop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	return svc
}

func TestNewServiceRejectsUnknownDriver(t *testing.T) {
	if _, err := NewService(Config{Driver: "oracle"}, logger.Nop()); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "shop",
		PostgresPassword: "pw",
		PostgresName:     "jpashop",
	}
	if got, want := cfg.postgresDSN(), "postgres://shop:pw@db:5432/jpashop?sslmode=disable"; got != want {
		t.Fatalf("dsn: want=%s got=%s", want, got)
	}
}

func TestMigratedSchemaEnforcesStockCheck(t *testing.T) {
	svc := newSQLiteService(t)
	gdb := svc.DB()

	item := shop.NewBook("book", 100, 1, "a", "i")
	if err := gdb.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	err := gdb.Model(&shop.Item{}).Where("id = ?", item.ID).Update("stock_quantity", -1).Error
	if err == nil {
		t.Fatalf("expected CHECK constraint to reject negative stock")
	}
}

func TestQueryCounterCountsReadsOnly(t *testing.T) {
	svc := newSQLiteService(t)
	gdb := svc.DB()
	counter := svc.Queries()
	if CounterOf(gdb) != counter {
		t.Fatalf("CounterOf should find the registered plugin")
	}

	var tables []string
	counter.OnQuery(func(table string) { tables = append(tables, table) })
	counter.Reset()

	if err := gdb.Create(&shop.Member{Name: "kim"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := counter.Count(); got != 0 {
		t.Fatalf("writes must not be counted, got %d", got)
	}

	var members []shop.Member
	if err := gdb.Find(&members).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	var n int64
	if err := gdb.Model(&shop.Member{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if got := counter.Count(); got != 2 {
		t.Fatalf("reads: want=2 got=%d", got)
	}
	if len(tables) != 2 || tables[0] != "members" {
		t.Fatalf("observer tables: %v", tables)
	}
}

func TestCountQueriesScopesToContext(t *testing.T) {
	svc := newSQLiteService(t)
	gdb := svc.DB()

	ctx, scoped := CountQueries(context.Background())
	var members []shop.Member
	if err := gdb.WithContext(ctx).Find(&members).Error; err != nil {
		t.Fatalf("scoped find: %v", err)
	}
	if err := gdb.Find(&members).Error; err != nil {
		t.Fatalf("unscoped find: %v", err)
	}
	if got := scoped(); got != 1 {
		t.Fatalf("scoped count: want=1 got=%d", got)
	}
}
