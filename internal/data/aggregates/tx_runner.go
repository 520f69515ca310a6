package aggregates

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
)

// TxRunner is the unit-of-work boundary for aggregate writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewGormTxRunner returns a runner backed by gorm transactions. When db is
// already a transaction the unit becomes a savepoint.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

// NewGormTxRunnerWithIsolation pins the isolation level of top-level
// transactions. sqlite ignores anything but the default.
func NewGormTxRunnerWithIsolation(db *gorm.DB, level sql.IsolationLevel) TxRunner {
	return &gormTxRunner{db: db, opts: &sql.TxOptions{Isolation: level}}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	body := func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	}
	if r.opts != nil {
		return r.db.WithContext(ctx).Transaction(body, r.opts)
	}
	return r.db.WithContext(ctx).Transaction(body)
}
