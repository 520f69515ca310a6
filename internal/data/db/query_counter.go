package db

import (
	"context"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"
)

type scopeKey struct{}

// CountQueries returns a context whose statements are tallied separately from
// the global count, and a func reading that tally. Only statements issued with
// the returned context (or one derived from it) are counted.
func CountQueries(ctx context.Context) (context.Context, func() int64) {
	n := new(atomic.Int64)
	return context.WithValue(ctx, scopeKey{}, n), n.Load
}

// QueryCounter is a gorm plugin that counts read round trips (SELECTs issued
// through Find/First/Take/Count/Scan/Row). Preloads run their own statements
// and are counted individually; joined associations are not.
type QueryCounter struct {
	total atomic.Int64

	mu       sync.RWMutex
	observer func(table string)
}

func NewQueryCounter() *QueryCounter {
	return &QueryCounter{}
}

func (c *QueryCounter) Name() string { return "shop:query_counter" }

func (c *QueryCounter) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().After("gorm:query").Register("shop:count_query", c.observe); err != nil {
		return err
	}
	return db.Callback().Row().After("gorm:row").Register("shop:count_row", c.observe)
}

// OnQuery installs a hook receiving the table of every counted statement.
func (c *QueryCounter) OnQuery(fn func(table string)) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

func (c *QueryCounter) observe(tx *gorm.DB) {
	c.total.Add(1)
	if tx.Statement != nil && tx.Statement.Context != nil {
		if n, ok := tx.Statement.Context.Value(scopeKey{}).(*atomic.Int64); ok {
			n.Add(1)
		}
	}
	c.mu.RLock()
	fn := c.observer
	c.mu.RUnlock()
	if fn != nil && tx.Statement != nil {
		fn(tx.Statement.Table)
	}
}

func (c *QueryCounter) Count() int64 { return c.total.Load() }

func (c *QueryCounter) Reset() { c.total.Store(0) }

// CounterOf returns the counter registered on db, or nil.
func CounterOf(db *gorm.DB) *QueryCounter {
	if db == nil || db.Config == nil {
		return nil
	}
	p, ok := db.Config.Plugins[(&QueryCounter{}).Name()]
	if !ok {
		return nil
	}
	c, _ := p.(*QueryCounter)
	return c
}
