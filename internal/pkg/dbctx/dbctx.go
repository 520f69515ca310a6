package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repositories run against Tx when it is set and fall back to their own
// handle otherwise.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Background is a unit of work with no transaction attached.
func Background() Context {
	return Context{Ctx: context.Background()}
}
