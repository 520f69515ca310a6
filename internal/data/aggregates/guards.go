package aggregates

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
)

// CASGuard provides compare-and-set writes for aggregate rows.
type CASGuard struct {
	db *gorm.DB
}

func NewCASGuard(db *gorm.DB) CASGuard {
	return CASGuard{db: db}
}

func (g CASGuard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx), nil
	}
	if g.db != nil {
		return g.db.WithContext(dbc.Ctx), nil
	}
	return nil, ValidationError("missing db transaction context")
}

// UpdateByVersion updates a row only when id+version match.
func (g CASGuard) UpdateByVersion(dbc dbctx.Context, table string, id uint, expectedVersion int, updates map[string]any) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	if table == "" || id == 0 {
		return false, ValidationError("table and id are required for UpdateByVersion")
	}
	if expectedVersion < 0 {
		return false, ValidationError("expectedVersion must be >= 0")
	}
	res := db.Table(table).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateByStatus updates a row only when its current status is allowed.
func (g CASGuard) UpdateByStatus(dbc dbctx.Context, table string, id uint, allowedStatuses []string, updates map[string]any) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	if table == "" || id == 0 {
		return false, ValidationError("table and id are required for UpdateByStatus")
	}
	if len(allowedStatuses) == 0 {
		return false, ValidationError("allowedStatuses must not be empty")
	}
	res := db.Table(table).
		Where("id = ? AND status IN ?", id, allowedStatuses).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RequireCASSuccess converts a failed compare-and-set into a typed conflict error.
func RequireCASSuccess(ok bool, message string) error {
	if ok {
		return nil
	}
	return ConflictError(strings.TrimSpace(message))
}

// RequireVersionMatch reports a conflict naming both versions when a row has
// moved past the version a write was computed from.
func RequireVersionMatch(table string, id uint, current, expected int) error {
	if expected < 0 {
		return ValidationError("expected version must be >= 0")
	}
	if current != expected {
		return ConflictError(fmt.Sprintf("%s %d is at version %d, expected %d", table, id, current, expected))
	}
	return nil
}

// currentVersion reads the committed-or-own-tx version of a row.
func (g CASGuard) currentVersion(dbc dbctx.Context, table string, id uint) (int, bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return 0, false, err
	}
	var versions []int
	if err := db.Table(table).Where("id = ?", id).Pluck("version", &versions).Error; err != nil {
		return 0, false, err
	}
	if len(versions) == 0 {
		return 0, false, nil
	}
	return versions[0], true, nil
}

// persistStock writes item's in-memory stock if the row is still at
// expectedVersion, and advances item.Version on success.
func persistStock(dbc dbctx.Context, guard CASGuard, item *types.Item, expectedVersion int) error {
	if item == nil {
		return nil
	}
	ok, err := guard.UpdateByVersion(dbc, types.Item{}.TableName(), item.ID, expectedVersion, map[string]any{
		"stock_quantity": item.StockQuantity,
		"version":        expectedVersion + 1,
		"updated_at":     time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if !ok {
		table := types.Item{}.TableName()
		current, found, err := guard.currentVersion(dbc, table, item.ID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("item %d: %w", item.ID, gorm.ErrRecordNotFound)
		}
		if err := RequireVersionMatch(table, item.ID, current, expectedVersion); err != nil {
			return err
		}
		return RequireCASSuccess(false, fmt.Sprintf("item %d was modified concurrently", item.ID))
	}
	item.Version = expectedVersion + 1
	return nil
}
