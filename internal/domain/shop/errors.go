package shop

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientStock is matched by every *InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateMember is returned when a member with the same name exists.
	ErrDuplicateMember = errors.New("member already exists")
	// ErrInvalidQuantity rejects negative stock deltas and non-positive order counts.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrOrderAlreadyDelivered blocks cancellation once the delivery completed.
	ErrOrderAlreadyDelivered = errors.New("order already delivered")
	// ErrOrderAlreadyCancelled blocks a second cancellation.
	ErrOrderAlreadyCancelled = errors.New("order already cancelled")
)

// InsufficientStockError reports a RemoveStock that would drive stock below zero.
type InsufficientStockError struct {
	ItemID    uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: requested %d, available %d", e.ItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
