package aggregates

import (
	"errors"
	"testing"

	"github.com/yungbote/shop-backend/internal/domain/shop"
)

func TestWrapKeepsCauseChain(t *testing.T) {
	err := Wrap(CodeInvariantViolation, "Shop.Stock.Remove", &shop.InsufficientStockError{ItemID: 1, Requested: 3, Available: 2})
	if !IsCode(err, CodeInvariantViolation) {
		t.Fatalf("expected invariant code, got %q", CodeOf(err))
	}
	if !errors.Is(err, shop.ErrInsufficientStock) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(NewError(CodeConflict, "op", "stale", nil)) {
		t.Fatalf("conflict should be retryable by the caller")
	}
	if IsRetryable(NewError(CodeValidation, "op", "bad", nil)) {
		t.Fatalf("validation is not retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestErrorString(t *testing.T) {
	err := NewError(CodeNotFound, "Shop.Order.Cancel", "order 9 not found", nil)
	if got := err.Error(); got != "Shop.Order.Cancel: order 9 not found (not_found)" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestContractOp(t *testing.T) {
	cases := []struct {
		contract Contract
		action   string
		want     string
	}{
		{MemberAggregateContract, "Register", "Shop.Member.Register"},
		{StockAggregateContract, " RemoveStock ", "Shop.Stock.RemoveStock"},
		{OrderAggregateContract, "", "Shop.Order"},
		{Contract{}, "Cancel", "Cancel"},
	}
	for _, tc := range cases {
		if got := tc.contract.Op(tc.action); got != tc.want {
			t.Fatalf("Op(%q): want=%q got=%q", tc.action, tc.want, got)
		}
	}
}
