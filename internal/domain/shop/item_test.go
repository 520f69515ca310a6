package shop

import (
	"errors"
	"math"
	"testing"
)

func TestAddStock(t *testing.T) {
	book := NewBook("Test", 100, 10, "Jehun", "123456789")
	if err := book.AddStock(3); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if book.Stock() != 13 {
		t.Fatalf("stock: want=13 got=%d", book.Stock())
	}
}

func TestRemoveStockInsufficientLeavesStock(t *testing.T) {
	book := NewBook("Test", 100, 10, "Jehun", "123456789")
	book.ID = 42

	err := book.RemoveStock(11)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected *InsufficientStockError, got %T", err)
	}
	if ise.ItemID != 42 || ise.Requested != 11 || ise.Available != 10 {
		t.Fatalf("unexpected error detail: %+v", ise)
	}
	if book.Stock() != 10 {
		t.Fatalf("stock changed on rejected removal: got=%d", book.Stock())
	}
}

func TestRemoveStockExactlyToZero(t *testing.T) {
	item := NewAlbum("Kind of Blue", 30, 2, "Miles Davis", "")
	if err := item.RemoveStock(2); err != nil {
		t.Fatalf("RemoveStock: %v", err)
	}
	if item.Stock() != 0 {
		t.Fatalf("stock: want=0 got=%d", item.Stock())
	}
}

func TestNegativeQuantitiesRejected(t *testing.T) {
	item := NewMovie("Heat", 20, 5, "Mann", "Pacino")
	if err := item.AddStock(-1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("AddStock(-1): expected ErrInvalidQuantity, got %v", err)
	}
	if err := item.RemoveStock(-1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("RemoveStock(-1): expected ErrInvalidQuantity, got %v", err)
	}
	if item.Stock() != 5 {
		t.Fatalf("stock changed: got=%d", item.Stock())
	}
}

func TestAddStockOverflowRejected(t *testing.T) {
	book := NewBook("b", 1, 10, "", "")
	for _, q := range []int{math.MaxInt, math.MaxInt - 9} {
		if err := book.AddStock(q); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("AddStock(%d): want ErrInvalidQuantity got %v", q, err)
		}
		if book.Stock() != 10 {
			t.Fatalf("stock after AddStock(%d): want=10 got=%d", q, book.Stock())
		}
	}
	if err := book.AddStock(math.MaxInt - 10); err != nil {
		t.Fatalf("AddStock(MaxInt-10): %v", err)
	}
	if book.Stock() != math.MaxInt {
		t.Fatalf("stock: want=MaxInt got=%d", book.Stock())
	}
}

func TestAddThenRemoveArithmetic(t *testing.T) {
	for s := 0; s <= 6; s++ {
		for q1 := 0; q1 <= 6; q1++ {
			for q2 := 0; q2 <= s+q1+2; q2++ {
				item := NewBook("b", 1, s, "", "")
				if err := item.AddStock(q1); err != nil {
					t.Fatalf("AddStock(%d): %v", q1, err)
				}
				err := item.RemoveStock(q2)
				if q2 <= s+q1 {
					if err != nil {
						t.Fatalf("s=%d q1=%d q2=%d: unexpected error %v", s, q1, q2, err)
					}
					if item.Stock() != s+q1-q2 {
						t.Fatalf("s=%d q1=%d q2=%d: stock=%d", s, q1, q2, item.Stock())
					}
				} else {
					if !errors.Is(err, ErrInsufficientStock) {
						t.Fatalf("s=%d q1=%d q2=%d: expected insufficient stock, got %v", s, q1, q2, err)
					}
					if item.Stock() != s+q1 {
						t.Fatalf("s=%d q1=%d q2=%d: stock mutated to %d", s, q1, q2, item.Stock())
					}
				}
				if item.Stock() < 0 {
					t.Fatalf("negative stock reached: %d", item.Stock())
				}
			}
		}
	}
}

func TestCapabilities(t *testing.T) {
	var p Priced = NewBook("b", 250, 1, "", "")
	if p.UnitPrice() != 250 {
		t.Fatalf("UnitPrice: got=%d", p.UnitPrice())
	}
	var s Stocked = NewBook("b", 250, 1, "", "")
	if s.Stock() != 1 {
		t.Fatalf("Stock: got=%d", s.Stock())
	}
}
