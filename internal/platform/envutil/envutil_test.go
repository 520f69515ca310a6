package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("SHOP_TEST_STRING", "  value ")
	t.Setenv("SHOP_TEST_INT", "42")
	t.Setenv("SHOP_TEST_BAD_INT", "x")
	t.Setenv("SHOP_TEST_BOOL", "Off")
	t.Setenv("SHOP_TEST_FLOAT", "0.25")
	t.Setenv("SHOP_TEST_SECONDS", "90")

	if got := String("SHOP_TEST_STRING", "d"); got != "value" {
		t.Fatalf("String: %q", got)
	}
	if got := String("SHOP_TEST_MISSING", "d"); got != "d" {
		t.Fatalf("String default: %q", got)
	}
	if got := Int("SHOP_TEST_INT", 1); got != 42 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("SHOP_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: %d", got)
	}
	if Bool("SHOP_TEST_BOOL", true) {
		t.Fatalf("Bool: expected false")
	}
	if !Bool("SHOP_TEST_MISSING", true) {
		t.Fatalf("Bool default: expected true")
	}
	if got := Float("SHOP_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: %v", got)
	}
	if got := Seconds("SHOP_TEST_SECONDS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: %v", got)
	}
}
