package enums

import "testing"

func TestParseBasketStatus(t *testing.T) {
	got, err := ParseBasketStatus("PENDING")
	if err != nil || got != BasketStatusPending {
		t.Fatalf("expected PENDING, got %q err=%v", got, err)
	}
	if _, err := ParseBasketStatus("pending"); err == nil {
		t.Fatal("status parsing is case sensitive")
	}
	if BasketStatus("ABANDONED").IsValid() {
		t.Fatal("unexpected valid status")
	}
}

func TestParseBasketLogType(t *testing.T) {
	for _, raw := range []string{"PRODUCT_ADDED", "PRODUCT_REMOVED"} {
		got, err := ParseBasketLogType(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got.String() != raw {
			t.Fatalf("expected %q, got %q", raw, got)
		}
	}
	if _, err := ParseBasketLogType("REMOVED_FROM_BASKET"); err == nil {
		t.Fatal("expected unknown log type to fail")
	}
}

func TestOutboxEnums(t *testing.T) {
	if !EventOrderPlaced.IsValid() {
		t.Fatal("order_placed should be valid")
	}
	if _, err := ParseOutboxEventType("order_created"); err == nil {
		t.Fatal("expected unknown event type to fail")
	}
	if _, err := ParseOutboxAggregateType("basket"); err != nil {
		t.Fatalf("basket aggregate: %v", err)
	}
}
