package helpers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func TestNormalizeAddress(t *testing.T) {
	got, err := NormalizeAddress("  1 Main St\n")
	if err != nil {
		t.Fatalf("NormalizeAddress: %v", err)
	}
	if got != "1 Main St" {
		t.Fatalf("expected trimmed address, got %q", got)
	}

	for _, raw := range []string{"", "   ", strings.Repeat("x", MaxAddressLength+1)} {
		if _, err := NormalizeAddress(raw); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %d chars, got %v", len(raw), err)
		}
	}
	if _, err := NormalizeAddress(strings.Repeat("ü", MaxAddressLength)); err != nil {
		t.Fatalf("expected %d runes to be accepted: %v", MaxAddressLength, err)
	}
}

func TestBuildOrderLinesSumsPrices(t *testing.T) {
	items := []models.BasketItem{
		{ProductID: uuid.New(), Product: models.Product{Name: "A", Price: decimal.RequireFromString("10")}},
		{ProductID: uuid.New(), Product: models.Product{Name: "B", Price: decimal.RequireFromString("20")}},
	}
	lines, sum := BuildOrderLines(items)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !sum.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected sum 30, got %s", sum)
	}
	if lines[1].ProductName != "B" || lines[1].ProductID != items[1].ProductID {
		t.Fatalf("line snapshot mismatch: %+v", lines[1])
	}

	empty, zero := BuildOrderLines(nil)
	if len(empty) != 0 || !zero.IsZero() {
		t.Fatalf("expected empty result, got %v %s", empty, zero)
	}
}
