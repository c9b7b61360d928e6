package helpers

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/db/models"
)

// BuildOrderLines snapshots each basket item's product and returns the lines
// with their sum.
func BuildOrderLines(items []models.BasketItem) ([]models.OrderLine, decimal.Decimal) {
	lines := make([]models.OrderLine, 0, len(items))
	sum := decimal.Zero
	for _, item := range items {
		lines = append(lines, models.OrderLine{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.Price,
		})
		sum = sum.Add(item.Product.Price)
	}
	return lines, sum
}
