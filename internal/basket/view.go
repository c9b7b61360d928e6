package basket

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/db/models"
)

// ItemView is one product line of an open basket.
type ItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// View is the open basket as shown to the shopper. BasketID is nil when the
// shopper has no open basket yet.
type View struct {
	BasketID *uuid.UUID      `json:"basket_id,omitempty"`
	Items    []ItemView      `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

func (v *View) Count() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

// IsEmpty reports whether there is nothing to check out.
func (v *View) IsEmpty() bool {
	return v.Count() == 0
}

// Contains reports whether the product is already in the basket.
func (v *View) Contains(productID uuid.UUID) bool {
	if v == nil {
		return false
	}
	for _, item := range v.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func emptyView() *View {
	return &View{Items: []ItemView{}, Total: decimal.Zero}
}

// NewView builds the shopper-facing view of a basket loaded with its items.
func NewView(b *models.Basket) *View {
	if b == nil {
		return emptyView()
	}
	id := b.ID
	view := &View{BasketID: &id, Items: make([]ItemView, 0, len(b.Items)), Total: decimal.Zero}
	for _, item := range b.Items {
		view.Items = append(view.Items, ItemView{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
		})
		view.Total = view.Total.Add(item.Product.Price)
	}
	return view
}
