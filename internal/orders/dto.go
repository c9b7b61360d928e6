package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/db/models"
)

// OrderLineView is one purchased product with the price paid.
type OrderLineView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderView is the shopper-facing order.
type OrderView struct {
	ID        uuid.UUID       `json:"id"`
	Address   string          `json:"address"`
	Sum       decimal.Decimal `json:"sum"`
	Lines     []OrderLineView `json:"lines"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderList is one page of a shopper's orders, newest first.
type OrderList struct {
	Orders     []OrderView `json:"orders"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// NewOrderView maps a persisted order with its lines.
func NewOrderView(o models.Order) OrderView {
	view := OrderView{
		ID:        o.ID,
		Address:   o.Address,
		Sum:       o.Sum,
		Lines:     make([]OrderLineView, 0, len(o.Lines)),
		CreatedAt: o.CreatedAt,
	}
	for _, line := range o.Lines {
		view.Lines = append(view.Lines, OrderLineView{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
		})
	}
	return view
}
