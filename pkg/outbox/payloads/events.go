package payloads

import (
	"time"

	"github.com/google/uuid"
)

// BasketItemAddedEvent is emitted when a product line is inserted into an open basket.
type BasketItemAddedEvent struct {
	BasketID  uuid.UUID `json:"basket_id"`
	ProductID uuid.UUID `json:"product_id"`
	NewBasket bool      `json:"new_basket"`
}

// BasketItemRemovedEvent is emitted for every removal request against an open basket.
type BasketItemRemovedEvent struct {
	BasketID  uuid.UUID `json:"basket_id"`
	ProductID uuid.UUID `json:"product_id"`
	Removed   bool      `json:"removed"`
}

// OrderPlacedEvent is emitted once per checkout, in the checkout transaction.
type OrderPlacedEvent struct {
	OrderID    uuid.UUID   `json:"order_id"`
	BasketID   uuid.UUID   `json:"basket_id"`
	Sum        string      `json:"sum"`
	ItemCount  int         `json:"item_count"`
	ProductIDs []uuid.UUID `json:"product_ids"`
	PlacedAt   time.Time   `json:"placed_at"`
}
