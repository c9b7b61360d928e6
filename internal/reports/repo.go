package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// RemovedProductRow is one product a shopper dropped from a basket they later checked out.
type RemovedProductRow struct {
	LogID        int64     `json:"-" gorm:"column:log_id"`
	ProductName  string    `json:"product_name" gorm:"column:product_name"`
	UserKey      string    `json:"user" gorm:"column:user_key"`
	RemovedAt    time.Time `json:"removed_at" gorm:"column:removed_at"`
	CheckedOutAt time.Time `json:"checked_out_at" gorm:"column:checked_out_at"`
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RemovedBeforeCheckout joins removal log entries to completed baskets that
// produced an order. Baskets never checked out are excluded by the inner joins.
func (r *Repository) RemovedBeforeCheckout(ctx context.Context) ([]RemovedProductRow, error) {
	var rows []RemovedProductRow
	err := r.db.WithContext(ctx).
		Table("basket_logs AS l").
		Select(`l.id AS log_id,
			p.name AS product_name,
			l.user_key AS user_key,
			l.created_at AS removed_at,
			o.created_at AS checked_out_at`).
		Joins("JOIN baskets b ON b.id = l.basket_id AND b.status = ?", enums.BasketStatusCompleted).
		Joins("JOIN orders o ON o.basket_id = b.id").
		Joins("JOIN products p ON p.id = l.product_id").
		Where("l.type = ?", enums.BasketLogProductRemoved).
		Order("l.id ASC").
		Scan(&rows).Error
	return rows, err
}
