package basket

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// Repository persists baskets, their line items and the basket audit log.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindOpenForUpdate returns the user's PENDING basket, row-locked on Postgres.
// It returns gorm.ErrRecordNotFound when the user has no open basket.
func (r *Repository) FindOpenForUpdate(ctx context.Context, userKey string) (*models.Basket, error) {
	var basket models.Basket
	err := db.ForUpdate(r.db.WithContext(ctx)).
		Where("user_key = ? AND status = ?", userKey, enums.BasketStatusPending).
		Order("created_at ASC").
		First(&basket).Error
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

// FindOpenWithItems loads the PENDING basket with items and their products.
func (r *Repository) FindOpenWithItems(ctx context.Context, userKey string) (*models.Basket, error) {
	var basket models.Basket
	err := r.db.WithContext(ctx).
		Preload("Items", func(q *gorm.DB) *gorm.DB {
			return q.Order("created_at ASC").Order("product_id ASC")
		}).
		Preload("Items.Product").
		Where("user_key = ? AND status = ?", userKey, enums.BasketStatusPending).
		Order("created_at ASC").
		First(&basket).Error
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *Repository) CreateBasket(ctx context.Context, basket *models.Basket) error {
	return r.db.WithContext(ctx).Create(basket).Error
}

// InsertItem adds the product to the basket and reports whether a row was written.
// A product already in the basket is left alone.
func (r *Repository) InsertItem(ctx context.Context, basketID, productID uuid.UUID) (bool, error) {
	item := models.BasketItem{BasketID: basketID, ProductID: productID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Product").
		Create(&item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) DeleteItem(ctx context.Context, basketID, productID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("basket_id = ? AND product_id = ?", basketID, productID).
		Delete(&models.BasketItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteItems clears every line item of the basket.
func (r *Repository) DeleteItems(ctx context.Context, basketID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("basket_id = ?", basketID).
		Delete(&models.BasketItem{}).Error
}

// MarkCompleted flips a PENDING basket to COMPLETED. It returns false when the
// basket was no longer pending.
func (r *Repository) MarkCompleted(ctx context.Context, basketID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Basket{}).
		Where("id = ? AND status = ?", basketID, enums.BasketStatusPending).
		Update("status", enums.BasketStatusCompleted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) AppendLog(ctx context.Context, entry *models.BasketLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListItems returns the basket's line items with their products.
func (r *Repository) ListItems(ctx context.Context, basketID uuid.UUID) ([]models.BasketItem, error) {
	var items []models.BasketItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("basket_id = ?", basketID).
		Order("created_at ASC").
		Order("product_id ASC").
		Find(&items).Error
	return items, err
}
