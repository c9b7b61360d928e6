package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// OpenBasketIndex is the partial unique index allowing one PENDING basket per user key.
const OpenBasketIndex = "ux_baskets_open_per_user"

// Basket is a shopper's basket. At most one PENDING basket exists per UserKey.
type Basket struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	UserKey   string             `gorm:"column:user_key;not null;uniqueIndex:ux_baskets_open_per_user,where:status = 'PENDING'"`
	Status    enums.BasketStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	Items     []BasketItem       `gorm:"foreignKey:BasketID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Basket) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BasketItem joins a basket to a product; the composite key keeps a product unique per basket.
type BasketItem struct {
	BasketID  uuid.UUID `gorm:"column:basket_id;type:uuid;primaryKey;autoIncrement:false"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey;autoIncrement:false"`
	Product   Product   `gorm:"foreignKey:ProductID;references:ID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// BasketLog is the append-only audit trail of basket mutations. ID orders entries.
type BasketLog struct {
	ID        int64               `gorm:"column:id;primaryKey;autoIncrement"`
	UserKey   string              `gorm:"column:user_key;not null;index:idx_basket_logs_user_key"`
	Type      enums.BasketLogType `gorm:"column:type;type:text;not null;index:idx_basket_logs_type"`
	ProductID uuid.UUID           `gorm:"column:product_id;type:uuid;not null"`
	Product   Product             `gorm:"foreignKey:ProductID;references:ID"`
	BasketID  uuid.UUID           `gorm:"column:basket_id;type:uuid;not null;index:idx_basket_logs_basket_id"`
	Basket    Basket              `gorm:"foreignKey:BasketID;references:ID"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}
