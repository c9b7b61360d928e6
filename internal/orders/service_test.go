package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/pkg/db/dbtest"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

var ada = identity.Identity{Name: "Ada Lovelace", Email: "ada@example.com"}

func insertOrder(t *testing.T, conn *gorm.DB, userKey string, createdAt time.Time, prices ...string) *models.Order {
	t.Helper()
	order := &models.Order{
		UserKey:   userKey,
		BasketID:  uuid.New(),
		Address:   "1 Main St",
		Sum:       decimal.Zero,
		CreatedAt: createdAt,
	}
	for i, price := range prices {
		p := decimal.RequireFromString(price)
		order.Sum = order.Sum.Add(p)
		order.Lines = append(order.Lines, models.OrderLine{
			ProductID:   uuid.New(),
			ProductName: string(rune('A' + i)),
			UnitPrice:   p,
		})
	}
	require.NoError(t, NewRepository(conn).Create(context.Background(), order))
	return order
}

func TestListForIdentityNewestFirstWithLines(t *testing.T) {
	client := dbtest.Open(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	older := insertOrder(t, client.DB(), ada.Key(), base, "10", "20")
	newer := insertOrder(t, client.DB(), ada.Key(), base.Add(time.Hour), "5")
	insertOrder(t, client.DB(), "someone - else@example.com", base.Add(2*time.Hour), "1")

	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)

	list, err := svc.ListForIdentity(context.Background(), ada, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, newer.ID, list.Orders[0].ID)
	assert.Equal(t, older.ID, list.Orders[1].ID)
	assert.Empty(t, list.NextCursor)

	require.Len(t, list.Orders[1].Lines, 2)
	assert.Equal(t, "30.00", list.Orders[1].Sum.StringFixed(2))
	assert.Equal(t, "A", list.Orders[1].Lines[0].ProductName)
}

func TestListForIdentityPaginates(t *testing.T) {
	client := dbtest.Open(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		insertOrder(t, client.DB(), ada.Key(), base.Add(time.Duration(i)*time.Minute), "1")
	}
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)

	first, err := svc.ListForIdentity(context.Background(), ada, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.ListForIdentity(context.Background(), ada, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Empty(t, second.NextCursor)
	assert.True(t, second.Orders[0].CreatedAt.Before(first.Orders[1].CreatedAt))
}

func TestListForIdentityRejectsBadCursor(t *testing.T) {
	client := dbtest.Open(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)

	_, err = svc.ListForIdentity(context.Background(), ada, pagination.Params{Cursor: "not-base64!"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.ListForIdentity(context.Background(), identity.Identity{}, pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestOrderBasketIsUnique(t *testing.T) {
	client := dbtest.Open(t)
	order := insertOrder(t, client.DB(), ada.Key(), time.Now().UTC(), "1")

	dup := &models.Order{UserKey: ada.Key(), BasketID: order.BasketID, Address: "x", Sum: decimal.NewFromInt(1)}
	assert.Error(t, NewRepository(client.DB()).Create(context.Background(), dup))

	var found models.Order
	require.NoError(t, client.DB().Preload("Lines").Where("basket_id = ?", order.BasketID).First(&found).Error)
	assert.Equal(t, order.ID, found.ID)
	assert.Len(t, found.Lines, 1)
}
