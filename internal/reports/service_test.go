package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/pkg/db/dbtest"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/outbox"
)

func TestRemovedBeforeCheckoutOnlyListsCheckedOutBaskets(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	logg := logger.New(logger.Options{ServiceName: "reports-test"})
	emitter := outbox.NewService(outbox.NewRepository(client.DB()), logg)
	basketRepo := basket.NewRepository(client.DB())

	baskets, err := basket.NewService(basket.ServiceParams{
		DB:       client,
		Baskets:  basketRepo,
		Products: catalog.NewRepository(client.DB()),
		Outbox:   emitter,
		Logger:   logg,
	})
	require.NoError(t, err)
	checkouts, err := checkout.NewService(checkout.ServiceParams{
		DB:           client,
		Baskets:      basketRepo,
		Orders:       orders.NewRepository(client.DB()),
		BasketReader: baskets,
		Outbox:       emitter,
		Logger:       logg,
	})
	require.NoError(t, err)

	mixer := dbtest.MustCreateProduct(t, client.DB(), "Pioneer DJ Mixer", "699")
	sampler := dbtest.MustCreateProduct(t, client.DB(), "Roland Wave Sampler", "485")
	buyer := identity.Identity{Name: "Ada Lovelace", Email: "ada@example.com"}
	browser := identity.Identity{Name: "Grace Hopper", Email: "grace@example.com"}

	// buyer drops the mixer and checks out with the sampler
	_, err = baskets.AddProduct(ctx, buyer, mixer.ID)
	require.NoError(t, err)
	_, err = baskets.AddProduct(ctx, buyer, sampler.ID)
	require.NoError(t, err)
	_, err = baskets.RemoveProduct(ctx, buyer, mixer.ID)
	require.NoError(t, err)
	order, err := checkouts.Checkout(ctx, buyer, "1 Main St")
	require.NoError(t, err)
	require.NotNil(t, order)

	// browser drops the mixer but never checks out
	_, err = baskets.AddProduct(ctx, browser, mixer.ID)
	require.NoError(t, err)
	_, err = baskets.RemoveProduct(ctx, browser, mixer.ID)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	rows, err := svc.RemovedBeforeCheckout(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Pioneer DJ Mixer", rows[0].ProductName)
	assert.Equal(t, buyer.Key(), rows[0].UserKey)
	assert.False(t, rows[0].RemovedAt.IsZero())
	assert.False(t, rows[0].CheckedOutAt.Before(rows[0].RemovedAt))
}

func TestRemovedBeforeCheckoutEmpty(t *testing.T) {
	client := dbtest.Open(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)

	rows, err := svc.RemovedBeforeCheckout(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
