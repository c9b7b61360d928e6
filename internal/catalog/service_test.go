package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)

	created, err := Seed(ctx, client, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	created, err = Seed(ctx, client, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)

	byName := map[string]string{}
	for _, p := range products {
		byName[p.Name] = p.Price.StringFixed(2)
	}
	assert.Equal(t, "699.00", byName["Pioneer DJ Mixer"])
	assert.Equal(t, "189.90", byName["Rokit Monitor"])
}

func TestListProductsEmptyCatalog(t *testing.T) {
	client := dbtest.Open(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	p := dbtest.MustCreateProduct(t, client.DB(), "Reloop Headphone", "159")

	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reloop Headphone", got.Name)

	_, err = svc.GetProduct(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.GetProduct(ctx, uuid.Nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListProductsWrapsStoreFailure(t *testing.T) {
	client := dbtest.Open(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = svc.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
