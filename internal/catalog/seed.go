package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// DemoProducts is the fixed demo catalog.
func DemoProducts() []models.Product {
	return []models.Product{
		{Name: "Pioneer DJ Mixer", Price: decimal.RequireFromString("699")},
		{Name: "Roland Wave Sampler", Price: decimal.RequireFromString("485")},
		{Name: "Reloop Headphone", Price: decimal.RequireFromString("159")},
		{Name: "Rokit Monitor", Price: decimal.RequireFromString("189.9")},
		{Name: "Fisherprice Baby Mixer", Price: decimal.RequireFromString("120")},
	}
}

// Seed inserts the demo catalog, skipping products that already exist by name.
// It returns the number of products created.
func Seed(ctx context.Context, client *db.Client, logg *logger.Logger) (int, error) {
	created := 0
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		for _, p := range DemoProducts() {
			product := p
			inserted, err := repo.EnsureByName(ctx, &product)
			if err != nil {
				return err
			}
			if inserted {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "created", created), "catalog seeded")
	}
	return created, nil
}
