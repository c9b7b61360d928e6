package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/checkout/helpers"
	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/outbox"
	"github.com/angelmondragon/storefront/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type basketReader interface {
	GetOpenBasket(ctx context.Context, id identity.Identity) (*basket.View, error)
}

// Service turns the shopper's open basket into an order.
type Service interface {
	// Checkout returns (nil, nil) when there is nothing to check out.
	Checkout(ctx context.Context, id identity.Identity, address string) (*models.Order, error)
	Preview(ctx context.Context, id identity.Identity) (*basket.View, error)
}

type ServiceParams struct {
	DB           txRunner
	Baskets      *basket.Repository
	Orders       orders.Repository
	BasketReader basketReader
	Outbox       outbox.Emitter
	Fingerprints identity.Fingerprinter
	Metrics      *metrics.ShopMetrics
	Logger       *logger.Logger
}

type service struct {
	tx           txRunner
	baskets      *basket.Repository
	orders       orders.Repository
	reader       basketReader
	outbox       outbox.Emitter
	fingerprints identity.Fingerprinter
	metrics      *metrics.ShopMetrics
	logg         *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Baskets == nil {
		return nil, fmt.Errorf("basket repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.BasketReader == nil {
		return nil, fmt.Errorf("basket reader required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:           params.DB,
		baskets:      params.Baskets,
		orders:       params.Orders,
		reader:       params.BasketReader,
		outbox:       params.Outbox,
		fingerprints: params.Fingerprints,
		metrics:      params.Metrics,
		logg:         params.Logger,
	}, nil
}

func (s *service) Preview(ctx context.Context, id identity.Identity) (*basket.View, error) {
	return s.reader.GetOpenBasket(ctx, id)
}

func (s *service) Checkout(ctx context.Context, id identity.Identity, address string) (*models.Order, error) {
	if id.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identity is required")
	}
	userKey := id.Key()

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		baskets := s.baskets.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		open, err := baskets.FindOpenForUpdate(ctx, userKey)
		if err != nil {
			if db.IsNotFound(err) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
		}
		items, err := baskets.ListItems(ctx, open.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket items")
		}
		if len(items) == 0 {
			return nil
		}
		// with nothing to check out the address is never looked at
		address, err := helpers.NormalizeAddress(address)
		if err != nil {
			return err
		}

		lines, sum := helpers.BuildOrderLines(items)
		order := &models.Order{
			UserKey:  userKey,
			BasketID: open.ID,
			Address:  address,
			Sum:      sum,
			Lines:    lines,
		}
		if err := ordersRepo.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "ux_orders_basket_id") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "basket already checked out")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := baskets.DeleteItems(ctx, open.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear basket items")
		}
		completed, err := baskets.MarkCompleted(ctx, open.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete basket")
		}
		if !completed {
			return pkgerrors.New(pkgerrors.CodeConflict, "basket already checked out")
		}

		productIDs := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			productIDs = append(productIDs, line.ProductID)
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventOrderPlaced,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderPlacedEvent{
				OrderID:    order.ID,
				BasketID:   open.ID,
				Sum:        sum.StringFixed(2),
				ItemCount:  len(lines),
				ProductIDs: productIDs,
				PlacedAt:   order.CreatedAt,
			},
		}
		if s.fingerprints != nil {
			event.Actor = &outbox.ActorRef{Identity: s.fingerprints.Fingerprint(id)}
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit order_placed")
		}

		placed = order
		return nil
	})
	if err != nil {
		s.metrics.IncCheckout(metrics.OutcomeError)
		return nil, err
	}
	if placed == nil {
		s.metrics.IncCheckout(metrics.OutcomeNoop)
		s.logg.Info(s.logg.WithField(ctx, "outcome", metrics.OutcomeNoop), "checkout skipped, basket empty")
		return nil, nil
	}

	s.metrics.IncCheckout(metrics.OutcomeApplied)
	s.metrics.ObserveOrderValue(placed.Sum)
	logCtx := s.logg.WithOrderID(ctx, placed.ID.String())
	logCtx = s.logg.WithBasketID(logCtx, placed.BasketID.String())
	logCtx = s.logg.WithFields(logCtx, map[string]any{
		"item_count": len(placed.Lines),
		"sum":        placed.Sum.StringFixed(2),
	})
	s.logg.Info(logCtx, "order placed")
	return placed, nil
}
