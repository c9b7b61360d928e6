package basket

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/outbox"
	"github.com/angelmondragon/storefront/pkg/outbox/payloads"
)

const openBasketSavepoint = "open_basket"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service mutates the shopper's open basket. Every call names the identity it acts for.
type Service interface {
	AddProduct(ctx context.Context, id identity.Identity, productID uuid.UUID) (*AddResult, error)
	RemoveProduct(ctx context.Context, id identity.Identity, productID uuid.UUID) (*RemoveResult, error)
	GetOpenBasket(ctx context.Context, id identity.Identity) (*View, error)
}

// AddResult describes what an add request changed.
type AddResult struct {
	BasketID  uuid.UUID `json:"basket_id"`
	Added     bool      `json:"added"`
	NewBasket bool      `json:"new_basket"`
}

// RemoveResult describes what a remove request changed. BasketID is nil when
// the shopper had no open basket.
type RemoveResult struct {
	BasketID *uuid.UUID `json:"basket_id,omitempty"`
	Removed  bool       `json:"removed"`
}

type ServiceParams struct {
	DB           txRunner
	Baskets      *Repository
	Products     *catalog.Repository
	Outbox       outbox.Emitter
	Fingerprints identity.Fingerprinter
	Metrics      *metrics.ShopMetrics
	Logger       *logger.Logger
}

type service struct {
	db           txRunner
	baskets      *Repository
	products     *catalog.Repository
	outbox       outbox.Emitter
	fingerprints identity.Fingerprinter
	metrics      *metrics.ShopMetrics
	logg         *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Baskets == nil {
		return nil, fmt.Errorf("basket repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		db:           params.DB,
		baskets:      params.Baskets,
		products:     params.Products,
		outbox:       params.Outbox,
		fingerprints: params.Fingerprints,
		metrics:      params.Metrics,
		logg:         params.Logger,
	}, nil
}

func (s *service) AddProduct(ctx context.Context, id identity.Identity, productID uuid.UUID) (*AddResult, error) {
	if err := validateRequest(id, productID); err != nil {
		return nil, err
	}
	userKey := id.Key()
	result := &AddResult{}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.products.WithTx(tx).FindByID(ctx, productID); err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		baskets := s.baskets.WithTx(tx)
		basket, created, err := s.openOrCreate(ctx, tx, userKey)
		if err != nil {
			return err
		}
		result.BasketID = basket.ID
		result.NewBasket = created

		inserted, err := baskets.InsertItem(ctx, basket.ID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert basket item")
		}
		if !inserted {
			return nil
		}
		result.Added = true

		if err := baskets.AppendLog(ctx, &models.BasketLog{
			UserKey:   userKey,
			Type:      enums.BasketLogProductAdded,
			ProductID: productID,
			BasketID:  basket.ID,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append basket log")
		}
		return s.emit(ctx, tx, id, enums.EventBasketItemAdded, basket.ID, payloads.BasketItemAddedEvent{
			BasketID:  basket.ID,
			ProductID: productID,
			NewBasket: created,
		})
	})
	if err != nil {
		s.metrics.IncBasketMutation(metrics.OpAdd, metrics.OutcomeError)
		return nil, err
	}

	outcome := metrics.OutcomeNoop
	if result.Added {
		outcome = metrics.OutcomeApplied
	}
	s.metrics.IncBasketMutation(metrics.OpAdd, outcome)
	s.logg.Info(s.logContext(ctx, id, result.BasketID, productID, outcome), "basket add handled")
	return result, nil
}

// openOrCreate returns the locked open basket, creating it when missing. A
// concurrent request that creates the basket first trips the partial unique
// index; the savepoint keeps the transaction usable so the winner's row can be read.
func (s *service) openOrCreate(ctx context.Context, tx *gorm.DB, userKey string) (*models.Basket, bool, error) {
	baskets := s.baskets.WithTx(tx)
	basket, err := baskets.FindOpenForUpdate(ctx, userKey)
	if err == nil {
		return basket, false, nil
	}
	if !db.IsNotFound(err) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
	}

	if err := tx.SavePoint(openBasketSavepoint).Error; err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "savepoint")
	}
	basket = &models.Basket{UserKey: userKey, Status: enums.BasketStatusPending}
	err = baskets.CreateBasket(ctx, basket)
	if err == nil {
		return basket, true, nil
	}
	if !db.IsUniqueViolation(err, models.OpenBasketIndex) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create basket")
	}
	if rbErr := tx.RollbackTo(openBasketSavepoint).Error; rbErr != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, rbErr, "rollback to savepoint")
	}
	basket, err = baskets.FindOpenForUpdate(ctx, userKey)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload open basket")
	}
	return basket, false, nil
}

func (s *service) RemoveProduct(ctx context.Context, id identity.Identity, productID uuid.UUID) (*RemoveResult, error) {
	if err := validateRequest(id, productID); err != nil {
		return nil, err
	}
	userKey := id.Key()
	result := &RemoveResult{}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.products.WithTx(tx).FindByID(ctx, productID); err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		baskets := s.baskets.WithTx(tx)
		basket, err := baskets.FindOpenForUpdate(ctx, userKey)
		if err != nil {
			if db.IsNotFound(err) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
		}
		basketID := basket.ID
		result.BasketID = &basketID

		removed, err := baskets.DeleteItem(ctx, basket.ID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete basket item")
		}
		result.Removed = removed

		if err := baskets.AppendLog(ctx, &models.BasketLog{
			UserKey:   userKey,
			Type:      enums.BasketLogProductRemoved,
			ProductID: productID,
			BasketID:  basket.ID,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append basket log")
		}
		return s.emit(ctx, tx, id, enums.EventBasketItemRemoved, basket.ID, payloads.BasketItemRemovedEvent{
			BasketID:  basket.ID,
			ProductID: productID,
			Removed:   removed,
		})
	})
	if err != nil {
		s.metrics.IncBasketMutation(metrics.OpRemove, metrics.OutcomeError)
		return nil, err
	}

	outcome := metrics.OutcomeNoop
	if result.BasketID != nil {
		outcome = metrics.OutcomeApplied
	}
	s.metrics.IncBasketMutation(metrics.OpRemove, outcome)
	var basketID uuid.UUID
	if result.BasketID != nil {
		basketID = *result.BasketID
	}
	s.logg.Info(s.logContext(ctx, id, basketID, productID, outcome), "basket remove handled")
	return result, nil
}

func (s *service) GetOpenBasket(ctx context.Context, id identity.Identity) (*View, error) {
	if id.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identity is required")
	}
	basket, err := s.baskets.FindOpenWithItems(ctx, id.Key())
	if err != nil {
		if db.IsNotFound(err) {
			return emptyView(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
	}
	return NewView(basket), nil
}

func (s *service) emit(ctx context.Context, tx *gorm.DB, id identity.Identity, eventType enums.OutboxEventType, basketID uuid.UUID, data any) error {
	event := outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateBasket,
		AggregateID:   basketID,
		Data:          data,
	}
	if s.fingerprints != nil {
		event.Actor = &outbox.ActorRef{Identity: s.fingerprints.Fingerprint(id)}
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit "+string(eventType))
	}
	return nil
}

func (s *service) logContext(ctx context.Context, id identity.Identity, basketID, productID uuid.UUID, outcome string) context.Context {
	ctx = s.logg.WithBasketID(ctx, basketID.String())
	if s.fingerprints != nil {
		ctx = s.logg.WithIdentity(ctx, s.fingerprints.Fingerprint(id))
	}
	return s.logg.WithFields(ctx, map[string]any{
		"product_id": productID.String(),
		"outcome":    outcome,
	})
}

func validateRequest(id identity.Identity, productID uuid.UUID) error {
	if id.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "identity is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return nil
}
