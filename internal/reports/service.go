package reports

import (
	"context"
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

type removedProductsReader interface {
	RemovedBeforeCheckout(ctx context.Context) ([]RemovedProductRow, error)
}

// Service backs the dashboard. It only reads.
type Service interface {
	RemovedBeforeCheckout(ctx context.Context) ([]RemovedProductRow, error)
}

type service struct {
	repo removedProductsReader
}

func NewService(repo removedProductsReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) RemovedBeforeCheckout(ctx context.Context) ([]RemovedProductRow, error) {
	rows, err := s.repo.RemovedBeforeCheckout(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load removed products report")
	}
	if rows == nil {
		rows = []RemovedProductRow{}
	}
	return rows, nil
}
