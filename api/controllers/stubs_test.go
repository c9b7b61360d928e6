package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/reports"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

var testShopper = identity.Identity{Name: "Ada Lovelace", Email: "ada@example.com"}

func withShopper(r *http.Request) *http.Request {
	return r.WithContext(identity.WithIdentity(r.Context(), testShopper))
}

type stubCatalog struct {
	products []models.Product
	err      error
}

func (s stubCatalog) ListProducts(context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s stubCatalog) GetProduct(_ context.Context, id uuid.UUID) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, s.err
}

type stubBaskets struct {
	view      *basket.View
	addResult *basket.AddResult
	err       error

	added   []uuid.UUID
	removed []uuid.UUID
	callers []identity.Identity
}

func (s *stubBaskets) AddProduct(_ context.Context, id identity.Identity, productID uuid.UUID) (*basket.AddResult, error) {
	s.callers = append(s.callers, id)
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, productID)
	if s.addResult != nil {
		return s.addResult, nil
	}
	return &basket.AddResult{BasketID: uuid.New(), Added: true}, nil
}

func (s *stubBaskets) RemoveProduct(_ context.Context, id identity.Identity, productID uuid.UUID) (*basket.RemoveResult, error) {
	s.callers = append(s.callers, id)
	if s.err != nil {
		return nil, s.err
	}
	s.removed = append(s.removed, productID)
	return &basket.RemoveResult{}, nil
}

func (s *stubBaskets) GetOpenBasket(_ context.Context, id identity.Identity) (*basket.View, error) {
	s.callers = append(s.callers, id)
	if s.err != nil {
		return nil, s.err
	}
	if s.view != nil {
		return s.view, nil
	}
	return &basket.View{Items: []basket.ItemView{}, Total: decimal.Zero}, nil
}

type stubCheckout struct {
	order    *models.Order
	err      error
	preview  *basket.View
	address  string
	checkout int
}

func (s *stubCheckout) Checkout(_ context.Context, _ identity.Identity, address string) (*models.Order, error) {
	s.checkout++
	s.address = address
	return s.order, s.err
}

func (s *stubCheckout) Preview(context.Context, identity.Identity) (*basket.View, error) {
	if s.preview != nil {
		return s.preview, nil
	}
	return &basket.View{Items: []basket.ItemView{}, Total: decimal.Zero}, nil
}

type stubOrders struct {
	list   *orders.OrderList
	err    error
	params pagination.Params
}

func (s *stubOrders) ListForIdentity(_ context.Context, _ identity.Identity, params pagination.Params) (*orders.OrderList, error) {
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	if s.list != nil {
		return s.list, nil
	}
	return &orders.OrderList{Orders: []orders.OrderView{}}, nil
}

type stubReports struct {
	rows []reports.RemovedProductRow
	err  error
}

func (s stubReports) RemovedBeforeCheckout(context.Context) ([]reports.RemovedProductRow, error) {
	return s.rows, s.err
}
