package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/api/views"
	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	checkouthelpers "github.com/angelmondragon/storefront/internal/checkout/helpers"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/reports"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

const recentOrdersOnHome = 5

type PagesParams struct {
	Renderer *views.Renderer
	Catalog  catalog.Service
	Baskets  basket.Service
	Checkout checkout.Service
	Orders   orders.Service
	Reports  reports.Service
	Logger   *logger.Logger
}

// Pages serves the server-rendered storefront. Form posts redirect with 303 so
// a browser refresh never resubmits them.
type Pages struct {
	renderer *views.Renderer
	catalog  catalog.Service
	baskets  basket.Service
	checkout checkout.Service
	orders   orders.Service
	reports  reports.Service
	logg     *logger.Logger
}

func NewPages(params PagesParams) (*Pages, error) {
	switch {
	case params.Renderer == nil:
		return nil, errors.New("renderer required")
	case params.Catalog == nil:
		return nil, errors.New("catalog service required")
	case params.Baskets == nil:
		return nil, errors.New("basket service required")
	case params.Checkout == nil:
		return nil, errors.New("checkout service required")
	case params.Orders == nil:
		return nil, errors.New("orders service required")
	case params.Reports == nil:
		return nil, errors.New("reports service required")
	}
	return &Pages{
		renderer: params.Renderer,
		catalog:  params.Catalog,
		baskets:  params.Baskets,
		checkout: params.Checkout,
		orders:   params.Orders,
		reports:  params.Reports,
		logg:     params.Logger,
	}, nil
}

// Home renders the catalog with the shopper's basket and recent orders.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shopper, err := shopperFromRequest(r)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}

	products, err := p.catalog.ListProducts(ctx)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	view, err := p.baskets.GetOpenBasket(ctx, shopper)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	recent, err := p.orders.ListForIdentity(ctx, shopper, pagination.Params{Limit: recentOrdersOnHome})
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}

	page := views.HomePage{
		Shopper:  shopper,
		Products: make([]views.ProductCard, 0, len(products)),
		Basket:   view,
		Orders:   recent.Orders,
	}
	for _, product := range products {
		page.Products = append(page.Products, views.ProductCard{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			InBasket: view.Contains(product.ID),
		})
	}
	p.render(ctx, w, http.StatusOK, views.PageHome, page)
}

// AddProduct handles the home page "Add to basket" form.
func (p *Pages) AddProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shopper, err := shopperFromRequest(r)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	productID, err := validators.ParseFormUUID(r, "productId")
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	if _, err := p.baskets.AddProduct(ctx, shopper, productID); err != nil {
		p.renderError(ctx, w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RemoveProduct handles the "Remove from basket" form, posted with _method=DELETE.
func (p *Pages) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shopper, err := shopperFromRequest(r)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	productID, err := validators.ParseFormUUID(r, "productId")
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	if _, err := p.baskets.RemoveProduct(ctx, shopper, productID); err != nil {
		p.renderError(ctx, w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CheckoutForm renders the basket summary with the address form.
func (p *Pages) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shopper, err := shopperFromRequest(r)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	view, err := p.checkout.Preview(ctx, shopper)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	p.render(ctx, w, http.StatusOK, views.PageCheckout, views.CheckoutPage{
		Shopper:          shopper,
		Basket:           view,
		MaxAddressLength: checkouthelpers.MaxAddressLength,
	})
}

// SubmitCheckout places the order and returns to the home page. An invalid
// address re-renders the form with the message.
func (p *Pages) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shopper, err := shopperFromRequest(r)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		p.renderError(ctx, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body"))
		return
	}
	address := r.PostForm.Get("address")

	_, err = p.checkout.Checkout(ctx, shopper, address)
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			p.renderError(ctx, w, err)
			return
		}
		view, previewErr := p.checkout.Preview(ctx, shopper)
		if previewErr != nil {
			p.renderError(ctx, w, previewErr)
			return
		}
		p.render(ctx, w, http.StatusBadRequest, views.PageCheckout, views.CheckoutPage{
			Shopper:          shopper,
			Basket:           view,
			Address:          address,
			Error:            publicMessage(err),
			MaxAddressLength: checkouthelpers.MaxAddressLength,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard renders the removed-before-checkout report.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := p.reports.RemovedBeforeCheckout(ctx)
	if err != nil {
		p.renderError(ctx, w, err)
		return
	}
	p.render(ctx, w, http.StatusOK, views.PageDashboard, views.DashboardPage{Rows: rows})
}

// Error renders err as the HTML error page; the router hands it to the recoverer.
func (p *Pages) Error(w http.ResponseWriter, r *http.Request, err error) {
	p.renderError(r.Context(), w, err)
}

// NotFound renders the error page for unknown page routes.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderError(r.Context(), w, pkgerrors.New(pkgerrors.CodeNotFound, "page not found"))
}

func (p *Pages) render(ctx context.Context, w http.ResponseWriter, status int, page string, data any) {
	if err := p.renderer.Render(w, status, page, data); err != nil {
		if p.logg != nil {
			p.logg.Error(ctx, "page.render_failed", err)
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderError is the HTML counterpart of responses.WriteError.
func (p *Pages) renderError(ctx context.Context, w http.ResponseWriter, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	if p.logg != nil {
		logCtx := p.logg.WithFields(ctx, pkgerrors.Dump(typed).Fields())
		if meta.HTTPStatus >= http.StatusInternalServerError {
			p.logg.Error(logCtx, "page.error", err)
		} else {
			p.logg.Warn(logCtx, "page.rejected")
		}
	}

	p.render(ctx, w, meta.HTTPStatus, views.PageError, views.ErrorPage{
		Status:    meta.HTTPStatus,
		Title:     http.StatusText(meta.HTTPStatus),
		Message:   publicMessage(typed),
		RequestID: middleware.RequestIDFromContext(ctx),
	})
}

// publicMessage mirrors the JSON envelope: client errors show their own
// message, everything else the code's generic one.
func publicMessage(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return pkgerrors.MetadataFor(pkgerrors.CodeInternal).PublicMessage
	}
	meta := pkgerrors.MetadataFor(typed.Code())
	if meta.HTTPStatus < http.StatusInternalServerError && typed.Message() != "" {
		return typed.Message()
	}
	return meta.PublicMessage
}
