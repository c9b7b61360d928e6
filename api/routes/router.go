package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/views"
	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/reports"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/redis"
)

type identityResolver interface {
	Resolve(*http.Request) identity.Resolution
	Fingerprint(identity.Identity) string
}

// Deps carries everything the router wires. Redis may be nil, which turns off
// idempotency and rate limiting.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Identity    identityResolver
	Catalog     catalog.Service
	Baskets     basket.Service
	Checkout    checkout.Service
	Orders      orders.Service
	Reports     reports.Service
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(deps Deps) (http.Handler, error) {
	if deps.Config == nil {
		return nil, errors.New("config required")
	}
	if deps.Identity == nil {
		return nil, errors.New("identity resolver required")
	}
	renderer, err := views.New()
	if err != nil {
		return nil, err
	}
	pages, err := controllers.NewPages(controllers.PagesParams{
		Renderer: renderer,
		Catalog:  deps.Catalog,
		Baskets:  deps.Baskets,
		Checkout: deps.Checkout,
		Orders:   deps.Orders,
		Reports:  deps.Reports,
		Logger:   deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	cfg, logg := deps.Config, deps.Logger

	// a nil *redis.Client must stay a nil interface for the middlewares
	var (
		limiter     redis.RateLimiter
		idempotency redis.IdempotencyStore
		redisPinger redis.Pinger
	)
	if deps.Redis != nil {
		limiter, idempotency, redisPinger = deps.Redis, deps.Redis, deps.Redis
	}

	basketLimit := middleware.RateLimit(
		middleware.NewRateLimitPolicy("basket", cfg.RateLimit.Window, cfg.RateLimit.BasketLimit),
		limiter, logg,
	)
	checkoutLimit := middleware.RateLimit(
		middleware.NewRateLimitPolicy("checkout", cfg.RateLimit.Window, cfg.RateLimit.CheckoutLimit),
		limiter, logg,
	)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg, pages.Error),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.MethodOverride(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg,
			controllers.ReadinessCheck{Name: "db", Pinger: deps.DB},
			controllers.ReadinessCheck{Name: "redis", Pinger: redisPinger},
		))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(deps.Identity, logg))

		r.Get("/", pages.Home)
		r.With(basketLimit).Post("/", pages.AddProduct)
		r.With(basketLimit).Delete("/", pages.RemoveProduct)
		r.Get("/checkout", pages.CheckoutForm)
		r.With(checkoutLimit).Post("/checkout", pages.SubmitCheckout)
		r.Get("/dashboard", pages.Dashboard)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.CORS(cfg.HTTP.CORSOrigins))

			r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
			r.Route("/basket", func(r chi.Router) {
				r.Get("/", controllers.GetBasket(deps.Baskets, logg))
				r.With(basketLimit).Post("/items", controllers.AddBasketItem(deps.Baskets, logg))
				r.With(basketLimit).Delete("/items/{productId}", controllers.RemoveBasketItem(deps.Baskets, logg))
			})
			r.With(
				checkoutLimit,
				middleware.Idempotency(idempotency, cfg.Eventing.IdempotencyTTL, logg),
			).Post("/checkout", controllers.Checkout(deps.Checkout, logg))
			r.Get("/orders", controllers.ListOrders(deps.Orders, logg))
			r.Get("/reports/removed-products", controllers.RemovedProducts(deps.Reports, logg))
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if middleware.IsAPIRequest(req) {
			responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
			return
		}
		pages.NotFound(w, req)
	})

	return r, nil
}
