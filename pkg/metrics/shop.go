package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Basket mutation operations and outcomes used as label values.
const (
	OpAdd    = "add"
	OpRemove = "remove"

	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
	OutcomeError   = "error"
)

// ShopMetrics tracks basket and checkout activity.
type ShopMetrics struct {
	basketMutations *prometheus.CounterVec
	checkouts       *prometheus.CounterVec
	orderValue      prometheus.Histogram
}

func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	basketMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "basket_mutations_total",
		Help:      "Basket add/remove requests by outcome.",
	}, []string{"op", "outcome"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Order sums in store currency.",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000},
	})
	reg.MustRegister(basketMutations, checkouts, orderValue)
	return &ShopMetrics{
		basketMutations: basketMutations,
		checkouts:       checkouts,
		orderValue:      orderValue,
	}
}

func (m *ShopMetrics) IncBasketMutation(op, outcome string) {
	if m == nil || m.basketMutations == nil {
		return
	}
	m.basketMutations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

func (m *ShopMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *ShopMetrics) ObserveOrderValue(sum decimal.Decimal) {
	if m == nil || m.orderValue == nil {
		return
	}
	m.orderValue.Observe(sum.InexactFloat64())
}
