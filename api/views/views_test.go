package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/internal/reports"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestRenderHomeShowsAddAndRemoveForms(t *testing.T) {
	r := newRenderer(t)
	inBasket := uuid.New()
	page := HomePage{
		Shopper: identity.Identity{Name: "Ada Lovelace", Email: "ada@example.com"},
		Products: []ProductCard{
			{ID: inBasket, Name: "Ice cream", Price: decimal.RequireFromString("10")},
			{ID: uuid.New(), Name: "Cake", Price: decimal.RequireFromString("20.5")},
		},
		Basket: &basket.View{
			Items: []basket.ItemView{{ProductID: inBasket, Name: "Ice cream", Price: decimal.RequireFromString("10")}},
			Total: decimal.RequireFromString("10"),
		},
	}
	page.Products[0].InBasket = true

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, PageHome, page))

	body := rec.Body.String()
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, body, "Hey there, Ada Lovelace - ada@example.com!")
	require.Contains(t, body, "Your basket (1 - $10.00)")
	require.Contains(t, body, "$20.50")
	require.Equal(t, 1, strings.Count(body, `name="_method" value="DELETE"`))
	require.Contains(t, body, "Remove from basket")
	require.Contains(t, body, "Add to basket")
	require.Contains(t, body, inBasket.String())
}

func TestRenderEscapesShopperInput(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()
	err := r.Render(rec, http.StatusBadRequest, PageCheckout, CheckoutPage{
		Shopper: identity.Identity{Name: "<script>", Email: "x@example.com"},
		Basket:  &basket.View{Items: []basket.ItemView{}, Total: decimal.Zero},
		Address: `"><b>`,
		Error:   "address is required",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	require.NotContains(t, body, "<script>")
	require.NotContains(t, body, `"><b>`)
	require.Contains(t, body, "address is required")
	require.Contains(t, body, "disabled")
}

func TestRenderDashboardRows(t *testing.T) {
	r := newRenderer(t)
	removedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := httptest.NewRecorder()
	err := r.Render(rec, http.StatusOK, PageDashboard, DashboardPage{Rows: []reports.RemovedProductRow{{
		LogID:        1,
		ProductName:  "Cake",
		UserKey:      "Ada - ada@example.com",
		RemovedAt:    removedAt,
		CheckedOutAt: removedAt.Add(48 * time.Hour),
	}}})
	require.NoError(t, err)

	body := rec.Body.String()
	require.Contains(t, body, "Cake")
	require.Contains(t, body, "Ada - ada@example.com")
	require.Contains(t, body, "Sun Mar 01 2026")
	require.Contains(t, body, "Tue Mar 03 2026")
}

func TestRenderUnknownPage(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()
	require.Error(t, r.Render(rec, http.StatusOK, "nope", nil))
	require.Equal(t, 0, rec.Body.Len())
}
