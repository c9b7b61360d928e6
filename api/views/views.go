package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/reports"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageHome      = "home"
	PageCheckout  = "checkout"
	PageDashboard = "dashboard"
	PageError     = "error"
)

var pages = []string{PageHome, PageCheckout, PageDashboard, PageError}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("Mon Jan 02 2006") },
}

// ProductCard is one catalog entry on the home page.
type ProductCard struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	InBasket bool
}

type HomePage struct {
	Shopper  identity.Identity
	Products []ProductCard
	Basket   *basket.View
	Orders   []orders.OrderView
}

type CheckoutPage struct {
	Shopper          identity.Identity
	Basket           *basket.View
	Address          string
	Error            string
	MaxAddressLength int
}

type DashboardPage struct {
	Rows []reports.RemovedProductRow
}

type ErrorPage struct {
	Status    int
	Title     string
	Message   string
	RequestID string
}

// Renderer executes the embedded page templates. Each page is parsed together
// with the shared layout into its own set so their blocks do not collide.
type Renderer struct {
	sets map[string]*template.Template
}

func New() (*Renderer, error) {
	sets := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		sets[page] = tmpl
	}
	return &Renderer{sets: sets}, nil
}

// Render writes the page with the given status. Execution happens into a buffer
// first so a template failure never leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.sets[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
