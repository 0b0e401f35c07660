// Package reporting builds report snapshots from the current sales, stock and promotions.
package reporting

import (
	"context"
	"fmt"
	"strings"

	"sdtech_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Kind is the aggregation a report type selects.
type Kind int

const (
	KindUnknown Kind = iota
	KindSales
	KindStock
	KindPromo
	KindGeneral
)

func (k Kind) String() string {
	switch k {
	case KindSales:
		return models.ReportTypeSales
	case KindStock:
		return models.ReportTypeStock
	case KindPromo:
		return models.ReportTypePromo
	case KindGeneral:
		return models.ReportTypeGeneral
	}
	return "Unknown"
}

// ParseKind maps a report type tag to its Kind. "Ventas" is accepted for Sales.
// Anything unrecognised is KindUnknown, which attaches no aggregates.
func ParseKind(reportType string) Kind {
	switch strings.ToLower(strings.TrimSpace(reportType)) {
	case "sales", "ventas":
		return KindSales
	case "stock":
		return KindStock
	case "promo":
		return KindPromo
	case "general":
		return KindGeneral
	}
	return KindUnknown
}

type saleSource interface {
	FindAll(ctx context.Context) ([]models.Sale, error)
}

type productSource interface {
	FindAll(ctx context.Context) ([]models.Product, error)
}

type promotionSource interface {
	FindActive(ctx context.Context) ([]models.Promotion, error)
}

// Factory reads full lists and reduces them in memory.
type Factory struct {
	sales      saleSource
	products   productSource
	promotions promotionSource
}

func NewFactory(sales saleSource, products productSource, promotions promotionSource) *Factory {
	return &Factory{sales: sales, products: products, promotions: promotions}
}

// Build returns a copy of base with the aggregates for its type filled in.
func (f *Factory) Build(ctx context.Context, base models.Report) (*models.Report, error) {
	report := base
	kind := ParseKind(base.Type)

	if kind == KindSales || kind == KindGeneral {
		sales, err := f.sales.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading sales for %s report: %w", kind, err)
		}
		applySales(&report, sales)
	}
	if kind == KindStock || kind == KindGeneral {
		products, err := f.products.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading products for %s report: %w", kind, err)
		}
		applyStock(&report, products)
	}
	if kind == KindPromo || kind == KindGeneral {
		promos, err := f.promotions.FindActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading promotions for %s report: %w", kind, err)
		}
		applyPromo(&report, promos)
	}
	return &report, nil
}

func applySales(r *models.Report, sales []models.Sale) {
	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.Total)
	}
	count := len(sales)
	r.TotalSales = &count
	r.Revenue = decimal.NewNullDecimal(revenue)
}

func applyStock(r *models.Report, products []models.Product) {
	low := 0
	for i := range products {
		if products[i].IsLowStock() {
			low++
		}
	}
	total := len(products)
	r.TotalProducts = &total
	r.LowStockItems = &low
}

// applyPromo sums discount percentages as a flat quantity.
func applyPromo(r *models.Report, promos []models.Promotion) {
	discount := decimal.Zero
	active := 0
	for _, p := range promos {
		if !p.Active {
			continue
		}
		active++
		discount = discount.Add(p.Discount)
	}
	r.ActivePromos = &active
	r.TotalDiscount = decimal.NewNullDecimal(discount)
}
