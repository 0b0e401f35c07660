package services

import (
	"context"
	"testing"
	"time"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/reporting"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleService_PersistsTotalsAsSubmitted(t *testing.T) {
	repo := newMemSaleRepo()
	svc := NewSaleService(repo)

	sale, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		Product: "Mouse", Quantity: 3, Price: decimal.NewFromInt(20), Total: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(60)))

	// a total inconsistent with quantity*price is stored untouched
	odd, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		Product: "Mouse", Quantity: 3, Price: decimal.NewFromInt(20), Total: decimal.NewFromInt(55),
	})
	require.NoError(t, err)
	stored, err := svc.GetSaleByID(context.Background(), odd.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(55)))
}

func TestSaleService_ValidationAndNotFound(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())
	_, err := svc.CreateSale(context.Background(), CreateSaleRequest{Product: " "})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.DeleteSale(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func newReportFixture(t *testing.T) (ReportService, *memReportRepo) {
	t.Helper()
	ctx := context.Background()
	sales := newMemSaleRepo()
	products := newMemProductRepo()
	promos := newMemPromotionRepo()

	_, _ = sales.Create(ctx, &models.Sale{Product: "Mouse", Total: decimal.NewFromInt(60)})
	_, _ = sales.Create(ctx, &models.Sale{Product: "Cable", Total: decimal.RequireFromString("9.90")})
	_, _ = products.Create(ctx, &models.Product{Name: "Mouse", Amount: 2, MinStock: 5})
	_, _ = products.Create(ctx, &models.Product{Name: "Cable", Amount: 20, MinStock: 5})
	_, _ = promos.Create(ctx, &models.Promotion{Name: "A", Active: true, Discount: decimal.NewFromInt(10)})
	_, _ = promos.Create(ctx, &models.Promotion{Name: "B", Active: false, Discount: decimal.NewFromInt(50)})

	repo := newMemReportRepo()
	svc := NewReportService(repo, reporting.NewFactory(sales, products, promos)).(*reportService)
	svc.now = func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestReportService_CreateFillsBaseFields(t *testing.T) {
	svc, _ := newReportFixture(t)

	r, err := svc.CreateReport(context.Background(), CreateReportRequest{Title: "Stock check", Type: "Stock"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "5/3/2024", r.ReportDate)
	assert.Equal(t, "Completado", r.Status)
	assert.Equal(t, "Actual", r.Period)
	assert.Equal(t, 2, *r.TotalProducts)
	assert.Equal(t, 1, *r.LowStockItems)
	assert.Nil(t, r.TotalSales)
}

func TestReportService_GeneralSnapshot(t *testing.T) {
	svc, repo := newReportFixture(t)

	r, err := svc.CreateReport(context.Background(), CreateReportRequest{Title: "All", Type: "General", Period: "Q1"})
	require.NoError(t, err)
	assert.Equal(t, "Q1", r.Period)
	assert.Equal(t, 2, *r.TotalSales)
	assert.Equal(t, "69.9", r.Revenue.Decimal.String())
	assert.Equal(t, 1, *r.ActivePromos)
	assert.Equal(t, "10", r.TotalDiscount.Decimal.String())

	stored, err := svc.GetReportByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, stored.ID)
	assert.Len(t, repo.items, 1)
}

func TestReportService_UnknownTypeAndValidation(t *testing.T) {
	svc, _ := newReportFixture(t)

	r, err := svc.CreateReport(context.Background(), CreateReportRequest{Title: "Notes", Type: "Custom"})
	require.NoError(t, err)
	assert.Equal(t, "Custom", r.Type)
	assert.Nil(t, r.TotalSales)
	assert.Nil(t, r.TotalProducts)
	assert.False(t, r.Revenue.Valid)

	_, err = svc.CreateReport(context.Background(), CreateReportRequest{Title: "", Type: "Stock"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.DeleteReport(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
}
